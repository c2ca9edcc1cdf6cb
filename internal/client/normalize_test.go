package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Variants(t *testing.T) {
	n := Normalizer{UploadsRoot: "/uploads/"}

	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{
			name: "absent",
			raw:  nil,
			want: []string{},
		},
		{
			name: "array of strings",
			raw:  []any{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
			want: []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		},
		{
			name: "array of objects with url",
			raw: []any{
				map[string]any{"url": "https://cdn.example.com/a.jpg", "deletion_handle": "h-1"},
				map[string]any{"url": "https://cdn.example.com/b.jpg"},
			},
			want: []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		},
		{
			name: "object falls back to secure_url",
			raw:  []any{map[string]any{"secure_url": "https://cdn.example.com/s.jpg"}},
			want: []string{"https://cdn.example.com/s.jpg"},
		},
		{
			name: "json encoded list of objects",
			raw:  `[{"url":"https://cdn.example.com/a.jpg"},{"url":"https://cdn.example.com/b.jpg"}]`,
			want: []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		},
		{
			name: "json encoded list of strings",
			raw:  `["https://cdn.example.com/a.jpg","b.jpg"]`,
			want: []string{"https://cdn.example.com/a.jpg", "/uploads/b.jpg"},
		},
		{
			name: "single url string",
			raw:  "https://cdn.example.com/only.jpg",
			want: []string{"https://cdn.example.com/only.jpg"},
		},
		{
			name: "bare filename gets uploads root",
			raw:  "corolla-front.jpg",
			want: []string{"/uploads/corolla-front.jpg"},
		},
		{
			name: "single object",
			raw:  map[string]any{"url": "https://cdn.example.com/one.jpg"},
			want: []string{"https://cdn.example.com/one.jpg"},
		},
		{
			name: "non string leaves filtered",
			raw:  []any{"https://cdn.example.com/a.jpg", float64(42), true, nil, map[string]any{"name": "no url here"}},
			want: []string{"https://cdn.example.com/a.jpg"},
		},
		{
			name: "empty and blank entries dropped",
			raw:  []any{"", "   ", "https://cdn.example.com/a.jpg"},
			want: []string{"https://cdn.example.com/a.jpg"},
		},
		{
			name: "blank string",
			raw:  "   ",
			want: []string{},
		},
		{
			name: "json number decodes to nothing",
			raw:  "123",
			want: []string{},
		},
		{
			name: "invalid json treated as literal",
			raw:  `{not-json.jpg`,
			want: []string{"/uploads/{not-json.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.raw))
		})
	}
}

func TestNormalize_PreservesOrder(t *testing.T) {
	n := Normalizer{UploadsRoot: "/uploads/"}

	got := n.Normalize([]any{"z.jpg", "a.jpg", "https://cdn.example.com/m.jpg"})

	assert.Equal(t, []string{"/uploads/z.jpg", "/uploads/a.jpg", "https://cdn.example.com/m.jpg"}, got)
}

// Normalizing the store's own serialization of a normalized list must yield
// the same list, and normalizing an already normalized list must be a no-op.
func TestNormalize_Idempotent(t *testing.T) {
	n := Normalizer{UploadsRoot: "/uploads/"}

	first := n.Normalize([]any{
		map[string]any{"url": "https://cdn.example.com/a.jpg"},
		"bare.jpg",
		"https://other.example.com/c.png",
	})
	require.NotEmpty(t, first)

	serialized, err := json.Marshal(first)
	require.NoError(t, err)

	assert.Equal(t, first, n.Normalize(string(serialized)))
	assert.Equal(t, first, n.Normalize(first))
}

func TestNormalize_DefaultUploadsRoot(t *testing.T) {
	var n Normalizer

	assert.Equal(t, []string{"/uploads/pic.jpg"}, n.Normalize("pic.jpg"))
}
