// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"encoding/json"
	"strings"
)

// Normalizer flattens the image representations the store may hold into
// ordered lists of display URLs.
type Normalizer struct {
	// UploadsRoot is prefixed to bare filenames so the store can hold
	// either full external URLs or locally hosted filenames interchangeably.
	UploadsRoot string
}

// Normalize resolves raw into a flat, order-preserving list of non-empty
// display URL strings. Raw may be a list (of strings or of objects carrying
// a url property), a string JSON-encoding one of those forms, a single
// literal URL or bare filename, a single object, or absent. Strings are
// JSON-decoded first; a decode failure means the string is a literal value.
// Non-string leaves are filtered out, never propagated. Normalize is
// idempotent over its own output; an empty result is the caller's cue to
// fall back to a placeholder image.
func (n Normalizer) Normalize(raw any) []string {
	urls := make([]string, 0, 4)
	for _, item := range candidates(raw) {
		url := strings.TrimSpace(displayURL(item))
		if url == "" {
			continue
		}
		urls = append(urls, n.localize(url))
	}
	return urls
}

// candidates resolves raw into the flat list of per-item values to extract
// URLs from.
func candidates(raw any) []any {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items
	case map[string]any:
		return []any{v}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}

		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return []any{s}
		}
		if ds, ok := decoded.(string); ok {
			return []any{ds}
		}
		if _, ok := decoded.(map[string]any); ok {
			return []any{decoded}
		}
		if list, ok := decoded.([]any); ok {
			return list
		}
		// Decoded to a number or bool; not a URL in any form.
		return nil
	default:
		return nil
	}
}

// displayURL extracts the URL of a single candidate. Strings pass through;
// objects yield their url or secure_url property; everything else is
// dropped.
func displayURL(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case map[string]any:
		if s, ok := v["url"].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
		if s, ok := v["secure_url"].(string); ok {
			return s
		}
		return ""
	default:
		return ""
	}
}

// localize rewrites a bare filename to a local upload path. Full URLs and
// rooted paths pass through untouched, which keeps Normalize idempotent.
func (n Normalizer) localize(url string) string {
	if strings.Contains(url, "://") || strings.HasPrefix(url, "/") {
		return url
	}

	root := n.UploadsRoot
	if root == "" {
		root = "/uploads/"
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}

	return root + url
}
