package store

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/autolot/models"
)

// marshalImages serialises an image list to its JSON column representation.
// A nil list is stored as "[]" so the column never holds NULL or a bare string.
func marshalImages(images []models.ImageRef) (string, error) {
	if images == nil {
		images = []models.ImageRef{}
	}

	raw, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingImages, err)
	}

	return string(raw), nil
}

// unmarshalImages parses the JSON column back into an ordered image list.
// An empty column value yields an empty, non-nil list.
func unmarshalImages(raw string) ([]models.ImageRef, error) {
	if raw == "" {
		return []models.ImageRef{}, nil
	}

	var images []models.ImageRef
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingImages, err)
	}

	if images == nil {
		images = []models.ImageRef{}
	}

	return images, nil
}
