// Package gallery loads, generates and renders the images behind the card's
// photo grid.
package gallery

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"heartgate/internal/card"
)

// PlaceholderSize is the edge length of generated placeholder images.
const PlaceholderSize = 64

// Loader resolves a slot to an image. Photos are read from disk; placeholder
// slots are generated locally from their key so the card never touches the
// network.
type Loader struct{}

// Load returns the image for slot.
func (Loader) Load(ctx context.Context, slot card.Slot) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if slot.Placeholder {
		return Placeholder(slot.PlaceholderKey(), PlaceholderSize), nil
	}
	img, err := imaging.Open(slot.Ref, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open slot %d: %w", slot.Index, err)
	}
	return img, nil
}
