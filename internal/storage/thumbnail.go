package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

const thumbnailQuality = 85

// Thumbnail decodes a JPEG or PNG image and re-encodes it as a JPEG that fits
// in a size x size box, keeping the aspect ratio.
func Thumbnail(data []byte, size uint) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image.Decode -> %w", err)
	}

	thumb := resize.Thumbnail(size, size, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, fmt.Errorf("jpeg.Encode -> %w", err)
	}

	return buf.Bytes(), nil
}
