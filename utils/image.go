package utils

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

const AvatarWidth = 256

// ResizeAvatar decodes any supported image and re-encodes it as a JPEG thumbnail.
func ResizeAvatar(src io.Reader) ([]byte, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Dx() > AvatarWidth {
		img = imaging.Resize(img, AvatarWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
