package recipe

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/nfnt/resize"
)

// MaxPhotoWidth is the width stored photos are scaled down to.
const MaxPhotoWidth = 800

// ErrInvalidPhoto is returned when a photo cannot be decoded.
var ErrInvalidPhoto = errors.New("invalid photo")

// NormalizePhoto decodes a data URL (or bare base64 payload), scales the
// image down to MaxPhotoWidth and returns it re-encoded as a data URL.
// PNG input stays PNG, everything else is stored as JPEG.
func NormalizePhoto(photo string) (string, error) {
	payload := strings.TrimSpace(photo)
	if i := strings.Index(payload, ","); strings.HasPrefix(payload, "data:") && i >= 0 {
		payload = payload[i+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhoto, err)
	}

	out, format, err := ResizeImage(data)
	if err != nil {
		return "", err
	}
	return "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(out), nil
}

// ResizeImage scales raw image bytes down to MaxPhotoWidth, keeping the
// aspect ratio, and returns the encoded result with its format name.
func ResizeImage(data []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: failed to decode image: %v", ErrInvalidPhoto, err)
	}

	if img.Bounds().Dx() > MaxPhotoWidth {
		img = resize.Resize(MaxPhotoWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	default:
		format = "jpeg"
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), format, nil
}
