package wizard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"

	// Registered decoders let DecodeConfig sniff the formats uploads
	// actually arrive in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// MaxImageBytes bounds an embedded image payload. Everything above it
// is rejected before encoding.
const MaxImageBytes = 10 * 1024 * 1024

// ErrImageTooLarge is returned when the attachment exceeds MaxImageBytes.
var ErrImageTooLarge = errors.New("image exceeds maximum embeddable size")

// ReadImageData reads an attached image into an embeddable base64 data
// URL. The payload is verified to really be an image by decoding its
// header; the detected format determines the data URL's media type.
func ReadImageData(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}
	if len(data) == 0 {
		return "", errors.New("empty image file")
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unrecognized image format: %w", err)
	}

	return "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
