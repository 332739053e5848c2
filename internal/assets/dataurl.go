package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// imageMediaTypes are the data URL media types accepted for logos.
var imageMediaTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
}

// DataURLLoader decodes base64 image data URLs. Implements LogoLoader interface.
type DataURLLoader struct{}

// LoadLogo decodes ref.
func (DataURLLoader) LoadLogo(_ context.Context, ref string) ([]byte, error) {
	mediaType, data, err := DecodeDataURL(ref)
	if err != nil {
		return nil, err
	}
	if !imageMediaTypes[mediaType] {
		return nil, fmt.Errorf("%w: media type %q is not an image", ErrInvalidDataURL, mediaType)
	}
	if len(data) > MaxLogoSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrLogoTooLarge, len(data), MaxLogoSize)
	}
	return data, nil
}

// DecodeDataURL splits "data:<type>;base64,<payload>" into its media type
// and decoded bytes. Only base64 payloads are supported.
func DecodeDataURL(s string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURL)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload", ErrInvalidDataURL)
	}
	mediaType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: payload is not base64", ErrInvalidDataURL)
	}
	data, err = base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return strings.ToLower(mediaType), data, nil
}

// EncodeDataURL builds a base64 data URL.
func EncodeDataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Compile-time interface check.
var _ LogoLoader = DataURLLoader{}
