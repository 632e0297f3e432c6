package imaging

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const jpegDataURLPrefix = "data:image/jpeg;base64,"

// ToDataURL wraps JPEG bytes in the data-URL form entries persist.
func ToDataURL(blob []byte) string {
	return jpegDataURLPrefix + base64.StdEncoding.EncodeToString(blob)
}

// Base64Payload returns the base64 body of a data URL, or the input verbatim
// when it is already bare base64. This is the form the analysis provider
// expects for inline image data.
func Base64Payload(dataURL string) string {
	if _, payload, found := strings.Cut(dataURL, ","); found {
		return payload
	}
	return dataURL
}

// FromDataURL decodes a data URL (or bare base64 string) back to raw bytes.
func FromDataURL(dataURL string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(Base64Payload(dataURL))
	if err != nil {
		return nil, fmt.Errorf("decode image data url: %w", err)
	}
	return blob, nil
}
