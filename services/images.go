package services

import (
	"encoding/base64"
	"strings"

	"github.com/foodgram-project/backend/errs"
)

const imageDataPrefix = "data:image/png;base64,"

// EncodeImage renders raw image bytes as a base64 data URI. Absent image
// data encodes to the empty string, never null.
func EncodeImage(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return imageDataPrefix + base64.StdEncoding.EncodeToString(data)
}

// DecodeImage parses a base64 data URI (or bare base64 payload) back into
// image bytes. Malformed or empty input fails with an invalid-input error.
func DecodeImage(encoded string) ([]byte, error) {
	payload := encoded
	if idx := strings.Index(encoded, ","); idx >= 0 {
		payload = encoded[idx+1:]
	}
	if payload == "" {
		return nil, errs.NewBadRequestError("invalid image encoding")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid image encoding")
	}
	return data, nil
}
