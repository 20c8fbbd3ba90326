package gemini

import (
	"encoding/base64"
	"fmt"
	"strings"
)

func encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// EncodeBase64 is the text-safe form used for inline media payloads.
func EncodeBase64(data []byte) string {
	return encode(data)
}

// DecodeBase64 accepts standard base64 with or without padding, and a data URI.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		return DecodeDataURI(s)
	}
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

func DecodeDataURI(uri string) ([]byte, error) {
	_, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return nil, fmt.Errorf("data uri has no payload")
	}
	return base64.StdEncoding.DecodeString(payload)
}
