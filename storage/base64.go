package storage

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidBase64 = errors.New("invalid base64 image data")

var (
	dataURIPrefix = regexp.MustCompile(`^data:[\w.+-]+/[\w.+-]+;base64,`)
	base64Body    = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)
)

// CleanBase64 strips an optional data URI prefix and surrounding whitespace.
func CleanBase64(s string) string {
	return dataURIPrefix.ReplaceAllString(strings.TrimSpace(s), "")
}

// DecodeBase64Image decodes image data given either as raw base64 or as a data URI.
func DecodeBase64Image(s string) ([]byte, error) {
	cleaned := CleanBase64(s)
	if cleaned == "" || !base64Body.MatchString(cleaned) {
		return nil, ErrInvalidBase64
	}
	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, ErrInvalidBase64
	}
	return data, nil
}
