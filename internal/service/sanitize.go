package service

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// cleanText strips markup and surrounding space. An empty result fails validation.
func cleanText(field, value string) (string, error) {
	cleaned := strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(value)))
	if cleaned == "" {
		return "", withDetail(ErrValidationFailed, fmt.Sprintf("%s must not be empty", field))
	}
	return cleaned, nil
}

// cleanOptional is cleanText for nullable columns: nil or blank input becomes nil.
func cleanOptional(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(*value)))
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
