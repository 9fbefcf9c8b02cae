package validation

import (
	"fmt"
	"strings"

	"qikfiller/internal/errors"
)

// MaxSearchLimit bounds the entries search limit, matching the remote API.
const MaxSearchLimit = 1000

// dateTypes maps the accepted --date-type values to the parameter names the
// search endpoint expects.
var dateTypes = map[string]string{
	"created": "created_at",
	"updated": "updated_at",
	"start":   "start_time",
}

// ValidateCredentials checks that both the API key and base URL are present
func ValidateCredentials(apiKey, apiURL string) error {
	if strings.TrimSpace(apiKey) == "" {
		return errors.NewConfigError("api_key", "please provide your QikTimes API key")
	}
	if strings.TrimSpace(apiURL) == "" {
		return errors.NewConfigError("api_url", "please provide the url of your QikTimes instance")
	}
	return nil
}

// ValidateLimit checks an entries search limit
func ValidateLimit(limit int) error {
	if limit < 1 || limit > MaxSearchLimit {
		return errors.NewValidationError(
			fmt.Sprintf("limit must be between 1 and %d, got %d", MaxSearchLimit, limit), nil)
	}
	return nil
}

// ResolveDateType maps a user-facing date type to its wire parameter
func ResolveDateType(dateType string) (string, error) {
	resolved, ok := dateTypes[strings.ToLower(strings.TrimSpace(dateType))]
	if !ok {
		return "", errors.NewValidationError(
			fmt.Sprintf("date type must be one of created, updated, start; got %q", dateType), nil)
	}
	return resolved, nil
}
