package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidLogFormats returns the list of valid log output formats
func ValidLogFormats() []string {
	return []string{"text", "json"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, ValidationError{Field: "port", Value: c.Port, Message: "must be a number between 1 and 65535"})
	}

	if u, err := url.Parse(c.MondayAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{Field: "monday_api_url", Value: c.MondayAPIURL, Message: "must be an absolute URL"})
	}

	if c.MondayAPIVersion == "" {
		errs = append(errs, ValidationError{Field: "monday_api_version", Value: c.MondayAPIVersion, Message: "must not be empty"})
	}

	if c.HTTPTimeoutSeconds <= 0 {
		errs = append(errs, ValidationError{Field: "http_timeout_seconds", Value: c.HTTPTimeoutSeconds, Message: "must be positive"})
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.LogLevel)) {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Value:   c.LogLevel,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if !slices.Contains(ValidLogFormats(), strings.ToLower(c.LogFormat)) {
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Value:   c.LogFormat,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogFormats(), ", ")),
		})
	}

	if c.UploadDelayMs < 0 {
		errs = append(errs, ValidationError{Field: "upload_delay_ms", Value: c.UploadDelayMs, Message: "must not be negative"})
	}

	if c.DatabasePath == "" {
		errs = append(errs, ValidationError{Field: "database_path", Value: c.DatabasePath, Message: "must not be empty"})
	}

	return errs
}
