package validate

import "strings"

// Package validate guards workflow entry points: every required field is
// checked before any external call is made, so a malformed request never
// leaves partial side effects behind.

// ValidationError reports every missing required field, not just the first.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Required checks that each named field is present and non-blank in fields.
// It returns a *ValidationError listing all absent names in the order they
// were required, or nil when everything is present.
func Required(fields map[string]string, required ...string) error {
	var missing []string
	for _, name := range required {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
