package document

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses a request date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, NewValidationError("Invalid date format. Use YYYY-MM-DD")
	}
	return d, nil
}

// Validate checks all generation inputs before any side effect. Pure and
// deterministic: name length, parsable non-future date, amount bounds and
// template kind membership. The first violated rule wins.
func Validate(name, date string, amount float64, templateType string) error {
	if len(name) < 2 {
		return NewValidationError("Name must be at least 2 characters long")
	}

	parsed, err := ParseDate(date)
	if err != nil {
		return err
	}
	today := time.Now().Truncate(24 * time.Hour)
	if parsed.After(today) {
		return NewValidationError("Date cannot be in the future")
	}

	if amount <= 0 {
		return NewValidationError("Amount must be greater than 0")
	}
	if amount > 1000000 {
		return NewValidationError("Amount cannot exceed 1,000,000")
	}

	valid := false
	for _, t := range ValidTemplates {
		if templateType == t {
			valid = true
			break
		}
	}
	if !valid {
		return NewTemplateError(fmt.Sprintf("Invalid template type. Must be one of: %s", strings.Join(ValidTemplates, ", ")))
	}
	return nil
}
