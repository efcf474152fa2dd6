package validator

import (
	"fmt"
	"time"
)

// PastTime validates that value is strictly before now.
func PastTime(field string, value, now time.Time) Rule {
	return Rule{
		Check: func() bool {
			return value.Before(now)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be in the past",
			TranslationKey: "validation.time_past",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// TimeBefore validates that value is strictly before other.
func TimeBefore(field string, value, other time.Time, otherField string) Rule {
	return Rule{
		Check: func() bool {
			return value.Before(other)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be before %s", otherField),
			TranslationKey: "validation.time_before",
			TranslationValues: map[string]any{
				"field": field,
				"other": otherField,
				"time":  other.Format(time.RFC3339),
			},
		},
	}
}
