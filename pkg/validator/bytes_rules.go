package validator

import "fmt"

// ByteLength validates that value is exactly size bytes long.
// A nil slice fails unless size is zero.
func ByteLength(field string, value []byte, size int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) == size
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be exactly %d bytes", size),
			TranslationKey: "validation.byte_length",
			TranslationValues: map[string]any{
				"field": field,
				"size":  size,
				"got":   len(value),
			},
		},
	}
}
