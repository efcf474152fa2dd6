// Package validator provides small, composable validation rules.
//
// A Rule pairs a boolean Check with a ValidationError describing the failure.
// Apply evaluates every rule and aggregates failures into ValidationErrors,
// which implements error.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.MatchesPattern("prefix", prefix, prefixRe, "a valid prefix"),
//	    validator.ByteLength("hmac_key", key, 32),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, f := range verrs.Fields() {
//	        // ...
//	    }
//	}
//
// Rules carry a TranslationKey and TranslationValues so that messages can be
// localised by callers. The package has no global state and is safe for
// concurrent use.
package validator
