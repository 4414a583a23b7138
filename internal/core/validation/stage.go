package validation

import (
	"slices"
	"strings"
)

// =============================================================================
// Stage Validation Functions
// =============================================================================

// ValidateStageFields validates the fields of a single stage.
// Returns the field name and error message if validation fails.
// Returns empty strings if all fields are valid. An empty username is valid
// and means the default deploy user.
//
// Example:
//
//	field, msg := ValidateStageFields("production", "shop.example.com", "")
//	if field != "" {
//	    // Handle validation error
//	}
func ValidateStageFields(name, domain, username string) (field, message string) {
	if strings.TrimSpace(name) == "" {
		return "name", "stage name is required"
	}
	if strings.ContainsFunc(name, isSpace) {
		return "name", "stage name must not contain whitespace"
	}

	if strings.TrimSpace(domain) == "" {
		return "domain", "stage domain is required"
	}
	if strings.Contains(domain, "://") {
		return "domain", "stage domain must be a host name, not a URL"
	}
	if strings.ContainsFunc(domain, isSpace) || strings.ContainsAny(domain, "/@") {
		return "domain", "stage domain must be a bare host name"
	}

	if username != "" && (strings.ContainsFunc(username, isSpace) || strings.Contains(username, "@")) {
		return "username", "stage username must not contain whitespace or '@'"
	}
	return "", ""
}

// CanAddStage checks if a stage named name can be added next to the stages
// already defined. Stage names are compared case-sensitively.
func CanAddStage(existing []string, name string) (allowed bool, reason string) {
	if slices.Contains(existing, name) {
		return false, "stage " + name + " is defined more than once"
	}
	return true, ""
}

// UndefinedStages returns the targets that are not among the defined stage
// names, in target order. Returns nil when every target is defined.
func UndefinedStages(defined, targets []string) []string {
	var missing []string
	for _, target := range targets {
		if !slices.Contains(defined, target) && !slices.Contains(missing, target) {
			missing = append(missing, target)
		}
	}
	return missing
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
