// Package validation provides pure validation functions for manifest input.
//
// The functions take plain values and report the offending field and a
// message instead of returning errors, so callers decide how a failure is
// surfaced (parse error, warning, exit code). Nothing here does I/O.
//
// # Functions
//
//   - ValidateStageFields: required and well-formed stage name, domain and username
//   - CanAddStage: reject a stage whose name is already taken
//   - UndefinedStages: stage names a command targets that no stage defines
//
// # Usage
//
//	if field, msg := validation.ValidateStageFields(name, domain, username); field != "" {
//	    // report msg against field
//	}
package validation
