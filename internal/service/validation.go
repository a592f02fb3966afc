package service

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries all collected rule violations, in declaration
// order: name rules, then email, then bio; length before pattern.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " | ")
}

var (
	nameAllowed  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	bioForbidden = regexp.MustCompile("[<>&\"'`]")
)

// profileRule checks one field against one constraint. check returns true
// when the input passes.
type profileRule struct {
	message string
	check   func(v *validator.Validate, in ProfileInput) bool
}

// Rules are evaluated in order and all violations are collected; no rule
// short-circuits another.
var profileRules = []profileRule{
	{
		message: "Name must be between 3 and 50 characters.",
		check: func(v *validator.Validate, in ProfileInput) bool {
			return v.Var(in.Name, "min=3,max=50") == nil
		},
	},
	{
		message: "Name must contain only letters and spaces.",
		check: func(v *validator.Validate, in ProfileInput) bool {
			return nameAllowed.MatchString(in.Name)
		},
	},
	{
		message: "Invalid email address.",
		check: func(v *validator.Validate, in ProfileInput) bool {
			return v.Var(in.Email, "required,email") == nil
		},
	},
	{
		message: "Bio must be 500 characters or less.",
		check: func(v *validator.Validate, in ProfileInput) bool {
			return v.Var(in.Bio, "max=500") == nil
		},
	},
	{
		message: "Bio contains forbidden characters.",
		check: func(v *validator.Validate, in ProfileInput) bool {
			return !bioForbidden.MatchString(in.Bio)
		},
	},
}

// validateProfile runs every rule against the raw input. It returns nil when
// all rules pass, otherwise a *ValidationError with the ordered messages.
func validateProfile(v *validator.Validate, in ProfileInput) error {
	var messages []string
	for _, r := range profileRules {
		if !r.check(v, in) {
			messages = append(messages, r.message)
		}
	}
	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}
