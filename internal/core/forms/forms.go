// Package forms provides the field-scoped validation boundary for user input.
// Each form declares its fields (label, kind) and an ordered set of rules;
// registration additionally checks username/email uniqueness through the
// Registry interface. A form is valid iff every field rule passes; failures
// surface as FieldError values, never as fatal errors.
package forms

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldKind classifies how a field should be rendered and handled.
type FieldKind int

const (
	FieldShortText FieldKind = iota
	FieldSecretText
	FieldBoolean
	FieldLongText
)

// FieldSpec describes a single form field for the presentation layer: its
// label, value kind, and the ordered rules applied to it.
type FieldSpec struct {
	Name  string
	Label string
	Kind  FieldKind
	Rules []string
}

// FieldError is a user-correctable validation failure scoped to one field.
type FieldError struct {
	Field   string
	Message string
}

// Registry is the uniqueness-checking surface the registration form calls
// before any write happens.
type Registry interface {
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
}

// LoginForm carries a login attempt.
type LoginForm struct {
	Username   string `validate:"required"`
	Password   string `validate:"required"`
	RememberMe bool
}

func (f *LoginForm) Fields() []FieldSpec {
	return []FieldSpec{
		{Name: "username", Label: "Username", Kind: FieldShortText, Rules: []string{"required"}},
		{Name: "password", Label: "Password", Kind: FieldSecretText, Rules: []string{"required"}},
		{Name: "remember_me", Label: "Remember Me", Kind: FieldBoolean},
	}
}

// RegistrationForm carries a new-account request.
type RegistrationForm struct {
	Username  string `validate:"required"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required"`
	Password2 string `validate:"required,eqfield=Password"`
}

func (f *RegistrationForm) Fields() []FieldSpec {
	return []FieldSpec{
		{Name: "username", Label: "Username", Kind: FieldShortText, Rules: []string{"required", "unique"}},
		{Name: "email", Label: "Email", Kind: FieldShortText, Rules: []string{"required", "email", "unique"}},
		{Name: "password", Label: "Password", Kind: FieldSecretText, Rules: []string{"required"}},
		{Name: "password2", Label: "Repeat Password", Kind: FieldSecretText, Rules: []string{"required", "eqfield=Password"}},
	}
}

// EditProfileForm carries profile edits.
type EditProfileForm struct {
	Username string `validate:"required"`
	AboutMe  string `validate:"max=140"`
}

func (f *EditProfileForm) Fields() []FieldSpec {
	return []FieldSpec{
		{Name: "username", Label: "Username", Kind: FieldShortText, Rules: []string{"required"}},
		{Name: "about_me", Label: "About Me", Kind: FieldLongText, Rules: []string{"max=140"}},
	}
}

// PostForm carries a new post body.
type PostForm struct {
	Body string `validate:"required,max=140"`
}

func (f *PostForm) Fields() []FieldSpec {
	return []FieldSpec{
		{Name: "body", Label: "Say something", Kind: FieldLongText, Rules: []string{"required", "max=140"}},
	}
}

// Validator runs form rules. One instance is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

// ValidateLogin checks a login form. An empty slice means the form is valid.
func (fv *Validator) ValidateLogin(f *LoginForm) []FieldError {
	return fv.structErrors(f)
}

// ValidateRegistration checks field rules first, then uniqueness through the
// registry. Registry lookups only run for fields that passed their shape
// rules. A store failure propagates as the error return, unmasked.
func (fv *Validator) ValidateRegistration(ctx context.Context, reg Registry, f *RegistrationForm) ([]FieldError, error) {
	errs := fv.structErrors(f)

	if !hasField(errs, "username") {
		taken, err := reg.IsUsernameTaken(ctx, f.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			errs = append(errs, FieldError{Field: "username", Message: "please use a different username"})
		}
	}

	if !hasField(errs, "email") {
		taken, err := reg.IsEmailTaken(ctx, f.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			errs = append(errs, FieldError{Field: "email", Message: "please use a different email address"})
		}
	}

	return errs, nil
}

// ValidateEditProfile checks a profile edit form.
func (fv *Validator) ValidateEditProfile(f *EditProfileForm) []FieldError {
	return fv.structErrors(f)
}

// ValidatePost checks a new post form.
func (fv *Validator) ValidatePost(f *PostForm) []FieldError {
	return fv.structErrors(f)
}

func (fv *Validator) structErrors(form any) []FieldError {
	err := fv.v.Struct(form)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		// validator only returns other error types for invalid input values
		// (non-struct); treat it as a single unscoped failure.
		return []FieldError{{Field: "", Message: err.Error()}}
	}
	errs := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		errs = append(errs, FieldError{Field: fieldName(fe), Message: fieldMessage(fe)})
	}
	return errs
}

// fieldName converts the Go field name to its form name (snake_case for the
// fields used here).
func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "AboutMe":
		return "about_me"
	case "RememberMe":
		return "remember_me"
	default:
		return strings.ToLower(fe.Field())
	}
}

// fieldMessage converts a single validation error into a user-facing message.
func fieldMessage(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "max":
		return fmt.Sprintf("%s must be between 0 and %s characters", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func hasField(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
