// Package form declares the submitted HTML forms as validation schemas.
// Each form validates uniformly into Errors, a field -> message map.
package form

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Errors maps a form field name to its first failing constraint message.
type Errors map[string]string

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// Valid reports whether no field failed.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Form is a declarative schema over submitted values.
type Form interface {
	Validate() Errors
}

const (
	PasswordMinLength = 8
	PasswordMaxLength = 35
	TitleMaxLength    = 1000
	ContentMaxLength  = 10000
)

var (
	emailRules = []validation.Rule{
		validation.Required.Error("Please enter your email."),
		is.EmailFormat.Error("Please enter correct email address."),
	}
	passwordRules = []validation.Rule{
		validation.Required.Error("Please enter your password."),
		validation.RuneLength(PasswordMinLength, PasswordMaxLength).
			Error("Password must be between 8 and 35 characters long"),
	}
)

// RegisterForm is the sign-up form.
type RegisterForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Name     string `form:"name" json:"name"`
}

func (f *RegisterForm) Validate() Errors {
	f.Email = strings.TrimSpace(f.Email)
	f.Name = strings.TrimSpace(f.Name)

	return collect(validation.ValidateStruct(f,
		validation.Field(&f.Email, emailRules...),
		validation.Field(&f.Password, passwordRules...),
		validation.Field(&f.Name, validation.Required.Error("Please enter your name.")),
	))
}

// LoginForm is the sign-in form.
type LoginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Remember bool   `form:"remember" json:"remember"`
}

func (f *LoginForm) Validate() Errors {
	f.Email = strings.TrimSpace(f.Email)

	return collect(validation.ValidateStruct(f,
		validation.Field(&f.Email, emailRules...),
		validation.Field(&f.Password, passwordRules...),
	))
}

// NoteForm is the new-note form.
type NoteForm struct {
	Title   string `form:"title" json:"title"`
	Content string `form:"content" json:"content"`
}

func (f *NoteForm) Validate() Errors {
	f.Title = strings.TrimSpace(f.Title)

	return collect(validation.ValidateStruct(f,
		validation.Field(&f.Title,
			validation.Required.Error("Please enter a title."),
			validation.RuneLength(0, TitleMaxLength).Error("Title must be at most 1000 characters long"),
		),
		validation.Field(&f.Content,
			validation.RuneLength(0, ContentMaxLength).Error("Content must be at most 10000 characters long"),
		),
	))
}

func collect(err error) Errors {
	errs := Errors{}
	if err == nil {
		return errs
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		errs["form"] = err.Error()
		return errs
	}

	for field, fieldErr := range fieldErrs {
		var ve validation.Error
		if errors.As(fieldErr, &ve) {
			errs[field] = ve.Message()
			continue
		}
		errs[field] = fieldErr.Error()
	}
	return errs
}
