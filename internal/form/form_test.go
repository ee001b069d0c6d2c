package form_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EgehanKilicarslan/quicknote/internal/form"
)

func TestRegisterForm_Validate(t *testing.T) {
	tests := []struct {
		name   string
		form   form.RegisterForm
		errors form.Errors
	}{
		{
			name: "valid",
			form: form.RegisterForm{Email: "alice@example.com", Password: "password123", Name: "alice"},
		},
		{
			name: "all empty",
			form: form.RegisterForm{},
			errors: form.Errors{
				"email":    "Please enter your email.",
				"password": "Please enter your password.",
				"name":     "Please enter your name.",
			},
		},
		{
			name:   "malformed email",
			form:   form.RegisterForm{Email: "not-an-email", Password: "password123", Name: "alice"},
			errors: form.Errors{"email": "Please enter correct email address."},
		},
		{
			name:   "short password",
			form:   form.RegisterForm{Email: "alice@example.com", Password: "short", Name: "alice"},
			errors: form.Errors{"password": "Password must be between 8 and 35 characters long"},
		},
		{
			name:   "long password",
			form:   form.RegisterForm{Email: "alice@example.com", Password: strings.Repeat("x", 36), Name: "alice"},
			errors: form.Errors{"password": "Password must be between 8 and 35 characters long"},
		},
		{
			name:   "whitespace name",
			form:   form.RegisterForm{Email: "alice@example.com", Password: "password123", Name: "   "},
			errors: form.Errors{"name": "Please enter your name."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			if tt.errors == nil {
				assert.True(t, errs.Valid(), "unexpected errors: %v", errs)
				return
			}
			assert.Equal(t, tt.errors, errs)
			assert.False(t, errs.Valid())
		})
	}
}

func TestRegisterForm_TrimsInput(t *testing.T) {
	f := form.RegisterForm{Email: "  alice@example.com ", Password: "password123", Name: " alice "}

	assert.True(t, f.Validate().Valid())
	assert.Equal(t, "alice@example.com", f.Email)
	assert.Equal(t, "alice", f.Name)
}

func TestLoginForm_Validate(t *testing.T) {
	valid := form.LoginForm{Email: "alice@example.com", Password: "password123"}
	assert.True(t, valid.Validate().Valid())

	boundary := form.LoginForm{Email: "alice@example.com", Password: strings.Repeat("p", form.PasswordMaxLength)}
	assert.True(t, boundary.Validate().Valid())

	missing := form.LoginForm{Email: "alice@example.com"}
	assert.Equal(t, "Please enter your password.", missing.Validate().Get("password"))

	badEmail := form.LoginForm{Email: "alice", Password: "password123"}
	assert.Equal(t, "Please enter correct email address.", badEmail.Validate().Get("email"))
}

func TestNoteForm_Validate(t *testing.T) {
	tests := []struct {
		name  string
		form  form.NoteForm
		field string
		want  string
	}{
		{"missing title", form.NoteForm{Content: "milk"}, "title", "Please enter a title."},
		{"blank title", form.NoteForm{Title: "   "}, "title", "Please enter a title."},
		{"long title", form.NoteForm{Title: strings.Repeat("t", form.TitleMaxLength+1)}, "title", "Title must be at most 1000 characters long"},
		{"long content", form.NoteForm{Title: "ok", Content: strings.Repeat("c", form.ContentMaxLength+1)}, "content", "Content must be at most 10000 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			assert.Equal(t, tt.want, errs.Get(tt.field))
		})
	}

	ok := form.NoteForm{Title: "groceries"}
	assert.True(t, ok.Validate().Valid(), "content is optional")
}

func TestErrors_Get(t *testing.T) {
	errs := form.Errors{"email": "bad"}

	assert.Equal(t, "bad", errs.Get("email"))
	assert.Empty(t, errs.Get("name"))
	assert.True(t, form.Errors{}.Valid())
}
