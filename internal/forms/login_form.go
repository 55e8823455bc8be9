package forms

import (
	"log/slog"
)

// LoginValues are the fields of the login form.
type LoginValues struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginForm only validates and records the attempt locally. There is no
// session handling behind it.
type LoginForm struct {
	logger *slog.Logger
}

// NewLoginForm creates a login form.
func NewLoginForm(logger *slog.Logger) *LoginForm {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginForm{logger: logger.With("form", "login")}
}

// Submit validates v and logs the username. The password is never logged.
func (f *LoginForm) Submit(v LoginValues) error {
	if fields := validateStruct(v); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	f.logger.Info("login submitted", "username", v.Username)
	return nil
}
