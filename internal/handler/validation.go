package handler

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._]+$`)

// Reserved names that can never be registered.
var usernameBlacklist = map[string]bool{
	"admin": true, "administrator": true, "root": true,
	"support": true, "help": true, "api": true, "www": true,
	"mail": true, "email": true, "test": true, "demo": true,
	"null": true, "undefined": true, "system": true,
}

// RegisterValidators installs custom binding validators on gin's validator
// engine. Call once at startup before routes are served.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return UsernameValid(fl.Field().String())
		})
	}
}

// UsernameValid reports whether a username satisfies the account naming
// rules: 3-50 chars of letters, digits, dots and underscores, no leading,
// trailing or consecutive dots, and not a reserved name.
func UsernameValid(username string) bool {
	if len(username) < 3 || len(username) > 50 {
		return false
	}
	if !usernamePattern.MatchString(username) {
		return false
	}
	if strings.HasPrefix(username, ".") || strings.HasSuffix(username, ".") {
		return false
	}
	if strings.Contains(username, "..") {
		return false
	}
	return !usernameBlacklist[strings.ToLower(username)]
}

// PasswordStrong reports whether a password has at least one lowercase
// letter, one uppercase letter and one digit.
func PasswordStrong(password string) bool {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
