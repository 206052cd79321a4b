package validation

import (
	"regexp"
	"strings"

	"github.com/ravenmx/calculator-service/internal/apperr"
)

// usernameRe — имя пользователя состоит только из латинских букв и цифр,
// без пробелов и специальных символов.
var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ValidateRegistration проверяет структурные ограничения запроса
// на регистрацию. Досягаемость email — забота внешнего коллаборатора
// и проверяется отдельно, после этих проверок.
func ValidateRegistration(username, password, email string) error {
	if strings.TrimSpace(username) == "" || !usernameRe.MatchString(username) {
		return apperr.Validation("username is required, no special characters and no blanks")
	}
	if strings.TrimSpace(password) == "" {
		return apperr.Validation("password is required")
	}
	if strings.TrimSpace(email) == "" {
		return apperr.Validation("email is required")
	}
	return nil
}
