// Package apperr определяет закрытый набор доменных ошибок сервиса.
// Каждый неуспех любого компонента классифицируется в один из этих видов,
// чтобы транспортный слой отображал его в HTTP-статус детерминированно.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedAuthHeader — заголовок Authorization отсутствует, пуст
	// или не начинается с префикса "Bearer ".
	ErrMalformedAuthHeader = errors.New("invalid authorization header format")

	// ErrInvalidSignature — подпись токена не проходит проверку секретом.
	// Сообщается раньше истечения срока: токену с битой подписью нельзя
	// доверять даже чтение его собственного expiry.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrTokenExpired — подпись верна, но срок действия токена истёк.
	ErrTokenExpired = errors.New("token has expired")

	// ErrInvalidCredentials — неверная пара логин/пароль. Текст одинаков
	// для неизвестного пользователя и неверного пароля.
	ErrInvalidCredentials = errors.New("login failed: incorrect username or password")

	// ErrUnknownTokenSubject — подпись и срок токена в порядке, но его
	// subject не соответствует ни одной зарегистрированной учетной записи.
	ErrUnknownTokenSubject = errors.New("token subject is not a known user")

	// ErrUnknownOperation — вид операции не распознан вычислительным ядром.
	// Валидатор обязан отсечь такой запрос раньше, поэтому появление этой
	// ошибки означает рассинхронизацию валидатора и ядра.
	ErrUnknownOperation = errors.New("unknown operation")
)

// ValidationError — нарушение доменных правил запроса. Reason содержит
// единственную, человеко‑читаемую причину первого нарушенного правила.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validation создает ValidationError с заданной причиной.
func Validation(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// NotFoundError — запрошенный ресурс не существует или не принадлежит
// вызывающему пользователю.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Resource, e.ID)
}

// NotFound создает NotFoundError для ресурса с указанным идентификатором.
func NotFound(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError — нарушение уникальности при сохранении, например
// повторная регистрация username или email.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// Conflict создает ConflictError для указанного поля.
func Conflict(field string) *ConflictError {
	return &ConflictError{Field: field}
}

// IsValidation сообщает, является ли ошибка нарушением валидации.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound сообщает, является ли ошибка отсутствием ресурса.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsConflict сообщает, является ли ошибка конфликтом уникальности.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsUnauthorized сообщает, относится ли ошибка к отказу аутентификации:
// битый заголовок, битая подпись, истекший токен или неверные учетные данные.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrMalformedAuthHeader) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrUnknownTokenSubject) ||
		errors.Is(err, ErrInvalidCredentials)
}
