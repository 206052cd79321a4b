// Package sl содержит мелкие помощники для структурированного логирования
// через slog: единый способ класть ошибку в атрибуты записи лога.
package sl

import "log/slog"

// Err упаковывает ошибку в slog.Attr с ключом "error", чтобы все точки
// логирования сервиса писали ошибки в одно и то же поле.
//
//	log.Error("failed to execute operation", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
