package storage

import "context"

// FileHost - внешний файловый хостинг для аватаров.
// Upload принимает base64 data URI и метку владельца (email или displayName),
// возвращает публичный URL. Remove удаляет файл по его public ID.
// Обе операции сетевые и могут отказать - вызывающий обязан обработать ошибку.
type FileHost interface {
	Upload(ctx context.Context, base64Data, owner string) (string, error)
	Remove(ctx context.Context, publicID string) error
}
