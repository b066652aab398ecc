package idempotency

import "errors"

var (
	// ErrEncode возвращается при ошибке сериализации записи
	ErrEncode = errors.New("idempotency.store: failed to encode record")

	// ErrDecode возвращается, когда в хранилище лежит поврежденная запись
	ErrDecode = errors.New("idempotency.store: failed to decode record")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("idempotency.store: redis command failed")
)
