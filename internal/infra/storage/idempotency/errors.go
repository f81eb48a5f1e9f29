package idempotency

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись по ключу и scope не найдена
	ErrRecordNotFound = errors.New("idempotency.repository: record not found")

	// ErrDuplicateKey возвращается при попытке повторной вставки ключа:
	// параллельный запрос с тем же ключом уже зафиксировал свою запись
	ErrDuplicateKey = errors.New("idempotency.repository: duplicate key")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("idempotency.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("idempotency.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("idempotency.repository: failed to scan row")
)
