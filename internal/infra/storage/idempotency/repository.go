package idempotency

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального ограничения
const pgUniqueViolation = "23505"

// Repository репозиторий ledger'а идемпотентности
// Запись ключа выполняется в той же транзакции, что и основной side effect:
// репозиторий берет активную транзакцию из context (dbmetrics.GetExecutor)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория идемпотентности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает запись по ключу и scope
func (r *Repository) Get(ctx context.Context, key, scope string) (*domain.IdempotencyRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"key_value",
		"scope",
		"request_hash",
		"response_data",
		"created_at",
	).
		From("idempotency_keys").
		Where(squirrel.Eq{"key_value": key, "scope": scope}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var record domain.IdempotencyRecord
	var responseData []byte
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.KeyValue,
		&record.Scope,
		&record.RequestHash,
		&responseData,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan record: %v", ErrScanRow, err)
	}

	record.ResponseData = json.RawMessage(responseData)
	record.CreatedAt = createdAt.Time

	return &record, nil
}

// Create записывает ключ с хэшем запроса и каноническим ответом
// Первичный ключ (key_value, scope) гарантирует единственность записи;
// проигравший гонку запрос получает ErrDuplicateKey и должен перечитать запись
func (r *Repository) Create(ctx context.Context, record *domain.IdempotencyRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("idempotency_keys").
		Columns(
			"key_value",
			"scope",
			"request_hash",
			"response_data",
		).
		Values(
			record.KeyValue,
			record.Scope,
			record.RequestHash,
			string(record.ResponseData),
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// isUniqueViolation проверяет, что ошибка — нарушение уникального ограничения
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgUniqueViolation
}
