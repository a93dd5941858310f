package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html#23505:~:text=foreign_key_violation-,23505,-unique_violation
const PgErrUniqueViolation = "23505"

// ErrStoreUnavailable бэкенд хранилища (Redis/Postgres) недоступен или не ответил
// за таймаут. Для ingest-пайплайна это soft failure: эффект логируется и пропускается.
var ErrStoreUnavailable = errors.New("store unavailable")

// StoreUnavailable оборачивает ошибку соединения в ErrStoreUnavailable,
// сохраняя исходную причину в цепочке.
func StoreUnavailable(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStoreUnavailable, err))
}

func IsPgErrorWithCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
