//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=history_test
package history

import (
	"context"
	"time"

	"tracking/internal/entities"
)

type Repository interface {
	Append(ctx context.Context, record entities.HistoryRecord) (int64, error)
	Query(ctx context.Context, courierID int64, dateBucket time.Time, params entities.HistoryQuery, limit int) ([]entities.HistoryRecord, error)
	QueryByTask(ctx context.Context, courierID int64, taskID string, dateBucket time.Time) ([]entities.HistoryRecord, error)
	LastRecord(ctx context.Context, courierID int64, dateBucket time.Time) (*entities.HistoryRecord, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
