package trail

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"tracking/internal/entities"
	"tracking/internal/repository"
	"tracking/internal/service/history"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const historyTable = "courier_location_history"

var selectColumns = []string{
	"id", "courier_id", "date_bucket", "ts_micros",
	"lat", "lng", "accuracy", "speed", "heading",
	"task_id", "event_type", "metadata",
}

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Repository append-only хранилище исторического трека.
// Записи не обновляются и не удаляются — это audit trail.
type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// wrapStoreErr отделяет ответ Postgres от недоступности стора: *pgconn.PgError
// значит сервер запрос получил и отверг, все остальное (обрыв соединения,
// таймаут) — ErrStoreUnavailable.
func wrapStoreErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("unexpected trail repository %s error: %w", op, err)
	}
	return repository.StoreUnavailable("trail "+op, err)
}

func (r *Repository) Append(ctx context.Context, record entities.HistoryRecord) (int64, error) {
	model, err := fromDomain(&record)
	if err != nil {
		return 0, fmt.Errorf("trail repository append: %w", err)
	}

	query := `INSERT INTO courier_location_history
		(courier_id, date_bucket, ts_micros, lat, lng, accuracy, speed, heading, task_id, event_type, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var id int64
	err = r.querier.QueryRow(
		ctx,
		query,
		model.CourierID,
		model.DateBucket,
		model.TimestampMicros,
		model.Lat,
		model.Lng,
		model.Accuracy,
		model.Speed,
		model.Heading,
		model.TaskID,
		model.EventType,
		model.Metadata,
	).Scan(&id)
	if err != nil {
		return 0, wrapStoreErr("append", err)
	}

	return id, nil
}

// Query выборка партиции (courier_id, date_bucket) с опциональным диапазоном
// времени. Порядок строго ts_micros DESC, id DESC.
func (r *Repository) Query(ctx context.Context, courierID int64, dateBucket time.Time, params entities.HistoryQuery, limit int) ([]entities.HistoryRecord, error) {
	builder := qb.
		Select(selectColumns...).
		From(historyTable).
		Where(sq.Eq{"courier_id": courierID, "date_bucket": dateBucket}).
		OrderBy("ts_micros DESC", "id DESC").
		Limit(uint64(limit)) //nolint:gosec // limit валидируется сервисом

	if params.FromMicros != nil {
		builder = builder.Where(sq.GtOrEq{"ts_micros": *params.FromMicros})
	}
	if params.ToMicros != nil {
		builder = builder.Where(sq.LtOrEq{"ts_micros": *params.ToMicros})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected trail repository query error: %w", err)
	}

	return r.selectRecords(ctx, query, args)
}

// QueryByTask упорядоченный путь курьера по конкретной задаче за день.
func (r *Repository) QueryByTask(ctx context.Context, courierID int64, taskID string, dateBucket time.Time) ([]entities.HistoryRecord, error) {
	builder := qb.
		Select(selectColumns...).
		From(historyTable).
		Where(sq.Eq{
			"courier_id":  courierID,
			"task_id":     taskID,
			"date_bucket": dateBucket,
		}).
		OrderBy("ts_micros DESC", "id DESC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected trail repository querybytask error: %w", err)
	}

	return r.selectRecords(ctx, query, args)
}

func (r *Repository) LastRecord(ctx context.Context, courierID int64, dateBucket time.Time) (*entities.HistoryRecord, error) {
	builder := qb.
		Select(selectColumns...).
		From(historyTable).
		Where(sq.Eq{"courier_id": courierID, "date_bucket": dateBucket}).
		OrderBy("ts_micros DESC", "id DESC").
		Limit(1)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected trail repository lastrecord error: %w", err)
	}

	var model HistoryRecordDB
	err = r.querier.QueryRow(ctx, query, args...).
		Scan(
			&model.ID,
			&model.CourierID,
			&model.DateBucket,
			&model.TimestampMicros,
			&model.Lat,
			&model.Lng,
			&model.Accuracy,
			&model.Speed,
			&model.Heading,
			&model.TaskID,
			&model.EventType,
			&model.Metadata,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, history.ErrRecordNotFound
		}
		return nil, wrapStoreErr("lastrecord", err)
	}

	return toDomain(&model)
}

func (r *Repository) selectRecords(ctx context.Context, query string, args []interface{}) ([]entities.HistoryRecord, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("select", err)
	}
	defer rows.Close()

	models := make([]HistoryRecordDB, 0, 32)
	for rows.Next() {
		var model HistoryRecordDB
		err := rows.Scan(
			&model.ID,
			&model.CourierID,
			&model.DateBucket,
			&model.TimestampMicros,
			&model.Lat,
			&model.Lng,
			&model.Accuracy,
			&model.Speed,
			&model.Heading,
			&model.TaskID,
			&model.EventType,
			&model.Metadata,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected trail repository select error: %w", err)
		}
		models = append(models, model)
	}

	err = rows.Err()
	if err != nil {
		return nil, wrapStoreErr("select", err)
	}

	return toDomainList(models)
}
