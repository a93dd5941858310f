package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tracking/internal/entities"
	"tracking/pkg/geo"
)

// distanceQueryLimit верхняя граница выборки точек для расчета дистанции:
// курьер с семплом раз в ~2 секунды укладывается в нее за сутки.
const distanceQueryLimit = 50000

// History сервис исторического трека поверх append-only хранилища.
// Отсутствие данных за день — пустой результат, не ошибка.
type History struct {
	repository   Repository
	txManager    TxManager
	defaultLimit int
}

func New(repository Repository, txManager TxManager, defaultLimit int) *History {
	return &History{
		repository:   repository,
		txManager:    txManager,
		defaultLimit: defaultLimit,
	}
}

func (s *History) Append(ctx context.Context, record entities.HistoryRecord) (int64, error) {
	if err := validateRecord(&record); err != nil {
		return 0, err
	}

	id, err := s.repository.Append(ctx, record)
	if err != nil {
		return 0, fmt.Errorf("append history record: %w", err)
	}
	return id, nil
}

// AppendBatch атомарная запись пачки в одной транзакции. Если транзакция
// не прошла по ошибке соединения, деградируем до поэлементной записи с
// частичным успехом — итог репортится per-record, без общего отката.
func (s *History) AppendBatch(ctx context.Context, records []entities.HistoryRecord) (entities.BatchAppendResult, error) {
	if len(records) == 0 {
		return entities.BatchAppendResult{}, ErrEmptyBatch
	}

	for i := range records {
		if err := validateRecord(&records[i]); err != nil {
			return entities.BatchAppendResult{}, fmt.Errorf("record %d: %w", i, err)
		}
	}

	txErr := s.txManager.Do(ctx, func(ctx context.Context) error {
		for i := range records {
			if _, err := s.repository.Append(ctx, records[i]); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
		}
		return nil
	})
	if txErr == nil {
		return entities.BatchAppendResult{Appended: len(records)}, nil
	}
	if errors.Is(txErr, context.Canceled) || errors.Is(txErr, context.DeadlineExceeded) {
		return entities.BatchAppendResult{}, fmt.Errorf("append batch: %w", txErr)
	}

	result := entities.BatchAppendResult{}
	for i := range records {
		if _, err := s.repository.Append(ctx, records[i]); err != nil {
			result.Failed = append(result.Failed, entities.BatchAppendError{Index: i, Err: err})
			continue
		}
		result.Appended++
	}
	return result, nil
}

// History записи партиции (courierID, dateBucket), порядок ts_micros DESC,
// id DESC. Пустой день — пустой список.
func (s *History) History(ctx context.Context, courierID int64, dateBucket time.Time, params entities.HistoryQuery) ([]entities.HistoryRecord, error) {
	if !isValidCourierID(courierID) {
		return nil, ErrInvalidCourierID
	}
	if dateBucket.IsZero() {
		return nil, ErrInvalidDateBucket
	}
	if params.FromMicros != nil && params.ToMicros != nil && *params.FromMicros > *params.ToMicros {
		return nil, ErrInvalidTimeRange
	}

	limit := s.defaultLimit
	if params.Limit != nil {
		if *params.Limit <= 0 {
			return nil, ErrInvalidLimit
		}
		limit = *params.Limit
	}

	records, err := s.repository.Query(ctx, courierID, normalizeDate(dateBucket), params, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return records, nil
}

func (s *History) TaskPath(ctx context.Context, courierID int64, taskID string, dateBucket time.Time) ([]entities.HistoryRecord, error) {
	if !isValidCourierID(courierID) {
		return nil, ErrInvalidCourierID
	}
	if strings.TrimSpace(taskID) == "" {
		return nil, ErrInvalidTaskID
	}
	if dateBucket.IsZero() {
		return nil, ErrInvalidDateBucket
	}

	records, err := s.repository.QueryByTask(ctx, courierID, taskID, normalizeDate(dateBucket))
	if err != nil {
		return nil, fmt.Errorf("query task path: %w", err)
	}
	return records, nil
}

func (s *History) LastRecord(ctx context.Context, courierID int64, dateBucket time.Time) (*entities.HistoryRecord, error) {
	if !isValidCourierID(courierID) {
		return nil, ErrInvalidCourierID
	}
	if dateBucket.IsZero() {
		return nil, ErrInvalidDateBucket
	}

	record, err := s.repository.LastRecord(ctx, courierID, normalizeDate(dateBucket))
	if err != nil {
		return nil, fmt.Errorf("last record: %w", err)
	}
	return record, nil
}

// TotalDistance пройденные километры за день: попарная сумма расстояний по
// большой окружности по упорядоченному списку. Меньше двух точек — 0.
func (s *History) TotalDistance(ctx context.Context, courierID int64, dateBucket time.Time) (float64, error) {
	if !isValidCourierID(courierID) {
		return 0, ErrInvalidCourierID
	}
	if dateBucket.IsZero() {
		return 0, ErrInvalidDateBucket
	}

	records, err := s.repository.Query(ctx, courierID, normalizeDate(dateBucket), entities.HistoryQuery{}, distanceQueryLimit)
	if err != nil {
		return 0, fmt.Errorf("total distance: %w", err)
	}

	points := make([][2]float64, 0, len(records))
	for i := range records {
		if records[i].EventType != entities.HistoryEventLocation {
			continue
		}
		points = append(points, [2]float64{records[i].Lat, records[i].Lng})
	}

	return geo.PathDistanceKm(points), nil
}

func validateRecord(record *entities.HistoryRecord) error {
	if !isValidCourierID(record.CourierID) {
		return ErrInvalidCourierID
	}
	if record.DateBucket.IsZero() {
		return ErrInvalidDateBucket
	}
	record.DateBucket = normalizeDate(record.DateBucket)
	return nil
}

func isValidCourierID(id int64) bool {
	return id > 0
}

func normalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
