package location

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"tracking/internal/entities"
	"tracking/pkg/logger"
)

const (
	effectTrailAppend       = "trail_append"
	effectProximityEvaluate = "proximity_evaluate"
	effectBroadcastPublish  = "broadcast_publish"
)

// Location ingest-пайплайн позиций курьеров.
//
// Единственный синхронный эффект — запись в эфемерный индекс: от него зависят
// чтения, и только его результат уходит клиенту. Остальные три эффекта (трек,
// proximity, broadcast) разъезжаются по независимым горутинам, каждая со своим
// таймаутом и recover: отказ или задержка одного эффекта не трогает остальные.
type Location struct {
	log           handlerLogger
	index         GeoIndex
	trail         Trail
	proximity     ProximityEngine
	broadcaster   Broadcaster
	effectTimeout time.Duration

	// wg только для детерминированного завершения эффектов в тестах
	wg sync.WaitGroup
}

func New(
	log handlerLogger,
	index GeoIndex,
	trail Trail,
	proximity ProximityEngine,
	broadcaster Broadcaster,
	effectTimeout time.Duration,
) *Location {
	return &Location{
		log:           log.With(),
		index:         index,
		trail:         trail,
		proximity:     proximity,
		broadcaster:   broadcaster,
		effectTimeout: effectTimeout,
	}
}

// Ingest принимает один семпл. Last write wins: устаревший семпл, доехавший
// поздно, легитимно перезапишет более свежий — индекс обещает только
// eventual freshness в пределах TTL.
func (s *Location) Ingest(ctx context.Context, sample entities.LocationSample) error {
	if err := validateSample(&sample); err != nil {
		return err
	}

	if sample.CapturedAt.IsZero() {
		sample.CapturedAt = time.Now().UTC()
	}

	upsertCtx, cancel := context.WithTimeout(ctx, s.effectTimeout)
	defer cancel()

	if err := s.index.Upsert(upsertCtx, sample); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	// эффекты переживают отмену входящего запроса
	base := context.WithoutCancel(ctx)
	s.dispatch(base, effectTrailAppend, func(ctx context.Context) error {
		return s.appendTrail(ctx, sample)
	})
	s.dispatch(base, effectProximityEvaluate, func(ctx context.Context) error {
		if sample.TaskID == nil {
			return nil
		}
		return s.proximity.Evaluate(ctx, sample)
	})
	s.dispatch(base, effectBroadcastPublish, func(ctx context.Context) error {
		if sample.TaskID == nil {
			return nil
		}
		s.broadcaster.PublishLocation(*sample.TaskID, sample)
		return nil
	})

	return nil
}

// IngestBatch досылка семплов после потери связи: весь батч уходит в трек
// атомарно (частичный успех репортится поэлементно), а самый свежий семпл
// дополнительно проходит обычный ingest-путь.
func (s *Location) IngestBatch(ctx context.Context, samples []entities.LocationSample) (entities.BatchAppendResult, error) {
	if len(samples) == 0 {
		return entities.BatchAppendResult{}, ErrEmptyBatch
	}

	now := time.Now().UTC()
	records := make([]entities.HistoryRecord, 0, len(samples))
	// позиция записи в records -> индекс семпла в исходном батче
	sampleIdx := make([]int, 0, len(samples))
	result := entities.BatchAppendResult{}
	newestIdx := -1

	for i := range samples {
		if err := validateSample(&samples[i]); err != nil {
			result.Failed = append(result.Failed, entities.BatchAppendError{Index: i, Err: err})
			continue
		}
		if samples[i].CapturedAt.IsZero() {
			samples[i].CapturedAt = now
		}
		if newestIdx == -1 || samples[i].CapturedAt.After(samples[newestIdx].CapturedAt) {
			newestIdx = i
		}
		records = append(records, newHistoryRecord(&samples[i]))
		sampleIdx = append(sampleIdx, i)
	}

	if len(records) == 0 {
		return result, fmt.Errorf("ingest batch: no valid samples: %w", ErrInvalidCoordinates)
	}

	appendResult, err := s.trail.AppendBatch(ctx, records)
	if err != nil {
		return result, fmt.Errorf("ingest batch: %w", err)
	}
	result.Appended = appendResult.Appended
	// хранилище нумерует ошибки по отфильтрованному слайсу, клиент видит
	// индексы исходного батча
	for _, failed := range appendResult.Failed {
		failed.Index = sampleIdx[failed.Index]
		result.Failed = append(result.Failed, failed)
	}

	newest := samples[newestIdx]

	upsertCtx, cancel := context.WithTimeout(ctx, s.effectTimeout)
	defer cancel()
	if err := s.index.Upsert(upsertCtx, newest); err != nil {
		return result, fmt.Errorf("ingest batch: %w", err)
	}

	base := context.WithoutCancel(ctx)
	s.dispatch(base, effectProximityEvaluate, func(ctx context.Context) error {
		if newest.TaskID == nil {
			return nil
		}
		return s.proximity.Evaluate(ctx, newest)
	})
	s.dispatch(base, effectBroadcastPublish, func(ctx context.Context) error {
		if newest.TaskID == nil {
			return nil
		}
		s.broadcaster.PublishLocation(*newest.TaskID, newest)
		return nil
	})

	return result, nil
}

func (s *Location) CurrentLocation(ctx context.Context, courierID int64) (*entities.LocationSample, error) {
	if !isValidCourierID(courierID) {
		return nil, ErrInvalidCourierID
	}

	sample, err := s.index.Lookup(ctx, courierID)
	if err != nil {
		return nil, fmt.Errorf("current location: %w", err)
	}
	return sample, nil
}

// Wait дожидается завершения всех запущенных эффектов. Используется в тестах
// и при graceful shutdown.
func (s *Location) Wait() {
	s.wg.Wait()
}

// appendTrail best-effort запись в трек с одним повтором. Неудача после
// повтора — принятая потеря: трек не авторитативен для live-состояния.
func (s *Location) appendTrail(ctx context.Context, sample entities.LocationSample) error {
	record := newHistoryRecord(&sample)

	_, err := s.trail.Append(ctx, record)
	if err == nil {
		return nil
	}

	s.log.With(
		logger.NewField("courier_id", sample.CourierID),
		logger.NewField("error", err),
	).Warn("trail append failed, retrying once")

	if _, err = s.trail.Append(ctx, record); err != nil {
		return fmt.Errorf("trail append retry: %w", err)
	}
	return nil
}

func (s *Location) dispatch(ctx context.Context, effect string, fn func(context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				IngestEffectPanicsTotal.WithLabelValues(effect).Inc()
				s.log.With(
					logger.NewField("effect", effect),
					logger.NewField("recover", r),
					logger.NewField("stack", debug.Stack()),
				).Error("ingest effect panic")
			}
		}()

		effectCtx, cancel := context.WithTimeout(ctx, s.effectTimeout)
		defer cancel()

		if err := fn(effectCtx); err != nil {
			IngestEffectFailuresTotal.WithLabelValues(effect).Inc()
			s.log.With(
				logger.NewField("effect", effect),
				logger.NewField("error", err),
			).Warn("ingest effect failed")
		}
	}()
}

func validateSample(sample *entities.LocationSample) error {
	if !isValidCourierID(sample.CourierID) {
		return ErrInvalidCourierID
	}
	if !isValidLat(sample.Lat) || !isValidLng(sample.Lng) {
		return ErrInvalidCoordinates
	}
	return nil
}

func newHistoryRecord(sample *entities.LocationSample) entities.HistoryRecord {
	capturedAt := sample.CapturedAt.UTC()
	return entities.HistoryRecord{
		CourierID:       sample.CourierID,
		DateBucket:      time.Date(capturedAt.Year(), capturedAt.Month(), capturedAt.Day(), 0, 0, 0, 0, time.UTC),
		TimestampMicros: capturedAt.UnixMicro(),
		Lat:             sample.Lat,
		Lng:             sample.Lng,
		Accuracy:        sample.Accuracy,
		Speed:           sample.Speed,
		Heading:         sample.Heading,
		TaskID:          sample.TaskID,
		EventType:       entities.HistoryEventLocation,
	}
}
