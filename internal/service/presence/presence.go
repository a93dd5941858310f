package presence

import (
	"context"
	"fmt"

	"tracking/internal/entities"
	"tracking/pkg/logger"
)

// Presence единственный владелец переходов online/available.
// Инвариант available ⊆ online держится здесь: репозиторий хранит
// множества, переходы задает сервис.
type Presence struct {
	log        handlerLogger
	repository Repository
	index      GeoIndex
}

func New(log handlerLogger, repository Repository, index GeoIndex) *Presence {
	return &Presence{
		log:        log.With(),
		repository: repository,
		index:      index,
	}
}

// SetOnline при уходе в офлайн одной логической операцией снимает
// availability и выселяет позицию из эфемерного индекса. Выселение
// best-effort: его отказ не откатывает переход флагов.
func (s *Presence) SetOnline(ctx context.Context, courierID int64, online bool) error {
	if !isValidCourierID(courierID) {
		return ErrInvalidCourierID
	}

	if err := s.repository.SetOnline(ctx, courierID, online); err != nil {
		return fmt.Errorf("set online: %w", err)
	}

	if !online {
		if err := s.index.Evict(ctx, courierID); err != nil {
			s.log.With(
				logger.NewField("courier_id", courierID),
				logger.NewField("error", err),
			).Warn("evict on offline failed")
		}
	}
	return nil
}

// SetAvailable для офлайнового курьера — no-op с предупреждением, флаг не
// ставится и клиенту возвращается успех: ошибка тут ломала бы клиентов,
// у которых сигнал availability обгоняет сигнал online.
func (s *Presence) SetAvailable(ctx context.Context, courierID int64, available bool) error {
	if !isValidCourierID(courierID) {
		return ErrInvalidCourierID
	}

	if available {
		online, err := s.repository.IsOnline(ctx, courierID)
		if err != nil {
			return fmt.Errorf("set available: %w", err)
		}
		if !online {
			s.log.With(
				logger.NewField("courier_id", courierID),
			).Warn("set available ignored for offline courier")
			return nil
		}
	}

	if err := s.repository.SetAvailable(ctx, courierID, available); err != nil {
		return fmt.Errorf("set available: %w", err)
	}
	return nil
}

func (s *Presence) IsOnline(ctx context.Context, courierID int64) (bool, error) {
	if !isValidCourierID(courierID) {
		return false, ErrInvalidCourierID
	}

	online, err := s.repository.IsOnline(ctx, courierID)
	if err != nil {
		return false, fmt.Errorf("is online: %w", err)
	}
	return online, nil
}

func (s *Presence) IsAvailable(ctx context.Context, courierID int64) (bool, error) {
	if !isValidCourierID(courierID) {
		return false, ErrInvalidCourierID
	}

	available, err := s.repository.IsAvailable(ctx, courierID)
	if err != nil {
		return false, fmt.Errorf("is available: %w", err)
	}
	return available, nil
}

func (s *Presence) BulkStatus(ctx context.Context, courierIDs []int64) (map[int64]entities.PresenceState, error) {
	for _, id := range courierIDs {
		if !isValidCourierID(id) {
			return nil, ErrInvalidCourierID
		}
	}

	statuses, err := s.repository.BulkStatus(ctx, courierIDs)
	if err != nil {
		return nil, fmt.Errorf("bulk status: %w", err)
	}
	return statuses, nil
}

func isValidCourierID(id int64) bool {
	return id > 0
}
