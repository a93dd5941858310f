package nearby

import (
	"context"
	"fmt"

	"tracking/internal/entities"
)

// Nearby поиск доступных курьеров в радиусе. Фильтр по присутствию
// накладывается после радиусного запроса (не push-down), поэтому индекс
// опрашивается с запасом overfetchFactor; гарантии ровно limit совпадений
// нет — возвращается то, что пережило фильтр.
type Nearby struct {
	index           GeoIndex
	presence        PresenceReader
	overfetchFactor int
}

func New(index GeoIndex, presence PresenceReader, overfetchFactor int) *Nearby {
	if overfetchFactor < 1 {
		overfetchFactor = 1
	}
	return &Nearby{
		index:           index,
		presence:        presence,
		overfetchFactor: overfetchFactor,
	}
}

// FindAvailable доступные курьеры в радиусе radiusKm от center, ближние
// первыми, тай-брейк по возрастанию ID.
func (s *Nearby) FindAvailable(ctx context.Context, center entities.GeoPoint, radiusKm float64, limit int) ([]entities.NearbyCourier, entities.SearchPath, error) {
	if center.Lat < -90 || center.Lat > 90 || center.Lng < -180 || center.Lng > 180 {
		return nil, entities.SearchPathUnavailable, ErrInvalidCoordinates
	}
	if radiusKm <= 0 {
		return nil, entities.SearchPathUnavailable, ErrInvalidRadius
	}
	if limit <= 0 {
		return nil, entities.SearchPathUnavailable, ErrInvalidLimit
	}

	candidates, path, err := s.index.Nearby(ctx, center, radiusKm, limit*s.overfetchFactor, true)
	if err != nil {
		return nil, path, fmt.Errorf("nearby search: %w", err)
	}
	if len(candidates) == 0 {
		return []entities.NearbyCourier{}, path, nil
	}

	ids := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.CourierID)
	}

	statuses, err := s.presence.BulkStatus(ctx, ids)
	if err != nil {
		return nil, path, fmt.Errorf("nearby presence filter: %w", err)
	}

	filtered := make([]entities.NearbyCourier, 0, len(candidates))
	for _, c := range candidates {
		if statuses[c.CourierID].Available {
			filtered = append(filtered, c)
		}
	}

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, path, nil
}
