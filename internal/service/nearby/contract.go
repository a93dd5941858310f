//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=nearby_test
package nearby

import (
	"context"

	"tracking/internal/entities"
)

type GeoIndex interface {
	Nearby(ctx context.Context, center entities.GeoPoint, radiusKm float64, limit int, ascending bool) ([]entities.NearbyCourier, entities.SearchPath, error)
}

type PresenceReader interface {
	BulkStatus(ctx context.Context, courierIDs []int64) (map[int64]entities.PresenceState, error)
}
