package entities

import "time"

// LocationSample последняя известная позиция курьера в эфемерном индексе.
// На курьера живет ровно одна запись: новая запись перезаписывает предыдущую
// и обновляет ее TTL (last write wins, без проверки монотонности CapturedAt).
type LocationSample struct {
	CourierID  int64
	Lat        float64
	Lng        float64
	Accuracy   *float64
	Speed      *float64
	Heading    *float64
	TaskID     *string
	CapturedAt time.Time
}

// NearbyCourier результат радиусного поиска по эфемерному индексу.
type NearbyCourier struct {
	CourierID  int64
	DistanceKm float64
	Lat        float64
	Lng        float64
}

// SearchPath каким путем был выполнен радиусный поиск.
type SearchPath string

const (
	SearchPathPrimary     SearchPath = "primary"
	SearchPathFallback    SearchPath = "fallback"
	SearchPathUnavailable SearchPath = "unavailable"
)

func (p SearchPath) String() string {
	return string(p)
}

// GeoPoint координаты точки.
type GeoPoint struct {
	Lat float64
	Lng float64
}
