package geoindex

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"tracking/internal/entities"
	"tracking/internal/repository"
	"tracking/internal/service/location"
)

const (
	geoKey          = "tracking:couriers:geo"
	detailKeyPrefix = "tracking:couriers:loc:"
)

// Repository эфемерный геоиндекс поверх Redis.
//
// Две структуры на курьера: member в GEO-множестве (координаты для радиусного
// поиска) и hash с деталями последнего семпла, на котором висит TTL. GEO-member
// сам по себе не истекает, поэтому признак жизни позиции — существование hash:
// протухшие member'ы отфильтровываются при чтении и лениво удаляются из
// GEO-множества, так что рассинхрон живет не дольше одного цикла записи.
type Repository struct {
	client          *redis.Client
	ttl             time.Duration
	fallbackEnabled bool
}

func New(client *redis.Client, ttl time.Duration, fallbackEnabled bool) *Repository {
	return &Repository{
		client:          client,
		ttl:             ttl,
		fallbackEnabled: fallbackEnabled,
	}
}

// Upsert перезаписывает позицию курьера и обновляет TTL одним tx-пайплайном.
// Del перед HSet, чтобы опциональные поля прошлого семпла не пережили новый.
func (r *Repository) Upsert(ctx context.Context, sample entities.LocationSample) error {
	detailKey := detailKeyPrefix + strconv.FormatInt(sample.CourierID, 10)

	pipe := r.client.TxPipeline()
	pipe.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      strconv.FormatInt(sample.CourierID, 10),
		Longitude: sample.Lng,
		Latitude:  sample.Lat,
	})
	pipe.Del(ctx, detailKey)
	pipe.HSet(ctx, detailKey, fromDomain(&sample))
	pipe.Expire(ctx, detailKey, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return repository.StoreUnavailable("geoindex upsert", err)
	}
	return nil
}

func (r *Repository) Lookup(ctx context.Context, courierID int64) (*entities.LocationSample, error) {
	detailKey := detailKeyPrefix + strconv.FormatInt(courierID, 10)

	fields, err := r.client.HGetAll(ctx, detailKey).Result()
	if err != nil {
		return nil, repository.StoreUnavailable("geoindex lookup", err)
	}
	if len(fields) == 0 {
		return nil, location.ErrLocationNotFound
	}

	sample, err := toDomain(courierID, fields)
	if err != nil {
		return nil, fmt.Errorf("geoindex lookup: %w", err)
	}
	return sample, nil
}

func (r *Repository) Evict(ctx context.Context, courierID int64) error {
	member := strconv.FormatInt(courierID, 10)

	pipe := r.client.TxPipeline()
	pipe.ZRem(ctx, geoKey, member)
	pipe.Del(ctx, detailKeyPrefix+member)

	if _, err := pipe.Exec(ctx); err != nil {
		return repository.StoreUnavailable("geoindex evict", err)
	}
	return nil
}

// Nearby радиусный поиск. Основной путь — GEOSEARCH, деградированный — legacy
// GEORADIUS (для Redis < 6.2). Форма ответа одинаковая, различается только
// SearchPath. Тай-брейк по возрастанию ID курьера для детерминизма.
func (r *Repository) Nearby(ctx context.Context, center entities.GeoPoint, radiusKm float64, limit int, ascending bool) ([]entities.NearbyCourier, entities.SearchPath, error) {
	locations, err := r.searchPrimary(ctx, center, radiusKm, limit, ascending)
	path := entities.SearchPathPrimary

	if err != nil {
		if !r.fallbackEnabled {
			return nil, entities.SearchPathUnavailable, repository.StoreUnavailable("geoindex nearby", err)
		}

		locations, err = r.searchFallback(ctx, center, radiusKm, limit, ascending)
		path = entities.SearchPathFallback
		if err != nil {
			return nil, entities.SearchPathUnavailable, repository.StoreUnavailable("geoindex nearby fallback", err)
		}
	}

	couriers, err := r.dropExpired(ctx, locations)
	if err != nil {
		return nil, entities.SearchPathUnavailable, err
	}

	sortByDistance(couriers, ascending)
	if len(couriers) > limit {
		couriers = couriers[:limit]
	}
	return couriers, path, nil
}

func (r *Repository) searchPrimary(ctx context.Context, center entities.GeoPoint, radiusKm float64, limit int, ascending bool) ([]redis.GeoLocation, error) {
	sortOrder := "ASC"
	if !ascending {
		sortOrder = "DESC"
	}

	return r.client.GeoSearchLocation(ctx, geoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  center.Lng,
			Latitude:   center.Lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       sortOrder,
			Count:      limit,
		},
		WithCoord: true,
		WithDist:  true,
	}).Result()
}

func (r *Repository) searchFallback(ctx context.Context, center entities.GeoPoint, radiusKm float64, limit int, ascending bool) ([]redis.GeoLocation, error) {
	sortOrder := "ASC"
	if !ascending {
		sortOrder = "DESC"
	}

	return r.client.GeoRadius(ctx, geoKey, center.Lng, center.Lat, &redis.GeoRadiusQuery{
		Radius:    radiusKm,
		Unit:      "km",
		WithCoord: true,
		WithDist:  true,
		Count:     limit,
		Sort:      sortOrder,
	}).Result()
}

// dropExpired убирает member'ы, чей detail-hash уже истек, и лениво чистит их
// из GEO-множества.
func (r *Repository) dropExpired(ctx context.Context, locations []redis.GeoLocation) ([]entities.NearbyCourier, error) {
	if len(locations) == 0 {
		return []entities.NearbyCourier{}, nil
	}

	pipe := r.client.Pipeline()
	existsCmds := make([]*redis.IntCmd, len(locations))
	for i, loc := range locations {
		existsCmds[i] = pipe.Exists(ctx, detailKeyPrefix+loc.Name)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, repository.StoreUnavailable("geoindex nearby liveness", err)
	}

	couriers := make([]entities.NearbyCourier, 0, len(locations))
	var dead []interface{}
	for i, loc := range locations {
		if existsCmds[i].Val() == 0 {
			dead = append(dead, loc.Name)
			continue
		}

		courierID, err := strconv.ParseInt(loc.Name, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("geoindex nearby: bad member %q: %w", loc.Name, err)
		}

		couriers = append(couriers, entities.NearbyCourier{
			CourierID:  courierID,
			DistanceKm: loc.Dist,
			Lat:        loc.Latitude,
			Lng:        loc.Longitude,
		})
	}

	if len(dead) > 0 {
		// ошибка очистки не влияет на результат поиска
		_ = r.client.ZRem(ctx, geoKey, dead...).Err()
	}
	return couriers, nil
}

func sortByDistance(couriers []entities.NearbyCourier, ascending bool) {
	sort.Slice(couriers, func(i, j int) bool {
		if couriers[i].DistanceKm != couriers[j].DistanceKm {
			if ascending {
				return couriers[i].DistanceKm < couriers[j].DistanceKm
			}
			return couriers[i].DistanceKm > couriers[j].DistanceKm
		}
		return couriers[i].CourierID < couriers[j].CourierID
	})
}
