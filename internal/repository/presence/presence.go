package presence

import (
	"context"

	"github.com/redis/go-redis/v9"
	"tracking/internal/entities"
	"tracking/internal/repository"
)

const (
	onlineKey    = "tracking:couriers:online"
	availableKey = "tracking:couriers:available"
)

// Repository membership-множества присутствия в Redis.
// Атомарность per-key операций Redis снимает необходимость внешних локов:
// конкурентные SADD/SREM по одному курьеру коммутируют до last-write-wins.
type Repository struct {
	client *redis.Client
}

func New(client *redis.Client) *Repository {
	return &Repository{
		client: client,
	}
}

// SetOnline переключает флаг online. Уход в офлайн одним tx-пайплайном
// выбрасывает курьера из обоих множеств: available ⊆ online.
func (r *Repository) SetOnline(ctx context.Context, courierID int64, online bool) error {
	if online {
		if err := r.client.SAdd(ctx, onlineKey, courierID).Err(); err != nil {
			return repository.StoreUnavailable("presence set online", err)
		}
		return nil
	}

	pipe := r.client.TxPipeline()
	pipe.SRem(ctx, onlineKey, courierID)
	pipe.SRem(ctx, availableKey, courierID)
	if _, err := pipe.Exec(ctx); err != nil {
		return repository.StoreUnavailable("presence set offline", err)
	}
	return nil
}

func (r *Repository) SetAvailable(ctx context.Context, courierID int64, available bool) error {
	var err error
	if available {
		err = r.client.SAdd(ctx, availableKey, courierID).Err()
	} else {
		err = r.client.SRem(ctx, availableKey, courierID).Err()
	}
	if err != nil {
		return repository.StoreUnavailable("presence set available", err)
	}
	return nil
}

func (r *Repository) IsOnline(ctx context.Context, courierID int64) (bool, error) {
	online, err := r.client.SIsMember(ctx, onlineKey, courierID).Result()
	if err != nil {
		return false, repository.StoreUnavailable("presence is online", err)
	}
	return online, nil
}

func (r *Repository) IsAvailable(ctx context.Context, courierID int64) (bool, error) {
	available, err := r.client.SIsMember(ctx, availableKey, courierID).Result()
	if err != nil {
		return false, repository.StoreUnavailable("presence is available", err)
	}
	return available, nil
}

// BulkStatus статусы пачки курьеров одним пайплайном.
func (r *Repository) BulkStatus(ctx context.Context, courierIDs []int64) (map[int64]entities.PresenceState, error) {
	result := make(map[int64]entities.PresenceState, len(courierIDs))
	if len(courierIDs) == 0 {
		return result, nil
	}

	pipe := r.client.Pipeline()
	onlineCmds := make([]*redis.BoolCmd, len(courierIDs))
	availableCmds := make([]*redis.BoolCmd, len(courierIDs))
	for i, id := range courierIDs {
		onlineCmds[i] = pipe.SIsMember(ctx, onlineKey, id)
		availableCmds[i] = pipe.SIsMember(ctx, availableKey, id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, repository.StoreUnavailable("presence bulk status", err)
	}

	for i, id := range courierIDs {
		result[id] = entities.PresenceState{
			CourierID: id,
			Online:    onlineCmds[i].Val(),
			Available: availableCmds[i].Val(),
		}
	}
	return result, nil
}
