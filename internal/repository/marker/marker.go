package marker

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"tracking/internal/repository"
)

const keyPrefix = "tracking:proximity:notified:"

// Repository дедупликационные маркеры proximity-уведомлений.
// SETNX разруливает гонку почти одновременных семплов одной задачи:
// создать маркер успевает ровно один писатель, остальные видят false.
type Repository struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Repository {
	return &Repository{
		client: client,
		ttl:    ttl,
	}
}

// Create возвращает true, если маркер создан этим вызовом (уведомление еще
// не отправлялось), и false, если он уже существовал.
func (r *Repository) Create(ctx context.Context, taskID, thresholdKey string) (bool, error) {
	key := fmt.Sprintf("%s%s:%s", keyPrefix, taskID, thresholdKey)

	created, err := r.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), r.ttl).Result()
	if err != nil {
		return false, repository.StoreUnavailable("marker create", err)
	}
	return created, nil
}
