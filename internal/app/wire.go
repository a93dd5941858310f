//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"net/http"
	"time"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"tracking/internal/broadcast"
	eventsGateway "tracking/internal/gateway/kafka/events"
	taskinfoGateway "tracking/internal/gateway/taskinfo"
	"tracking/internal/handlers/rest/distance_get"
	"tracking/internal/handlers/rest/history_get"
	"tracking/internal/handlers/rest/last_location_get"
	"tracking/internal/handlers/rest/location_get"
	"tracking/internal/handlers/rest/location_post"
	"tracking/internal/handlers/rest/locations_post"
	"tracking/internal/handlers/rest/nearby_get"
	"tracking/internal/handlers/rest/presence_available_put"
	"tracking/internal/handlers/rest/presence_get"
	"tracking/internal/handlers/rest/presence_online_put"
	"tracking/internal/handlers/rest/task_path_get"
	"tracking/internal/handlers/tasks/group_cleanup"
	"tracking/internal/pkg/auth"
	"tracking/internal/pkg/config"

	geoindexRepo "tracking/internal/repository/geoindex"
	markerRepo "tracking/internal/repository/marker"
	presenceRepo "tracking/internal/repository/presence"
	trailRepo "tracking/internal/repository/trail"
	historyService "tracking/internal/service/history"
	locationService "tracking/internal/service/location"
	nearbyService "tracking/internal/service/nearby"
	presenceService "tracking/internal/service/presence"
	proximityService "tracking/internal/service/proximity"

	"tracking/pkg/background"
	"tracking/pkg/logger"
	"tracking/pkg/querier"
	"tracking/pkg/tx"
)

type (
	CleanupInterval time.Duration
)

type Application struct {
	ServiceLocation   ServiceLocation
	ServiceHistory    ServiceHistory
	ServicePresence   ServicePresence
	ServiceNearby     ServiceNearby
	Hub               *broadcast.Hub
	AuthManager       *auth.Manager
	BackgroundWorkers *background.Worker
}

type ServiceLocation interface {
	location_post.Service
	locations_post.Service
	location_get.Service
	Wait()
}

type ServiceHistory interface {
	history_get.Service
	last_location_get.Service
	distance_get.Service
	task_path_get.Service
}

type ServicePresence interface {
	presence_online_put.Service
	presence_available_put.Service
	presence_get.Service
}

type ServiceNearby interface {
	nearby_get.Service
}

// InitializeApplication для HTTP+WebSocket сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *redis.Client,
	producer sarama.SyncProducer,
	httpClient *http.Client,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideCleanupInterval,

		provideTrailRepository,
		provideGeoIndexRepository,
		providePresenceRepository,
		provideMarkerRepository,

		provideTaskGateway,
		provideEventsGateway,

		provideHub,
		provideAuthManager,

		provideServiceHistory,
		provideProximityEngine,
		provideServiceLocation,
		provideServicePresence,
		provideServiceNearby,

		provideGroupCleanupTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceLocation), new(*locationService.Location)),
		wire.Bind(new(ServiceHistory), new(*historyService.History)),
		wire.Bind(new(ServicePresence), new(*presenceService.Presence)),
		wire.Bind(new(ServiceNearby), new(*nearbyService.Nearby)),

		wire.Bind(new(historyService.Repository), new(*trailRepo.Repository)),
		wire.Bind(new(historyService.TxManager), new(*tx.Manager)),

		wire.Bind(new(locationService.GeoIndex), new(*geoindexRepo.Repository)),
		wire.Bind(new(locationService.Trail), new(*historyService.History)),
		wire.Bind(new(locationService.ProximityEngine), new(*proximityService.Engine)),
		wire.Bind(new(locationService.Broadcaster), new(*broadcast.Hub)),

		wire.Bind(new(proximityService.TaskGateway), new(*taskinfoGateway.Gateway)),
		wire.Bind(new(proximityService.Markers), new(*markerRepo.Repository)),
		wire.Bind(new(proximityService.EventPublisher), new(*eventsGateway.Gateway)),
		wire.Bind(new(proximityService.StatusBroadcaster), new(*broadcast.Hub)),

		wire.Bind(new(presenceService.Repository), new(*presenceRepo.Repository)),
		wire.Bind(new(presenceService.GeoIndex), new(*geoindexRepo.Repository)),

		wire.Bind(new(nearbyService.GeoIndex), new(*geoindexRepo.Repository)),
		wire.Bind(new(nearbyService.PresenceReader), new(*presenceService.Presence)),

		wire.Bind(new(group_cleanup.Hub), new(*broadcast.Hub)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	HistoryService *historyService.History
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-task-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideTrailRepository,
		provideServiceHistory,

		wire.Bind(new(historyService.Repository), new(*trailRepo.Repository)),
		wire.Bind(new(historyService.TxManager), new(*tx.Manager)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideTrailRepository(querier *querier.Querier) *trailRepo.Repository {
	return trailRepo.New(querier)
}

func provideGeoIndexRepository(client *redis.Client, cfg *config.Config) *geoindexRepo.Repository {
	return geoindexRepo.New(client, cfg.Tracking.LocationTTL, cfg.Tracking.GeoFallbackEnabled)
}

func providePresenceRepository(client *redis.Client) *presenceRepo.Repository {
	return presenceRepo.New(client)
}

func provideMarkerRepository(client *redis.Client, cfg *config.Config) *markerRepo.Repository {
	return markerRepo.New(client, cfg.Tracking.MarkerTTL)
}

func provideTaskGateway(httpClient *http.Client, cfg *config.Config) *taskinfoGateway.Gateway {
	return taskinfoGateway.New(cfg.TaskService.BaseURL, httpClient)
}

func provideEventsGateway(log logger.Logger, producer sarama.SyncProducer, cfg *config.Config) *eventsGateway.Gateway {
	return eventsGateway.New(log, producer, cfg.Kafka.ProducerTopic)
}

func provideHub(log logger.Logger) *broadcast.Hub {
	return broadcast.NewHub(log)
}

func provideAuthManager(cfg *config.Config) *auth.Manager {
	return auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func provideServiceHistory(
	repository historyService.Repository,
	txManager historyService.TxManager,
	cfg *config.Config,
) *historyService.History {
	return historyService.New(repository, txManager, cfg.Tracking.HistoryDefaultLimit)
}

// provideProximityEngine создает движок SHIPPER_NEARBY для конвейера локаций
func provideProximityEngine(
	log logger.Logger,
	gateway proximityService.TaskGateway,
	markers proximityService.Markers,
	events proximityService.EventPublisher,
	hub proximityService.StatusBroadcaster,
	cfg *config.Config,
) *proximityService.Engine {
	return proximityService.New(log, gateway, markers, events, hub, cfg.Tracking.ProximityThresholdMeters)
}

func provideServiceLocation(
	log logger.Logger,
	index locationService.GeoIndex,
	trail locationService.Trail,
	proximity locationService.ProximityEngine,
	broadcaster locationService.Broadcaster,
	cfg *config.Config,
) *locationService.Location {
	return locationService.New(log, index, trail, proximity, broadcaster, cfg.Tracking.EffectTimeout)
}

func provideServicePresence(
	log logger.Logger,
	repository presenceService.Repository,
	index presenceService.GeoIndex,
) *presenceService.Presence {
	return presenceService.New(log, repository, index)
}

func provideServiceNearby(
	index nearbyService.GeoIndex,
	presence nearbyService.PresenceReader,
	cfg *config.Config,
) *nearbyService.Nearby {
	return nearbyService.New(index, presence, cfg.Tracking.NearbyOverfetchFactor)
}

func provideCleanupInterval(cfg *config.Config) CleanupInterval {
	return CleanupInterval(cfg.Tasks.GroupCleanupInterval)
}

func provideGroupCleanupTask(
	log logger.Logger,
	hub group_cleanup.Hub,
	interval CleanupInterval,
) *group_cleanup.GroupCleanup {
	return group_cleanup.NewGroupCleanup(log, hub, time.Duration(interval))
}

func provideTaskList(
	groupCleanupTask *group_cleanup.GroupCleanup,
) []background.Task {
	return []background.Task{
		groupCleanupTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
