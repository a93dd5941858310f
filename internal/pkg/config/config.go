package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	Tasks struct {
		GroupCleanupInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware  rate limiter capacity
		RateLimiterBurst int           // middlewarerate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	TaskService struct {
		BaseURL string
	}

	Auth struct {
		JWTSecret string
		TokenTTL  time.Duration
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		ProducerTopic   string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		TaskStatusChanged TaskStatusChanged
	}

	TaskStatusChanged struct {
		ProcessTimeout time.Duration
	}

	// Tracking доменные ручки движка: все имеют дефолты и в env опциональны.
	Tracking struct {
		LocationTTL              time.Duration
		ProximityThresholdMeters float64
		MarkerTTL                time.Duration
		HistoryDefaultLimit      int
		GeoFallbackEnabled       bool
		EffectTimeout            time.Duration
		NearbyOverfetchFactor    int
		SubscriberBuffer         int
	}

	Config struct {
		Tasks       Tasks
		Server      HTTPServer
		Database    Database
		Redis       Redis
		TaskService TaskService
		Auth        Auth
		Kafka       Kafka
		Tracking    Tracking
	}
)

const (
	defaultLocationTTL              = 300 * time.Second
	defaultProximityThresholdMeters = 500.0
	defaultMarkerTTL                = 24 * time.Hour
	defaultHistoryLimit             = 100
	defaultEffectTimeout            = 500 * time.Millisecond
	defaultNearbyOverfetchFactor    = 3
	defaultSubscriberBuffer         = 64
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	groupCleanupInterval, err := osGetEnvDuration("BACKGROUND_GROUP_CLEANUP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	taskStatusChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_TASK_STATUS_CHANGED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	tokenTTL, err := osGetEnvDuration("AUTH_TOKEN_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if tokenTTL == time.Duration(0) {
		tokenTTL = 24 * time.Hour
	}

	tracking, err := loadTrackingFromEnv()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			GroupCleanupInterval: groupCleanupInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		TaskService: TaskService{
			BaseURL: os.Getenv("TASK_SERVICE_BASE_URL"),
		},
		Auth: Auth{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
			TokenTTL:  tokenTTL,
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			ProducerTopic:   os.Getenv("KAFKA_PRODUCER_TOPIC"),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				TaskStatusChanged: TaskStatusChanged{
					ProcessTimeout: taskStatusChangedTimeout,
				},
			},
		},
		Tracking: tracking,
	}, nil
}

func loadTrackingFromEnv() (Tracking, error) {
	locationTTL, err := osGetEnvDuration("TRACKING_LOCATION_TTL")
	if err != nil {
		return Tracking{}, err
	}
	if locationTTL == time.Duration(0) {
		locationTTL = defaultLocationTTL
	}

	thresholdMeters, err := osGetFloat("TRACKING_PROXIMITY_THRESHOLD_METERS")
	if err != nil {
		return Tracking{}, err
	}
	if thresholdMeters == 0 {
		thresholdMeters = defaultProximityThresholdMeters
	}

	markerTTL, err := osGetEnvDuration("TRACKING_MARKER_TTL")
	if err != nil {
		return Tracking{}, err
	}
	if markerTTL == time.Duration(0) {
		markerTTL = defaultMarkerTTL
	}

	historyLimit, err := osGetInt("TRACKING_HISTORY_DEFAULT_LIMIT")
	if err != nil {
		return Tracking{}, err
	}
	if historyLimit == 0 {
		historyLimit = defaultHistoryLimit
	}

	fallbackEnabled := true
	if val := os.Getenv("TRACKING_GEO_FALLBACK_ENABLED"); val != "" {
		fallbackEnabled, err = strconv.ParseBool(val)
		if err != nil {
			return Tracking{}, fmt.Errorf("invalid bool format for TRACKING_GEO_FALLBACK_ENABLED=%q: %w", val, err)
		}
	}

	effectTimeout, err := osGetEnvDuration("TRACKING_EFFECT_TIMEOUT")
	if err != nil {
		return Tracking{}, err
	}
	if effectTimeout == time.Duration(0) {
		effectTimeout = defaultEffectTimeout
	}

	overfetchFactor, err := osGetInt("TRACKING_NEARBY_OVERFETCH_FACTOR")
	if err != nil {
		return Tracking{}, err
	}
	if overfetchFactor == 0 {
		overfetchFactor = defaultNearbyOverfetchFactor
	}

	subscriberBuffer, err := osGetInt("TRACKING_SUBSCRIBER_BUFFER")
	if err != nil {
		return Tracking{}, err
	}
	if subscriberBuffer == 0 {
		subscriberBuffer = defaultSubscriberBuffer
	}

	return Tracking{
		LocationTTL:              locationTTL,
		ProximityThresholdMeters: thresholdMeters,
		MarkerTTL:                markerTTL,
		HistoryDefaultLimit:      historyLimit,
		GeoFallbackEnabled:       fallbackEnabled,
		EffectTimeout:            effectTimeout,
		NearbyOverfetchFactor:    overfetchFactor,
		SubscriberBuffer:         subscriberBuffer,
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required")
	}

	if cfg.TaskService.BaseURL == "" {
		return errors.New("TASK_SERVICE_BASE_URL is required")
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}

	if cfg.Tasks.GroupCleanupInterval == time.Duration(0) {
		return errors.New("BACKGROUND_GROUP_CLEANUP_INTERVAL is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.ProducerTopic == "" {
		return errors.New("KAFKA_PRODUCER_TOPIC is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.TaskStatusChanged.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_TASK_STATUS_CHANGED_PROCESS_TIMEOUT is required")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
