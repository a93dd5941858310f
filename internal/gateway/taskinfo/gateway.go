package taskinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"tracking/internal/entities"
	retrierconfig "tracking/pkg/retrier"
	"tracking/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "task-service"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 1 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// httpStatusError несет код ответа через ретраер до метрик.
type httpStatusError struct {
	code int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("task service responded %d", e.code)
}

type Gateway struct {
	baseURL string
	client  httpDoer
	retrier retrier
}

func New(baseURL string, client httpDoer) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryableStatus,
	}

	return &Gateway{
		baseURL: baseURL,
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
	}
}

type taskDTO struct {
	ID      string       `json:"id"`
	Status  string       `json:"status"`
	Dropoff *geoPointDTO `json:"dropoff,omitempty"`
}

type geoPointDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (g *Gateway) GetTask(ctx context.Context, taskID string) (*entities.TaskInfo, error) {
	var dto taskDTO

	err := g.executeWithMetrics(ctx, "GetTask", func(ctx context.Context) error {
		return g.fetchTask(ctx, taskID, &dto)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway task, get task: %s: %w", taskID, err)
	}

	return toDomain(dto), nil
}

func (g *Gateway) fetchTask(ctx context.Context, taskID string, out *taskDTO) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/tasks/"+taskID, nil)
	if err != nil {
		return err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return ErrTaskNotFound
	default:
		return &httpStatusError{code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode task response: %w", err)
	}
	return nil
}

func toDomain(dto taskDTO) *entities.TaskInfo {
	task := &entities.TaskInfo{
		ID:     dto.ID,
		Status: entities.TaskStatusType(dto.Status),
	}
	if dto.Dropoff != nil {
		task.Dropoff = &entities.GeoPoint{
			Lat: dto.Dropoff.Lat,
			Lng: dto.Dropoff.Lng,
		}
	}
	return task
}

func isRetryableStatus(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) {
		return true
	}

	var statusErr *httpStatusError
	if !errors.As(err, &statusErr) {
		return false
	}

	switch {
	case statusErr.code == http.StatusTooManyRequests:
		return true
	case statusErr.code >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	statusCode := getStatusCode(err)
	// Метрики Prometheus
	GatewayRequestDuration.WithLabelValues(serviceName, method, statusCode).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		// Метрики Prometheus
		GatewayRetriesTotal.WithLabelValues(serviceName, method, statusCode).Inc()
	}

	return err
}

func getStatusCode(err error) string {
	if err == nil {
		return "200"
	}
	if errors.Is(err, ErrTaskNotFound) {
		return "404"
	}

	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return strconv.Itoa(statusErr.code)
	}
	return "unavailable"
}
