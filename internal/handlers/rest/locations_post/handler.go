package locations_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tracking/internal/entities"
	"tracking/internal/generated/dto"
	"tracking/internal/repository"
	"tracking/internal/service/location"
	"tracking/pkg/logger"
)

// Handler батчевая догрузка семплов после потери связи. Итог per-record:
// частичный успех отдается как 200 со списком не легших записей.
type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var batchDTO dto.LocationBatch
	err := json.NewDecoder(r.Body).Decode(&batchDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	samples := make([]entities.LocationSample, 0, len(batchDTO.Locations))
	for _, locationDTO := range batchDTO.Locations {
		samples = append(samples, toSample(locationDTO))
	}

	result, err := h.service.IngestBatch(r.Context(), samples)
	if err != nil {
		switch {
		case errors.Is(err, location.ErrEmptyBatch),
			errors.Is(err, location.ErrInvalidCourierID),
			errors.Is(err, location.ErrInvalidCoordinates):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, repository.ErrStoreUnavailable):
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.BatchResult{
		Appended: result.Appended,
	}
	if len(result.Failed) > 0 {
		failed := make([]dto.BatchFailure, 0, len(result.Failed))
		for _, failure := range result.Failed {
			failed = append(failed, dto.BatchFailure{
				Index: failure.Index,
				Error: failure.Err.Error(),
			})
		}
		response.Failed = &failed
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func toSample(locationDTO dto.LocationUpdate) entities.LocationSample {
	capturedAt := time.Now().UTC()
	if locationDTO.Timestamp != nil {
		capturedAt = time.UnixMilli(*locationDTO.Timestamp).UTC()
	}

	return entities.LocationSample{
		CourierID:  locationDTO.CourierID,
		Lat:        locationDTO.Lat,
		Lng:        locationDTO.Lng,
		Accuracy:   locationDTO.Accuracy,
		Speed:      locationDTO.Speed,
		Heading:    locationDTO.Heading,
		TaskID:     locationDTO.TaskID,
		CapturedAt: capturedAt,
	}
}
