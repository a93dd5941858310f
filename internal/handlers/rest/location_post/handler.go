package location_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tracking/internal/entities"
	"tracking/internal/generated/dto"
	"tracking/internal/repository"
	"tracking/internal/service/location"
)

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
	var locationDTO dto.LocationUpdate
	err := json.NewDecoder(r.Body).Decode(&locationDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err = h.service.Ingest(r.Context(), toSample(locationDTO))
	if err != nil {
		switch {
		case errors.Is(err, location.ErrInvalidCourierID),
			errors.Is(err, location.ErrInvalidCoordinates):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, repository.ErrStoreUnavailable):
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
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
