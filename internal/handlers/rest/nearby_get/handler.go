package nearby_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tracking/internal/entities"
	"tracking/internal/generated/dto"
	"tracking/internal/repository"
	"tracking/internal/service/nearby"
	"tracking/pkg/logger"
)

const defaultLimit = 20

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
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	lng, err := strconv.ParseFloat(query.Get("lng"), 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	radiusKm, err := strconv.ParseFloat(query.Get("radius_km"), 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	limit := defaultLimit
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	center := entities.GeoPoint{Lat: lat, Lng: lng}
	couriers, searchPath, err := h.service.FindAvailable(r.Context(), center, radiusKm, limit)
	if err != nil {
		switch {
		case errors.Is(err, nearby.ErrInvalidCoordinates),
			errors.Is(err, nearby.ErrInvalidRadius),
			errors.Is(err, nearby.ErrInvalidLimit):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, repository.ErrStoreUnavailable):
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	courierDTOs := make([]dto.NearbyCourier, len(couriers))
	for i, courier := range couriers {
		courierDTOs[i].CourierID = courier.CourierID
		courierDTOs[i].DistanceKm = courier.DistanceKm
		courierDTOs[i].Lat = courier.Lat
		courierDTOs[i].Lng = courier.Lng
	}

	response := dto.NearbyResponse{
		Couriers:   courierDTOs,
		SearchPath: searchPath.String(),
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
