package distance_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"tracking/internal/generated/dto"
	"tracking/internal/repository"
	"tracking/internal/service/history"
	"tracking/pkg/logger"
)

const dateLayout = "2006-01-02"

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
	idStr := mux.Vars(r)["id"]
	courierID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	dateStr := r.URL.Query().Get("date")
	dateBucket, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	distanceKm, err := h.service.TotalDistance(r.Context(), courierID, dateBucket)
	if err != nil {
		switch {
		case errors.Is(err, history.ErrInvalidCourierID),
			errors.Is(err, history.ErrInvalidDateBucket):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, repository.ErrStoreUnavailable):
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.DistanceResponse{
		CourierID:  courierID,
		Date:       dateStr,
		DistanceKm: distanceKm,
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
