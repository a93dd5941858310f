package last_location_get

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

	dateBucket, err := time.Parse(dateLayout, r.URL.Query().Get("date"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	record, err := h.service.LastRecord(r.Context(), courierID, dateBucket)
	if err != nil {
		switch {
		case errors.Is(err, history.ErrRecordNotFound):
			w.WriteHeader(http.StatusNotFound)
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

	recordDTO := dto.HistoryRecord{
		ID:        record.ID,
		CourierID: record.CourierID,
		Date:      record.DateBucket.Format(dateLayout),
		TsMicros:  record.TimestampMicros,
		Lat:       record.Lat,
		Lng:       record.Lng,
		Accuracy:  record.Accuracy,
		Speed:     record.Speed,
		Heading:   record.Heading,
		TaskID:    record.TaskID,
		EventType: record.EventType.String(),
	}
	if len(record.Metadata) > 0 {
		metadata := record.Metadata
		recordDTO.Metadata = &metadata
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(recordDTO)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
