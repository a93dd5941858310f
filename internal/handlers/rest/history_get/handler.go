package history_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"tracking/internal/entities"
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

	query := r.URL.Query()
	dateBucket, err := time.Parse(dateLayout, query.Get("date"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	params, err := parseQueryParams(query.Get("from"), query.Get("to"), query.Get("limit"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	records, err := h.service.History(r.Context(), courierID, dateBucket, params)
	if err != nil {
		switch {
		case errors.Is(err, history.ErrInvalidCourierID),
			errors.Is(err, history.ErrInvalidDateBucket),
			errors.Is(err, history.ErrInvalidTimeRange),
			errors.Is(err, history.ErrInvalidLimit):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, repository.ErrStoreUnavailable):
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.HistoryResponse{
		Records: toRecordDTOs(records),
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

func parseQueryParams(fromStr, toStr, limitStr string) (entities.HistoryQuery, error) {
	var params entities.HistoryQuery

	if fromStr != "" {
		from, err := strconv.ParseInt(fromStr, 10, 64)
		if err != nil {
			return entities.HistoryQuery{}, err
		}
		params.FromMicros = &from
	}
	if toStr != "" {
		to, err := strconv.ParseInt(toStr, 10, 64)
		if err != nil {
			return entities.HistoryQuery{}, err
		}
		params.ToMicros = &to
	}
	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return entities.HistoryQuery{}, err
		}
		params.Limit = &limit
	}
	return params, nil
}

func toRecordDTOs(records []entities.HistoryRecord) []dto.HistoryRecord {
	recordDTOs := make([]dto.HistoryRecord, len(records))
	for i, record := range records {
		recordDTOs[i] = dto.HistoryRecord{
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
			recordDTOs[i].Metadata = &metadata
		}
	}
	return recordDTOs
}
