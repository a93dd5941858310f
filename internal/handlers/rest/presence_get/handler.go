package presence_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"tracking/internal/generated/dto"
	"tracking/internal/repository"
	"tracking/internal/service/presence"
	"tracking/pkg/logger"
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
	courierIDs, err := parseIDs(r.URL.Query().Get("ids"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	statuses, err := h.service.BulkStatus(r.Context(), courierIDs)
	if err != nil {
		switch {
		case errors.Is(err, presence.ErrInvalidCourierID):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, repository.ErrStoreUnavailable):
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.PresenceMapResponse{
		Statuses: make(map[string]dto.PresenceState, len(statuses)),
	}
	for id, state := range statuses {
		response.Statuses[strconv.FormatInt(id, 10)] = dto.PresenceState{
			Online:    state.Online,
			Available: state.Available,
		}
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

func parseIDs(idsStr string) ([]int64, error) {
	if strings.TrimSpace(idsStr) == "" {
		return nil, errors.New("empty ids")
	}

	parts := strings.Split(idsStr, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
