package track

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"tracking/internal/broadcast"
	"tracking/internal/entities"
	"tracking/pkg/logger"
)

const (
	actionPublish = "publish"
	actionLeave   = "leave"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type inboundFrame struct {
	Action    string   `json:"action"`
	Token     string   `json:"token,omitempty"`
	Lat       float64  `json:"lat,omitempty"`
	Lng       float64  `json:"lng,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Speed     *float64 `json:"speed,omitempty"`
	Heading   *float64 `json:"heading,omitempty"`
	Timestamp *int64   `json:"timestamp,omitempty"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Handler держит один WebSocket на группу задачи доставки: подключившийся
// наблюдатель получает кадры позиции и статуса, курьер тем же соединением
// может публиковать позицию (требуется токен в кадре).
type Handler struct {
	log      handlerLogger
	hub      Hub
	ingestor Ingestor
	verifier TokenVerifier
	buffer   int
}

func New(log handlerLogger, hub Hub, ingestor Ingestor, verifier TokenVerifier, subscriberBuffer int) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:      handlerLog,
		hub:      hub,
		ingestor: ingestor,
		verifier: verifier,
		buffer:   subscriberBuffer,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]
	if taskID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Warn("websocket upgrade")
		return
	}

	sub := broadcast.NewSubscriber(h.buffer)
	h.hub.Join(sub, taskID)

	connLog := h.log.With(
		logger.NewField("task_id", taskID),
		logger.NewField("subscriber", sub.ID.String()),
	)
	connLog.Info("track connection opened")

	go h.writePump(conn, sub, connLog)
	h.readPump(r.Context(), conn, sub, taskID, connLog)
}

// writePump единственный писатель соединения. Read-сторона отдает error-кадры
// через канал подписчика, чтобы не писать в conn из двух горутин.
func (h *Handler) writePump(conn *websocket.Conn, sub *broadcast.Subscriber, connLog logger.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload := <-sub.Messages():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				connLog.Warn("track frame write",
					logger.NewField("error", err),
				)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-sub.Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (h *Handler) readPump(ctx context.Context, conn *websocket.Conn, sub *broadcast.Subscriber, taskID string, connLog logger.Logger) {
	defer func() {
		h.hub.Disconnect(sub)
		conn.Close()
		connLog.Info("track connection closed")
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				connLog.Warn("track frame read",
					logger.NewField("error", err),
				)
			}
			return
		}

		switch frame.Action {
		case actionPublish:
			h.handlePublish(ctx, sub, frame, taskID, connLog)
		case actionLeave:
			return
		default:
			h.sendError(sub, "unknown action")
		}
	}
}

// handlePublish публикация позиции требует валидного токена курьера; отказ
// отвечает error-кадром, не разрывая соединение наблюдателя.
func (h *Handler) handlePublish(ctx context.Context, sub *broadcast.Subscriber, frame inboundFrame, taskID string, connLog logger.Logger) {
	claims, err := h.verifier.Verify(frame.Token)
	if err != nil {
		h.sendError(sub, "unauthorized")
		return
	}

	capturedAt := time.Now().UTC()
	if frame.Timestamp != nil {
		capturedAt = time.UnixMilli(*frame.Timestamp).UTC()
	}

	sample := entities.LocationSample{
		CourierID:  claims.CourierID,
		Lat:        frame.Lat,
		Lng:        frame.Lng,
		Accuracy:   frame.Accuracy,
		Speed:      frame.Speed,
		Heading:    frame.Heading,
		TaskID:     &taskID,
		CapturedAt: capturedAt,
	}

	if err := h.ingestor.Ingest(ctx, sample); err != nil {
		connLog.Warn("publish over websocket",
			logger.NewField("courier_id", claims.CourierID),
			logger.NewField("error", err),
		)
		h.sendError(sub, "publish failed")
	}
}

func (h *Handler) sendError(sub *broadcast.Subscriber, message string) {
	payload, err := json.Marshal(errorFrame{Type: "error", Message: message})
	if err != nil {
		return
	}
	sub.Push(payload)
}
