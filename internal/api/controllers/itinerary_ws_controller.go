package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"tabiplan/internal/models/request_models"
	"tabiplan/internal/models/response_models"
	"tabiplan/internal/services"
)

const wsWriteTimeout = 5 * time.Second

// ServeWebSocket godoc
// @Summary Generate a travel plan over WebSocket
// @Description The first client frame is the request JSON. The server pushes
// @Description {type, payload} frames with the same events as the SSE stream.
// @Tags Itinerary
// @Router /itineraries/ws [get]
func (i *ItineraryController) ServeWebSocket(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		i.logger.Error("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	var req request_models.ItineraryRequest
	if err := wsjson.Read(ctx, conn, &req); err != nil {
		i.logger.Debug("websocket request read failed", zap.Error(err))
		conn.Close(websocket.StatusUnsupportedData, "invalid request payload")
		return
	}

	var writeErr error
	obs := &eventObserver{}
	obs.emit = func(event string, payload interface{}) {
		if writeErr != nil {
			return
		}
		writeCtx, writeCancel := context.WithTimeout(ctx, wsWriteTimeout)
		writeErr = wsjson.Write(writeCtx, conn, response_models.StreamMessage{Type: event, Payload: payload})
		writeCancel()
		if writeErr != nil {
			cancel()
		}
	}

	// reading is required to notice client close frames while the plan runs
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				cancel()
				return
			}
		}
	}()

	res, err := i.itineraryService.Plan(ctx, req, obs)
	if err != nil {
		if writeErr != nil || errors.Is(err, context.Canceled) {
			i.logger.Debug("websocket plan aborted", zap.Error(err))
			return
		}
		if services.IsValidationError(err) {
			obs.fail(err.Error())
			conn.Close(websocket.StatusPolicyViolation, "invalid conditions")
			return
		}
		i.logger.Error("websocket plan failed", zap.Error(err))
		obs.fail("Internal server error")
		conn.Close(websocket.StatusInternalError, "plan failed")
		return
	}

	obs.complete(res)
	conn.Close(websocket.StatusNormalClosure, "")
}
