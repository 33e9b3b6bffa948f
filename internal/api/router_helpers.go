package api

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/middleware"
	"github.com/kinshiphq/kinship/internal/ws"
)

// maxPathIDLen caps path parameter ids.
const maxPathIDLen = 64

// pathID reads and checks a path parameter id. It writes a 400 and returns
// false when the id is empty or too long.
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if id == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, name+" must not be empty")

		return "", false
	}

	if len(id) > maxPathIDLen {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, name+" exceeds maximum length")

		return "", false
	}

	return id, true
}

// wsHandler upgrades to a WebSocket and attaches the connection to the hub
// until the client leaves or the server shuts down.
func wsHandler(appCtx context.Context, log *logrus.Logger, hub *ws.Hub, corsOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// CORS origins double as WebSocket origin patterns; config rejects wildcards.
		conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			OriginPatterns:       corsOrigins,
			CompressionMode:      websocket.CompressionContextTakeover,
			CompressionThreshold: 128,
		})
		if err != nil {
			log.WithError(err).Warn("websocket accept failed")

			return
		}

		// Cancel when either the server shuts down or the request ends.
		wsCtx, cancel := context.WithCancel(appCtx)
		defer cancel()

		stop := context.AfterFunc(c.Request.Context(), cancel)
		defer stop()

		hub.Serve(wsCtx, conn)
	}
}

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(middleware.RequestIDKey); exists {
			fields["request_id"] = rid
		}

		entry := log.WithFields(fields)
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("request")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
