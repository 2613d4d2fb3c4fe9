package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
	unmatchedRoute  = "unmatched"
)

// requestIDMiddleware keeps a caller-supplied request id or assigns a new one.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

// accessLogMiddleware records one log line and one metric sample per request.
func (h *Handler) accessLogMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = unmatchedRoute
	}
	status := c.Writer.Status()
	h.metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(status))
	if h.log != nil {
		h.log.Debugw("http_request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"took", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		)
	}
}
