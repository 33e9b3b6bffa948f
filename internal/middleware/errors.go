package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kinshiphq/kinship/internal/httputil"
	"github.com/kinshiphq/kinship/internal/metrics"
)

// respondError counts the error and writes the shared JSON error body.
func respondError(c *gin.Context, code int, errCode, message string) {
	metrics.ErrorsTotal.WithLabelValues(errCode).Inc()
	httputil.RespondError(c, code, errCode, message)
}
