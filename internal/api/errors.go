package api

import (
	"errors"
	"net/http"

	"github.com/emlips/nc-news/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// Postgres error codes caused by client input
var clientErrorCodes = map[pq.ErrorCode]bool{
	"22003": true, // numeric_value_out_of_range
	"22P02": true, // invalid_text_representation
	"23502": true, // not_null_violation
	"23503": true, // foreign_key_violation
}

// errorMiddleware turns the last error a handler attached with c.Error into
// the {msg} response body.
func errorMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, msg := classifyError(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("Unhandled error")
		}

		c.JSON(status, gin.H{"msg": msg})
	}
}

func classifyError(err error) (int, string) {
	if appErr, ok := apperr.As(err); ok {
		return appErr.Status, appErr.Msg
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && clientErrorCodes[pqErr.Code] {
		return http.StatusBadRequest, "bad request"
	}

	return http.StatusInternalServerError, "internal server error"
}
