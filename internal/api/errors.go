package api

import (
	"net/http"

	"github.com/ZeroSibe/nc-news/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Stable response messages, one per error kind
const (
	MsgBadRequest    = "Bad Request"
	MsgInvalidQuery  = "Invalid Query"
	MsgNotFound      = "Not Found"
	MsgInternalError = "Internal Server Error"
	MsgPathNotFound  = "Path Not Found"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Msg    string `json:"msg"`
	Detail string `json:"detail,omitempty"`
}

// StatusFor maps an error kind to its HTTP status and stable message
func StatusFor(kind apperr.Kind) (int, string) {
	switch kind {
	case apperr.KindInvalidIdentifier, apperr.KindInvalidPayload:
		return http.StatusBadRequest, MsgBadRequest
	case apperr.KindInvalidQuery:
		return http.StatusBadRequest, MsgInvalidQuery
	case apperr.KindNotFound:
		return http.StatusNotFound, MsgNotFound
	default:
		return http.StatusInternalServerError, MsgInternalError
	}
}

// respondError writes err using the kind mapping. Storage failures are logged and their detail withheld.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	kind := apperr.KindOf(err)
	status, msg := StatusFor(kind)

	resp := ErrorResponse{Msg: msg}
	if kind == apperr.KindStorageFailure {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("path", c.Request.URL.Path).
			Msg("Storage failure")
	} else {
		resp.Detail = apperr.MessageOf(err)
	}

	c.AbortWithStatusJSON(status, resp)
}
