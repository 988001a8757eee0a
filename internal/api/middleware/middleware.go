// Package middleware holds the go-restful container filters and the shared
// error envelope for the HTTP API.
package middleware

import (
	"net/http"
	"time"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the JSON envelope for all non-2xx API responses.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	RequestID  string `json:"request_id,omitempty"`
}

const requestIDHeader = "X-Request-Id"

// Logger tags each request with an ID and logs method, path, status and
// duration.
func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	requestID := req.Request.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	resp.AddHeader(requestIDHeader, requestID)
	req.SetAttribute("request_id", requestID)

	start := time.Now()
	chain.ProcessFilter(req, resp)

	log.Info().
		Str("request_id", requestID).
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request handled")
}

// RecoverPanic converts handler panics into 500 responses instead of
// dropping the connection.
func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("path", req.Request.URL.Path).Msg("handler panicked")
			HandleError(resp, http.ErrAbortHandler, http.StatusInternalServerError)
		}
	}()
	chain.ProcessFilter(req, resp)
}

// HandleError writes the error envelope with the given status.
func HandleError(resp *restful.Response, err error, status int) {
	writeErr := resp.WriteHeaderAndEntity(status, ErrorResponse{
		Error:      err.Error(),
		StatusCode: status,
	})
	if writeErr != nil {
		log.Error().Err(writeErr).Msg("failed to write error response")
	}
}
