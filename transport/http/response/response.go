package response

import (
	"encoding/json"
	"net/http"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/shared/logger"
)

const msgInternalError = "internal server error"

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON wraps payload in the data envelope
func WithJSON[T any](writer http.ResponseWriter, code int, payload T) {
	response(writer, code, Data[T]{Data: &payload})
}

// WithError maps err to its failure code. Errors without one are logged and reported as a bare 500.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	errMsg := failure.GetMessage(err)
	if code == http.StatusInternalServerError {
		logger.ErrorWithStack(err)

		errMsg = msgInternalError
	}

	response(writer, code, Error{Error: &errMsg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
