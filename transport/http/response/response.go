package response

import (
	"encoding/json"
	"net/http"

	"lagoon/shared/constant"
	"lagoon/shared/failure"
	"lagoon/shared/logger"
)

// env controls whether 500 detail is surfaced to callers. Set once at server
// startup; outside development the underlying message is replaced with a
// generic one.
var env = constant.ServerEnvDevelopment

func SetEnv(serverEnv string) {
	if serverEnv != constant.Empty {
		env = serverEnv
	}
}

const genericServerError = "internal server error"

type Data[T any] struct {
	Success bool `json:"success"`
	Data    *T   `json:"data,omitempty"`
}

type Error struct {
	Success bool    `json:"success"`
	Error   *string `json:"error,omitempty"`
}

type Message struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Success: code < http.StatusBadRequest, Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Success: true, Data: &jsonPayload})
}

// WithError sends a response with an error message
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	if code == http.StatusInternalServerError && env != constant.ServerEnvDevelopment {
		errMsg = genericServerError
	}

	response(writer, code, Error{Success: false, Error: &errMsg})
}

// WithFile streams raw bytes with the given content type and disposition,
// used by image serving and export downloads.
func WithFile(writer http.ResponseWriter, contentType, disposition string, data []byte) {
	writer.Header().Set(constant.RequestHeaderContentType, contentType)

	if disposition != constant.Empty {
		writer.Header().Set(constant.RequestHeaderContentDisposition, disposition)
	}

	writer.WriteHeader(http.StatusOK)

	if _, err := writer.Write(data); err != nil {
		logger.ErrorWithStack(err)
	}
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

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
