package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"shareit/shared/failure"
	"shareit/transport/http/response"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]int64{"id": 7})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":7}}`, rec.Body.String())
}

func TestWithJSONKeepsEmptySlices(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusOK, []string{})

	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{
			name: "failure keeps its message",
			err:  fmt.Errorf("failed to approve booking: %w", failure.BadRequestFromString("booking already processed")),
			code: http.StatusBadRequest,
			body: `{"error":"booking already processed"}`,
		},
		{
			name: "forbidden",
			err:  failure.Forbidden("only the booker can cancel a booking"),
			code: http.StatusForbidden,
			body: `{"error":"only the booker can cancel a booking"}`,
		},
		{
			name: "infrastructure error is hidden",
			err:  errors.New("pq: connection refused"),
			code: http.StatusInternalServerError,
			body: `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithRequestLimitExceeded(rec)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"message":"REQUEST LIMIT EXCEEDED"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	response.WithPreparingShutdown(rec)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	response.WithUnhealthy(rec)
	assert.JSONEq(t, `{"message":"SERVER UNHEALTHY"}`, rec.Body.String())
}
