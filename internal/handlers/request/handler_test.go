package request_test

import (
	"net/http"
	"net/http/httptest"
	"shareit/config"
	otelMocks "shareit/infras/otel/mocks"
	"shareit/internal/domains/request/model/dto"
	"shareit/internal/domains/request/service/mocks"
	"shareit/internal/handlers/request"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/transport/http/middleware"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (http.Handler, *mocks.MockRequest) {
	t.Helper()

	svc := mocks.NewMockRequest(gomock.NewController(t))
	handler := request.New(svc, otelMocks.NewOtel())
	appMiddleware := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, nil, nil)

	router := chi.NewRouter()
	router.Use(appMiddleware.Identity)
	handler.Router(router)

	return router, svc
}

func serve(router http.Handler, method, target, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if userID != "" {
		req.Header.Set(constant.RequestHeaderSharerUserID, userID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

var tent = dto.RequestResponse{
	ID:          1,
	Description: "Tent",
	RequestorID: 1,
	Created:     "2026-10-01T09:00:00",
	Items:       []dto.Answer{{ID: 7, Name: "Two person tent", OwnerID: 2}},
}

func TestCreateRequest(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Create(gomock.Any(), dto.CreateRequest{Description: "Tent"}, int64(1)).
		Return(dto.RequestResponse{ID: 1, Description: "Tent", RequestorID: 1, Created: "2026-10-01T09:00:00", Items: []dto.Answer{}}, nil)

	rec := serve(router, http.MethodPost, "/requests", "1", `{"description":"Tent"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":1,"description":"Tent","requestor_id":1,"created":"2026-10-01T09:00:00","items":[]}}`, rec.Body.String())
}

func TestCreateRequestRejectsBadInput(t *testing.T) {
	router, _ := newRouter(t)

	tests := []struct {
		name   string
		userID string
		body   string
	}{
		{name: "missing caller", body: `{"description":"Tent"}`},
		{name: "blank description", userID: "1", body: `{"description":"   "}`},
		{name: "missing description", userID: "1", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, http.MethodPost, "/requests", tt.userID, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetOwnRequests(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().ListOwn(gomock.Any(), int64(1)).Return([]dto.RequestResponse{tent}, nil)

	rec := serve(router, http.MethodGet, "/requests", "1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"id":1,"description":"Tent","requestor_id":1,"created":"2026-10-01T09:00:00",
		"items":[{"id":7,"name":"Two person tent","owner_id":2}]}]}`, rec.Body.String())
}

func TestGetOtherRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
		from   int
		size   int
	}{
		{name: "defaults", target: "/requests/all", from: 0, size: 10},
		{name: "explicit window", target: "/requests/all?from=20&size=5", from: 20, size: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)

			svc.EXPECT().ListOthers(gomock.Any(), int64(2), tt.from, tt.size).Return([]dto.RequestResponse{}, nil)

			rec := serve(router, http.MethodGet, tt.target, "2", "")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
		})
	}
}

func TestGetOtherRequestsRejectsBadWindow(t *testing.T) {
	router, svc := newRouter(t)

	rec := serve(router, http.MethodGet, "/requests/all?from=abc", "2", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"from must be a number"}`, rec.Body.String())

	rec = serve(router, http.MethodGet, "/requests/all?size=ten", "2", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"size must be a number"}`, rec.Body.String())

	svc.EXPECT().ListOthers(gomock.Any(), int64(2), -1, 10).Return(nil, failure.BadRequestFromString("from must not be negative"))

	rec = serve(router, http.MethodGet, "/requests/all?from=-1", "2", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"from must not be negative"}`, rec.Body.String())
}

func TestGetRequestByID(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), int64(1), int64(2)).Return(tent, nil)
	svc.EXPECT().Get(gomock.Any(), int64(9), int64(2)).Return(dto.RequestResponse{}, failure.NotFound("request not found"))

	rec := serve(router, http.MethodGet, "/requests/1", "2", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodGet, "/requests/9", "2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"request not found"}`, rec.Body.String())

	rec = serve(router, http.MethodGet, "/requests/zero", "2", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
