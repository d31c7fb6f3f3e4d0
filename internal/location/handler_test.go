package location

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req CreateLocationRequest) (*Location, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Location), args.Error(1)
}

func (m *MockService) GetByID(ctx context.Context, id int) (*Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Location), args.Error(1)
}

func (m *MockService) ListActive(ctx context.Context) ([]Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Location), args.Error(1)
}

func (m *MockService) Deactivate(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	router := gin.New()
	router.GET("/locations", h.List)
	router.GET("/locations/:locationID", h.Get)
	router.POST("/admin/locations", h.Create)
	router.DELETE("/admin/locations/:locationID", h.Deactivate)
	return router
}

func TestHandler_Create(t *testing.T) {
	svc := new(MockService)
	svc.On("Create", mock.Anything, CreateLocationRequest{Name: "Downtown", Address: "12 Main St", City: "Lisbon"}).
		Return(&Location{ID: 1, Name: "Downtown", Address: "12 Main St", City: "Lisbon", Active: true}, nil)

	router := setupRouter(svc)

	body, _ := json.Marshal(CreateLocationRequest{Name: "Downtown", Address: "12 Main St", City: "Lisbon"})
	req := httptest.NewRequest("POST", "/admin/locations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var loc Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loc))
	assert.Equal(t, 1, loc.ID)
	svc.AssertExpectations(t)
}

func TestHandler_Create_InvalidJSON(t *testing.T) {
	router := setupRouter(new(MockService))

	req := httptest.NewRequest("POST", "/admin/locations", bytes.NewBufferString(`{"name": "broken`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetByID", mock.Anything, 3).Return(&Location{ID: 3, Name: "Riverside"}, nil)

		router := setupRouter(svc)

		req := httptest.NewRequest("GET", "/locations/3", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		router := setupRouter(new(MockService))

		req := httptest.NewRequest("GET", "/locations/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Deactivate_NotFound(t *testing.T) {
	svc := new(MockService)
	svc.On("Deactivate", mock.Anything, 99).Return(ErrLocationNotFound)

	router := setupRouter(svc)

	req := httptest.NewRequest("DELETE", "/admin/locations/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
