package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"returnit_backend/internal/services"
	"returnit_backend/internal/validator"
)

type stubNearbyService struct {
	items      []services.NearbyItem
	gotLat     float64
	gotLng     float64
	gotRadius  float64
	callsCount int
}

func (s *stubNearbyService) ItemsWithin(ctx context.Context, lat, lng, radiusKm float64) ([]services.NearbyItem, error) {
	s.callsCount++
	s.gotLat, s.gotLng, s.gotRadius = lat, lng, radiusKm
	return s.items, nil
}

func nearbyRouter(svc services.NearbyService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewNearbyHandler(NewBaseHandler(validator.New()), svc)
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestNearbyItems_DefaultRadius(t *testing.T) {
	svc := &stubNearbyService{items: []services.NearbyItem{}}
	router := nearbyRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/nearby/items?latitude=10.5&longitude=76.2", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.callsCount)
	assert.Equal(t, 10.5, svc.gotLat)
	assert.Equal(t, 76.2, svc.gotLng)
	assert.Equal(t, services.DefaultNearbyRadiusKm, svc.gotRadius)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.JSONEq(t, "[]", string(body["items"]))
}

func TestNearbyItems_CustomRadius(t *testing.T) {
	svc := &stubNearbyService{items: []services.NearbyItem{}}
	router := nearbyRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/nearby/items?latitude=10.5&longitude=76.2&radius=3", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3.0, svc.gotRadius)
}

func TestNearbyItems_MissingCoordinates(t *testing.T) {
	svc := &stubNearbyService{}
	router := nearbyRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/nearby/items?latitude=10.5", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, svc.callsCount)
}

func TestNearbyItems_OutOfRangeCoordinates(t *testing.T) {
	svc := &stubNearbyService{}
	router := nearbyRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/nearby/items?latitude=95.0&longitude=76.2", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, svc.callsCount)
}
