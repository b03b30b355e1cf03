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
	"go.mongodb.org/mongo-driver/bson/primitive"

	"returnit_backend/internal/auth"
	"returnit_backend/internal/models"
	"returnit_backend/internal/validator"
)

type stubMatchingService struct {
	groups []models.MatchGroup
}

func (s *stubMatchingService) MatchUserItems(ctx context.Context, userID string) ([]models.MatchGroup, error) {
	return s.groups, nil
}

func (s *stubMatchingService) RankMatches(ctx context.Context, lostItems, foundItems []models.Item) []models.MatchGroup {
	return s.groups
}

func matchRouter(svc *stubMatchingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMatchHandler(NewBaseHandler(validator.New()), svc)
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()
	auth.Init("test-secret", 1)
	token, err := auth.GenerateToken(&models.User{
		BaseModel: models.BaseModel{ID: userID},
		Email:     "user@example.com",
		Role:      models.UserRoleUser,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestMatchesForUser_ReturnsBareGroupArray(t *testing.T) {
	lost := models.Item{ID: primitive.NewObjectID(), UserID: "user-1", Description: "black wallet"}
	found := models.Item{ID: primitive.NewObjectID(), UserID: "user-2", Description: "wallet near the gym"}
	svc := &stubMatchingService{groups: []models.MatchGroup{
		{
			LostItem:   lost,
			TopMatches: []models.MatchResult{{FoundItem: found, Similarity: 0.87}},
		},
	}}
	router := matchRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/matches/user-1", nil)
	req.Header.Set("Authorization", bearerToken(t, "user-1"))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// The body is a plain array of groups, not an object wrapping one.
	var groups []models.MatchGroup
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, lost.ID, groups[0].LostItem.ID)
	require.Len(t, groups[0].TopMatches, 1)
	assert.Equal(t, found.ID, groups[0].TopMatches[0].FoundItem.ID)
	assert.InDelta(t, 0.87, groups[0].TopMatches[0].Similarity, 1e-9)
}

func TestMatchesForUser_EmptyResultIsEmptyArray(t *testing.T) {
	router := matchRouter(&stubMatchingService{groups: []models.MatchGroup{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/matches/user-1", nil)
	req.Header.Set("Authorization", bearerToken(t, "user-1"))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestMatchesForUser_RejectsOtherUsers(t *testing.T) {
	router := matchRouter(&stubMatchingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/matches/user-2", nil)
	req.Header.Set("Authorization", bearerToken(t, "user-1"))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}
