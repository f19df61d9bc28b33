package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hsinyu/travelplan/internal/auth"
	"github.com/hsinyu/travelplan/internal/repository"
	"github.com/hsinyu/travelplan/internal/service"
	"github.com/hsinyu/travelplan/pkg/database"
)

type apiTestEnv struct {
	router *gin.Engine
	users  *service.UserService
}

func newAPITestEnv(t *testing.T) *apiTestEnv {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.New(database.Config{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator := database.NewMigrator(db, logger)
	require.NoError(t, migrator.RunMigrations("../../../migrations"))

	planRepo := repository.NewPlanRepository(db.DB, logger)
	itemRepo := repository.NewBudgetItemRepository(db.DB, logger)
	summaryRepo := repository.NewBudgetSummaryRepository(db.DB, logger)
	accRepo := repository.NewAccommodationRepository(db.DB, logger)
	tripRepo := repository.NewTripItemRepository(db.DB, logger)
	infoRepo := repository.NewTravelInfoRepository(db.DB, logger)
	userRepo := repository.NewUserRepository(db.DB, logger)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	users := service.NewUserService(userRepo, 4, logger)

	services := Services{
		Auth:           service.NewAuthService(userRepo, tokens, logger),
		Plans:          service.NewPlanService(planRepo, logger),
		Budgets:        service.NewBudgetService(db, planRepo, itemRepo, summaryRepo, logger),
		Accommodations: service.NewAccommodationService(db, planRepo, accRepo, logger),
		TripItems:      service.NewTripItemService(db, planRepo, tripRepo, logger),
		TravelInfo:     service.NewTravelInfoService(planRepo, infoRepo, logger),
		Users:          users,
	}

	server := NewServer(ServerConfig{Host: "127.0.0.1", Port: 0}, services, tokens, logger)
	return &apiTestEnv{router: server.Router(), users: users}
}

func (env *apiTestEnv) seedUser(t *testing.T, username, password, role string) {
	t.Helper()
	_, err := env.users.Create(context.Background(), service.UserInput{
		Username: username,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
}

func (env *apiTestEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func (env *apiTestEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/users/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func TestLoginFlow(t *testing.T) {
	env := newAPITestEnv(t)
	env.seedUser(t, "alice", "s3cret", "user")

	token := env.login(t, "alice", "s3cret")
	assert.NotEmpty(t, token)

	// Unknown username and wrong password get the same 401 body.
	badUser := env.do(t, http.MethodPost, "/api/users/login", "", gin.H{"username": "nobody", "password": "x"})
	badPass := env.do(t, http.MethodPost, "/api/users/login", "", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, badUser.Code)
	assert.Equal(t, http.StatusUnauthorized, badPass.Code)
	assert.JSONEq(t, badUser.Body.String(), badPass.Body.String())
}

func TestAuthRequired(t *testing.T) {
	env := newAPITestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/plans", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/plans", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserRoutesRequireAdmin(t *testing.T) {
	env := newAPITestEnv(t)
	env.seedUser(t, "alice", "s3cret", "user")
	env.seedUser(t, "root", "adminpw", "admin")

	userToken := env.login(t, "alice", "s3cret")
	adminToken := env.login(t, "root", "adminpw")

	rec := env.do(t, http.MethodGet, "/api/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBudgetBatchFlow(t *testing.T) {
	env := newAPITestEnv(t)
	env.seedUser(t, "alice", "s3cret", "user")
	token := env.login(t, "alice", "s3cret")

	rec := env.do(t, http.MethodPost, "/api/plans", token, gin.H{
		"title":     "Bangkok trip",
		"startDate": "2025-11-01",
		"endDate":   "2025-11-07",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var plan struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))

	rec = env.do(t, http.MethodPost, "/api/budgets/batch", token, gin.H{
		"activityId": plan.ID,
		"items": []gin.H{
			{"type": "fixed", "item": "Flight", "amount": "12000", "currency": "TWD", "status": "paid"},
			{"type": "sightseeing", "item": "Grand Palace", "amount": "500", "currency": "THB", "status": "pending"},
		},
		"summary": gin.H{
			"twdTotal":     "12000",
			"thbTotal":     "500",
			"exchangeRate": "1.1",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/budgets/activity/"+plan.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Items []struct {
			ID     string `json:"id"`
			Item   string `json:"item"`
			Status string `json:"status"`
		} `json:"items"`
		Summary struct {
			FinalTotal string `json:"finalTotal"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Items, 2)
	assert.Equal(t, "Flight", view.Items[0].Item)
	assert.Equal(t, "約 12,550 TWD", view.Summary.FinalTotal)

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/api/budgets/%s/status", view.Items[1].ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/budgets/activity/"+plan.ID, token, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "paid", view.Items[1].Status)
}

func TestBudgetBatchRejectsInvalidRows(t *testing.T) {
	env := newAPITestEnv(t)
	env.seedUser(t, "alice", "s3cret", "user")
	token := env.login(t, "alice", "s3cret")

	rec := env.do(t, http.MethodPost, "/api/plans", token, gin.H{"title": "Trip"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var plan struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))

	rec = env.do(t, http.MethodPost, "/api/budgets/batch", token, gin.H{
		"activityId": plan.ID,
		"items": []gin.H{
			{"type": "fixed", "item": "", "amount": "100", "status": "paid"},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Message string `json:"message"`
		Details []struct {
			Row int `json:"row"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, 0, body.Details[0].Row)
}
