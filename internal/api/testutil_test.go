package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/router"
	"github.com/plateful/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	engine *gin.Engine
	db     *gorm.DB
}

// newTestApp wires the full router over an in-memory database and a fake
// model provider.
func newTestApp(t *testing.T, provider http.HandlerFunc) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, ""))

	providerServer := httptest.NewServer(provider)
	t.Cleanup(providerServer.Close)

	gateway, err := service.NewOpenRouterService(config.OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: providerServer.URL,
		Model:   "openai/gpt-4o-mini",
	})
	require.NoError(t, err)

	authService := service.NewAuthService(db, "test-secret")
	profileService := service.NewProfileService(db)
	recipeService := service.NewRecipeService(db, gateway, profileService, 3, false)
	catalogService := service.NewCatalogService(db, nil)

	engine := router.SetupRouter(router.Handlers{
		Auth:    api.NewAuthHandler(authService),
		Profile: api.NewProfileHandler(profileService),
		Recipe:  api.NewRecipeHandler(recipeService),
		Catalog: api.NewCatalogHandler(catalogService),
	}, authService, nil)

	return &testApp{engine: engine, db: db}
}

// recipeProvider responds like the upstream model API with a fixed recipe.
func recipeProvider(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipe := map[string]interface{}{
			"title": "Tomato Soup",
			"ingredients": []map[string]interface{}{
				{"item": "tomato", "amount": 4, "unit": "pcs"},
			},
			"instructions": []map[string]interface{}{
				{"step": 1, "text": "Chop and simmer."},
			},
			"prep_time_minutes": 20,
			"calories":          180,
			"diet_label":        "Vegan",
		}
		content, err := json.Marshal(recipe)
		require.NoError(t, err)

		body, err := json.Marshal(map[string]interface{}{
			"id": "gen-1",
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": string(content)}},
			},
		})
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}
}

func failingProvider(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(`{"error": "provider unavailable"}`))
	}
}

func (a *testApp) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) registerUser(t *testing.T, email string) string {
	t.Helper()

	w := a.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":        email,
		"password":     "password123",
		"display_name": "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
