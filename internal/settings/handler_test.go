package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/construmat/backend/pkg/auth"
)

type fakeRepo struct {
	saved *Settings
}

func (r *fakeRepo) Get(_ context.Context) (*Settings, error) {
	if r.saved == nil {
		return Defaults(), nil
	}
	copied := *r.saved
	return &copied, nil
}

func (r *fakeRepo) Save(_ context.Context, s *Settings) error {
	copied := *s
	r.saved = &copied
	return nil
}

func newTestRouter(t *testing.T, repo Repository) *mux.Router {
	t.Helper()
	router := mux.NewRouter()
	NewHandler(repo, auth.NewMemoryDenylist()).RegisterRoutes(router)
	return router
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken("admin-1", "admin@example.com", "Admin", "admin")
	require.NoError(t, err)
	return token
}

func TestGetSettingsReturnsDefaultsWhenUnsaved(t *testing.T) {
	router := newTestRouter(t, &fakeRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool     `json:"success"`
		Data    Settings `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ConstruMat", resp.Data.StoreName)
	assert.Equal(t, "RON", resp.Data.Currency)
	assert.Equal(t, 0.19, resp.Data.TaxRate)
	assert.Equal(t, 200.0, resp.Data.FreeShippingThreshold)
	assert.Equal(t, 20.0, resp.Data.FlatShippingFee)
}

func TestUpdateSettingsPartial(t *testing.T) {
	repo := &fakeRepo{}
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"store_name":"ConstruMat Cluj","maintenance_mode":true}`))
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, repo.saved)
	assert.Equal(t, "ConstruMat Cluj", repo.saved.StoreName)
	assert.True(t, repo.saved.MaintenanceMode)
	// Untouched fields keep their defaults.
	assert.Equal(t, 0.19, repo.saved.TaxRate)
}

func TestUpdateSettingsRejectsBadTaxRate(t *testing.T) {
	repo := &fakeRepo{}
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"tax_rate":1.5}`))
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, repo.saved)
}

func TestUpdateSettingsRequiresAdmin(t *testing.T) {
	router := newTestRouter(t, &fakeRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := auth.GenerateToken("user-1", "ana@example.com", "Ana", "customer")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
