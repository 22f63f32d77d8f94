package category

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
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/pkg/auth"
)

type fakeRepo struct {
	categories map[primitive.ObjectID]Category
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{categories: make(map[primitive.ObjectID]Category)}
}

func (r *fakeRepo) add(c Category) primitive.ObjectID {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.categories[c.ID] = c
	return c.ID
}

func (r *fakeRepo) Create(_ context.Context, category *Category) error {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id primitive.ObjectID) (*Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	copied := c
	return &copied, nil
}

func (r *fakeRepo) FindBySlug(_ context.Context, slug string) (*Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindAll(_ context.Context) ([]Category, error) {
	var out []Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, category *Category) error {
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.categories, id)
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

func TestGetCategoryBySlug(t *testing.T) {
	repo := newFakeRepo()
	repo.add(Category{Name: "Ciment", Slug: "ciment", IsActive: true})
	router := newTestRouter(t, repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories/ciment", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool     `json:"success"`
		Data    Category `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Ciment", resp.Data.Name)
}

func TestGetCategoryBySlugNotFound(t *testing.T) {
	router := newTestRouter(t, newFakeRepo())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCategory(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(t, repo)

	body := `{"name":"Vopsele","slug":"vopsele","sort_order":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	stored, err := repo.FindBySlug(context.Background(), "vopsele")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.IsActive)
	assert.Equal(t, 3, stored.SortOrder)
}

func TestCreateCategorySlugConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.add(Category{Name: "Ciment", Slug: "ciment"})
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"Cimenturi","slug":"ciment"}`))
	req.Header.Set("Authorization", "Bearer "+adminToken(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, repo.categories, 1)
}

func TestCreateCategoryRequiresAdmin(t *testing.T) {
	router := newTestRouter(t, newFakeRepo())
	body := `{"name":"Vopsele","slug":"vopsele"}`

	// No token.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Customer token.
	token, err := auth.GenerateToken("user-1", "ana@example.com", "Ana", "customer")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateCategoryRejectsRevokedSession(t *testing.T) {
	denylist := auth.NewMemoryDenylist()
	router := mux.NewRouter()
	NewHandler(newFakeRepo(), denylist).RegisterRoutes(router)

	token := adminToken(t)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	require.NoError(t, denylist.Revoke(context.Background(), claims.ID, auth.TokenTTL))

	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"x","slug":"x"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateCategoryPartial(t *testing.T) {
	repo := newFakeRepo()
	id := repo.add(Category{Name: "Ciment", Slug: "ciment", IsActive: true, SortOrder: 1})
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodPut, "/api/categories/"+id.Hex(), strings.NewReader(`{"is_active":false}`))
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	stored, _ := repo.FindByID(context.Background(), id)
	assert.False(t, stored.IsActive)
	assert.Equal(t, "Ciment", stored.Name)
	assert.Equal(t, 1, stored.SortOrder)
}
