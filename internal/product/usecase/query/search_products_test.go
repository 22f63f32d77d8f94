package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construmat/backend/internal/product/domain"
)

type fakeProductRepo struct {
	products []domain.Product
	listPage *domain.Page
	lastSize int
}

func (r *fakeProductRepo) Create(_ context.Context, _ *domain.Product) error { return nil }

func (r *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			copied := r.products[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(_ context.Context, _ domain.Filter, pageSize int, _ string) (*domain.Page, error) {
	r.lastSize = pageSize
	if r.listPage != nil {
		return r.listPage, nil
	}
	return &domain.Page{Products: r.products}, nil
}

func (r *fakeProductRepo) FindByTag(_ context.Context, tag string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindByCategory(_ context.Context, category string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, _ *domain.Product) error           { return nil }
func (r *fakeProductRepo) Delete(_ context.Context, _ primitive.ObjectID) error        { return nil }
func (r *fakeProductRepo) AdjustStock(_ context.Context, _ primitive.ObjectID, _ int) error { return nil }
func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func TestSearchMatchesTagsOnly(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{
		{Name: "Ciment Portland", Tags: []string{"ciment", "portland"}},
		{Name: "Adeziv ciment rapid", Tags: []string{"adeziv"}},
	}}
	handler := NewSearchProductsHandler(repo)

	// "ciment" appears in both names but only the first carries the tag.
	products, err := handler.Handle(context.Background(), SearchProductsQuery{Term: "ciment"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Ciment Portland", products[0].Name)
}

func TestSearchNormalizesTerm(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{
		{Name: "Gresie", Tags: []string{"gresie"}},
	}}
	handler := NewSearchProductsHandler(repo)

	products, err := handler.Handle(context.Background(), SearchProductsQuery{Term: "  GRESIE "})
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestSearchEmptyTermReturnsNothing(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{
		{Name: "Gresie", Tags: []string{"gresie"}},
	}}
	handler := NewSearchProductsHandler(repo)

	products, err := handler.Handle(context.Background(), SearchProductsQuery{Term: "   "})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestListProductsDefaultPageSize(t *testing.T) {
	repo := &fakeProductRepo{listPage: &domain.Page{NextCursor: "abc"}}
	handler := NewListProductsHandler(repo)

	page, err := handler.Handle(context.Background(), ListProductsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastSize)
	assert.Equal(t, "abc", page.NextCursor)
}

func TestProductsByCategoryRequiresCategory(t *testing.T) {
	handler := NewProductsByCategoryHandler(&fakeProductRepo{})

	_, err := handler.Handle(context.Background(), ProductsByCategoryQuery{})
	assert.EqualError(t, err, "category is required")
}

func TestGetProductAbsenceIsNotAnError(t *testing.T) {
	handler := NewGetProductHandler(&fakeProductRepo{})

	product, err := handler.Handle(context.Background(), GetProductQuery{ID: primitive.NewObjectID().Hex()})
	require.NoError(t, err)
	assert.Nil(t, product)
}
