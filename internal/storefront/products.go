package storefront

import (
	"context"

	productdomain "github.com/construmat/backend/internal/product/domain"
	productquery "github.com/construmat/backend/internal/product/usecase/query"
)

// LoadProducts starts an asynchronous catalog load with the given filter,
// replacing whatever page the slice currently holds. Concurrent loads
// race; the last one to finish wins.
func (s *Store) LoadProducts(ctx context.Context, filter productdomain.Filter, pageSize int) {
	s.mu.Lock()
	s.products.Loading = true
	s.products.Error = ""
	s.products.Filter = filter
	s.notifyLocked()
	s.mu.Unlock()

	go func() {
		page, err := s.services.ListProducts.Handle(ctx, productquery.ListProductsQuery{
			PageSize: pageSize,
			Filter:   filter,
		})

		s.mu.Lock()
		defer s.mu.Unlock()

		s.products.Loading = false
		if err != nil {
			s.products.Error = err.Error()
		} else {
			s.products.Items = page.Products
			s.products.NextCursor = page.NextCursor
		}
		s.notifyLocked()
	}()
}

// LoadMoreProducts fetches the next page for the current filter and
// appends it. A no-op when there is no cursor.
func (s *Store) LoadMoreProducts(ctx context.Context, pageSize int) {
	s.mu.Lock()
	cursor := s.products.NextCursor
	filter := s.products.Filter
	if cursor == "" {
		s.mu.Unlock()
		return
	}
	s.products.Loading = true
	s.products.Error = ""
	s.notifyLocked()
	s.mu.Unlock()

	go func() {
		page, err := s.services.ListProducts.Handle(ctx, productquery.ListProductsQuery{
			PageSize: pageSize,
			Cursor:   cursor,
			Filter:   filter,
		})

		s.mu.Lock()
		defer s.mu.Unlock()

		s.products.Loading = false
		if err != nil {
			s.products.Error = err.Error()
		} else {
			s.products.Items = append(s.products.Items, page.Products...)
			s.products.NextCursor = page.NextCursor
		}
		s.notifyLocked()
	}()
}

// SearchProducts starts an asynchronous tag search, replacing the slice
// data with the results. The cursor is cleared, search results are not
// paginated.
func (s *Store) SearchProducts(ctx context.Context, term string) {
	s.mu.Lock()
	s.products.Loading = true
	s.products.Error = ""
	s.notifyLocked()
	s.mu.Unlock()

	go func() {
		products, err := s.services.SearchProducts.Handle(ctx, productquery.SearchProductsQuery{Term: term})

		s.mu.Lock()
		defer s.mu.Unlock()

		s.products.Loading = false
		if err != nil {
			s.products.Error = err.Error()
		} else {
			s.products.Items = products
			s.products.NextCursor = ""
		}
		s.notifyLocked()
	}()
}
