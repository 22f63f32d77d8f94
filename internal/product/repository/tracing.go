package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/construmat/backend/internal/product/domain"
)

var tracer = otel.Tracer("product-repository")

// TracingProductRepository wraps a ProductRepository with tracing spans.
type TracingProductRepository struct {
	inner domain.ProductRepository
}

func NewTracingProductRepository(inner domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{inner: inner}
}

func (r *TracingProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("product.name", product.Name),
			attribute.String("product.sku", product.SKU),
			attribute.String("product.category", product.Category),
			attribute.Float64("product.price", product.Price),
			attribute.Int("product.stock", product.Stock),
		),
	)
	defer span.End()

	if err := r.inner.Create(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("product.id", product.ID.Hex()))
	return nil
}

func (r *TracingProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.String("product.id", id.Hex())),
	)
	defer span.End()

	product, err := r.inner.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Bool("product.found", product != nil))
	return product, nil
}

func (r *TracingProductRepository) List(ctx context.Context, filter domain.Filter, pageSize int, cursor string) (*domain.Page, error) {
	ctx, span := tracer.Start(ctx, "repository.List",
		trace.WithAttributes(
			attribute.String("query.category", filter.Category),
			attribute.String("query.status", filter.Status),
			attribute.Int("query.page_size", pageSize),
			attribute.Bool("query.has_cursor", cursor != ""),
		),
	)
	defer span.End()

	page, err := r.inner.List(ctx, filter, pageSize, cursor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(page.Products)))
	return page, nil
}

func (r *TracingProductRepository) FindByTag(ctx context.Context, tag string) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByTag",
		trace.WithAttributes(attribute.String("query.tag", tag)),
	)
	defer span.End()

	products, err := r.inner.FindByTag(ctx, tag)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

func (r *TracingProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByCategory",
		trace.WithAttributes(attribute.String("query.category", category)),
	)
	defer span.End()

	products, err := r.inner.FindByCategory(ctx, category)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

func (r *TracingProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(
			attribute.String("product.id", product.ID.Hex()),
			attribute.String("product.name", product.Name),
		),
	)
	defer span.End()

	if err := r.inner.Update(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *TracingProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.String("product.id", id.Hex())),
	)
	defer span.End()

	if err := r.inner.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *TracingProductRepository) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error {
	ctx, span := tracer.Start(ctx, "repository.AdjustStock",
		trace.WithAttributes(
			attribute.String("product.id", id.Hex()),
			attribute.Int("stock.delta", delta),
		),
	)
	defer span.End()

	if err := r.inner.AdjustStock(ctx, id, delta); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *TracingProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Count")
	defer span.End()

	count, err := r.inner.Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}
