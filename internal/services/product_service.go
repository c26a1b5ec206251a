package services

import (
	"context"
	"errors"
	"time"

	"mercado/internal/metrics"
	"mercado/internal/models"
	"mercado/internal/repositories"

	"github.com/rs/zerolog"
)

// EventPublisher delivers product change events to a broker.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	strict    bool
	now       func() time.Time
}

// Option configures a ProductService.
type Option func(*ProductService)

// WithEventPublisher publishes an event after every successful mutation.
func WithEventPublisher(publisher EventPublisher) Option {
	return func(s *ProductService) {
		s.publisher = publisher
	}
}

// WithStrictMutations makes UpdateProduct and DeleteProduct return
// repositories.ErrProductNotFound when no row matched. By default such
// mutations are logged and reported as successful.
func WithStrictMutations(strict bool) Option {
	return func(s *ProductService) {
		s.strict = strict
	}
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, opts ...Option) *ProductService {
	s := &ProductService{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct stores a new product; the repository assigns its ID.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.repo.Create(ctx, product); err != nil {
		metrics.ObserveMutation(metrics.OpCreate, err)
		return err
	}
	metrics.ObserveMutation(metrics.OpCreate, nil)

	s.publish(ctx, models.ProductEvent{
		Type:      models.ProductCreated,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
	})
	return nil
}

// UpdateProduct overwrites name and price of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	err := s.repo.Update(ctx, product)
	metrics.ObserveMutation(metrics.OpUpdate, err)
	if err != nil {
		return s.unmatched(ctx, "update", product.ID, err)
	}

	s.publish(ctx, models.ProductEvent{
		Type:      models.ProductUpdated,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
	})
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	metrics.ObserveMutation(metrics.OpDelete, err)
	if err != nil {
		return s.unmatched(ctx, "delete", id, err)
	}

	s.publish(ctx, models.ProductEvent{
		Type:      models.ProductDeleted,
		ProductID: id,
	})
	return nil
}

// unmatched swallows ErrProductNotFound unless the service is strict.
func (s *ProductService) unmatched(ctx context.Context, op, id string, err error) error {
	if !errors.Is(err, repositories.ErrProductNotFound) || s.strict {
		return err
	}
	zerolog.Ctx(ctx).Warn().
		Str("operation", op).
		Str("product_id", id).
		Msg("no product matched, reporting success")
	return nil
}

// publish never fails the request; the change is already persisted.
func (s *ProductService) publish(ctx context.Context, event models.ProductEvent) {
	if s.publisher == nil {
		return
	}
	event.OccurredAt = s.now().UTC()
	if err := s.publisher.PublishProductEvent(ctx, event); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("event", string(event.Type)).
			Str("product_id", event.ProductID).
			Msg("failed to publish product event")
	}
}
