package product

import (
	"context"
	"io"
	"log"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

// Service exposes catalog reads and the admin product lifecycle. Stock is
// touched here only through Restock; order flows own reduce/restore.
type Service struct {
	repo   repo
	logger *log.Logger
}

type repo interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListVisible(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	SetVisibility(ctx context.Context, id int64, visible bool) error
	RestoreStock(ctx context.Context, id int64, qty int) error
}

// New builds a product service.
func New(r productrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: r, logger: logger}
}

// CreateInput carries admin-supplied product fields.
type CreateInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	PriceAmount   string `json:"priceAmount"`
	PriceCurrency string `json:"priceCurrency"`
	StockQuantity int    `json:"stockQuantity"`
}

// UpdateInput carries admin-supplied changes to an existing product.
type UpdateInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	PriceAmount   string `json:"priceAmount"`
	PriceCurrency string `json:"priceCurrency"`
}

// Catalog returns visible products for the storefront.
func (s *Service) Catalog(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListVisible(ctx)
}

// List returns every product, hidden ones included. Admin operation.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and persists a new product.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	price, err := domain.ParseMoney(in.PriceAmount, domain.Currency(in.PriceCurrency))
	if err != nil {
		return nil, err
	}
	product, err := domain.NewProduct(in.Name, in.Description, price, in.StockQuantity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Printf("product: created id=%d name=%q", product.ID, product.Name)
	return product, nil
}

// Update changes name, description and price. Stock is not settable here.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	price, err := domain.ParseMoney(in.PriceAmount, domain.Currency(in.PriceCurrency))
	if err != nil {
		return nil, err
	}
	updated, err := domain.NewProduct(in.Name, in.Description, price, product.StockQuantity)
	if err != nil {
		return nil, err
	}
	updated.ID = product.ID
	updated.IsVisible = product.IsVisible
	updated.CreatedAt = product.CreatedAt
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// SetVisibility hides or shows a product without deleting it.
func (s *Service) SetVisibility(ctx context.Context, id int64, visible bool) (*domain.Product, error) {
	if err := s.repo.SetVisibility(ctx, id, visible); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Restock adds qty units to a product's stock. Admin operation.
func (s *Service) Restock(ctx context.Context, id int64, qty int) (*domain.Product, error) {
	if qty <= 0 {
		return nil, &domain.InvalidQuantityError{Quantity: qty}
	}
	if err := s.repo.RestoreStock(ctx, id, qty); err != nil {
		return nil, err
	}
	s.logger.Printf("product: restocked id=%d qty=%d", id, qty)
	return s.repo.GetByID(ctx, id)
}
