package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ohmasense/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ohmasense/storefront-backend/pkg/errors"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Service exposes the storefront catalog plus staff product management.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Brands(ctx context.Context) ([]string, error)

	ListAll(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateVariant(ctx context.Context, productID uuid.UUID, input CreateVariantInput) (*models.ProductVariant, error)
	UpdateVariant(ctx context.Context, id uuid.UUID, input UpdateVariantInput) (*models.ProductVariant, error)
	DeleteVariant(ctx context.Context, id uuid.UUID) error

	AddImage(ctx context.Context, productID uuid.UUID, input AddImageInput) (*models.ProductImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService wires a catalog service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return filterProducts(products, filter), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find product")
	}
	return product, nil
}

func (s *service) Brands(ctx context.Context) ([]string, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	seen := map[string]string{}
	for _, p := range products {
		key := strings.ToLower(p.Brand)
		if _, ok := seen[key]; !ok && p.Brand != "" {
			seen[key] = p.Brand
		}
	}
	brands := make([]string, 0, len(seen))
	for _, b := range seen {
		brands = append(brands, b)
	}
	sort.Strings(brands)
	return brands, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	brand := strings.TrimSpace(input.Brand)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if brand == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product brand is required")
	}
	if input.BasePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price must not be negative")
	}

	product := &models.Product{
		Name:        name,
		Brand:       brand,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		IsActive:    input.IsActive,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
		}
		product.Name = name
	}
	if input.Brand != nil {
		brand := strings.TrimSpace(*input.Brand)
		if brand == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product brand is required")
		}
		product.Brand = brand
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.BasePrice != nil {
		if input.BasePrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price must not be negative")
		}
		product.BasePrice = *input.BasePrice
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) CreateVariant(ctx context.Context, productID uuid.UUID, input CreateVariantInput) (*models.ProductVariant, error) {
	if input.SizeML <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant size must be positive")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant price must not be negative")
	}
	if input.StockQty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantity must not be negative")
	}

	// belongs-to check keeps orphan variants out
	if _, err := s.Get(ctx, productID); err != nil {
		return nil, err
	}

	variant := &models.ProductVariant{
		ProductID: productID,
		SizeML:    input.SizeML,
		Price:     input.Price,
		StockQty:  input.StockQty,
	}
	if err := s.repo.CreateVariant(ctx, variant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create variant")
	}
	return variant, nil
}

func (s *service) UpdateVariant(ctx context.Context, id uuid.UUID, input UpdateVariantInput) (*models.ProductVariant, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}
	variant, err := s.repo.FindVariantByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find variant")
	}

	if input.SizeML != nil {
		if *input.SizeML <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant size must be positive")
		}
		variant.SizeML = *input.SizeML
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant price must not be negative")
		}
		variant.Price = *input.Price
	}

	if err := s.repo.UpdateVariant(ctx, variant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update variant")
	}
	return variant, nil
}

func (s *service) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}
	if err := s.repo.DeleteVariant(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete variant")
	}
	return nil
}

func (s *service) AddImage(ctx context.Context, productID uuid.UUID, input AddImageInput) (*models.ProductImage, error) {
	url := strings.TrimSpace(input.ImageURL)
	if url == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image url is required")
	}
	if input.Position < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image position must not be negative")
	}

	if _, err := s.Get(ctx, productID); err != nil {
		return nil, err
	}

	image := &models.ProductImage{
		ProductID: productID,
		ImageURL:  url,
		Position:  input.Position,
	}
	if err := s.repo.CreateImage(ctx, image); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create image")
	}
	return image, nil
}

func (s *service) DeleteImage(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "image id is required")
	}
	if err := s.repo.DeleteImage(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete image")
	}
	return nil
}
