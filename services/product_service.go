package services

import (
	"errors"
	"fmt"
	"strings"

	"pos-backend/entity"
	"pos-backend/repository"

	"gorm.io/gorm"
)

type ProductService struct {
	Repo *repository.ProductRepository
}

func NewProductService(repo *repository.ProductRepository) *ProductService {
	return &ProductService{Repo: repo}
}

// Pointer fields tell "not sent" apart from zero values.
type ProductInput struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	Price       *int64                  `json:"price"`
	Stock       *int                    `json:"stock"`
	Category    *entity.ProductCategory `json:"category"`
	ImageURL    *string                 `json:"imageUrl"`
	IsActive    *bool                   `json:"isActive"`
}

func (in *ProductInput) validateFields() error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if in.Price != nil && *in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if in.Stock != nil && *in.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	if in.Category != nil {
		c := entity.ProductCategory(strings.ToUpper(strings.TrimSpace(string(*in.Category))))
		if !c.Valid() {
			return fmt.Errorf("%w: category must be FOOD, BEVERAGE or DESSERT", ErrValidation)
		}
		*in.Category = c
	}
	return nil
}

func (s *ProductService) List(includeInactive bool, category string) ([]entity.Product, error) {
	f := repository.ProductFilter{IncludeInactive: includeInactive}
	if category != "" {
		c := entity.ProductCategory(strings.ToUpper(category))
		if !c.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
		}
		f.Category = c
	}
	return s.Repo.List(f)
}

func (s *ProductService) Get(id uint) (*entity.Product, error) {
	p, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return p, err
}

// Create requires name and price; stock defaults to 0, category to FOOD, active to true.
func (s *ProductService) Create(in *ProductInput) (*entity.Product, error) {
	if in.Name == nil {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Price == nil {
		return nil, fmt.Errorf("%w: price is required", ErrValidation)
	}
	if err := in.validateFields(); err != nil {
		return nil, err
	}

	p := &entity.Product{
		Name:        strings.TrimSpace(*in.Name),
		Description: in.Description,
		Price:       *in.Price,
		Category:    entity.CategoryFood,
		ImageURL:    in.ImageURL,
		IsActive:    true,
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update changes only the fields present in the request.
func (s *ProductService) Update(id uint, in *ProductInput) (*entity.Product, error) {
	if err := in.validateFields(); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Stock != nil {
		fields["stock"] = *in.Stock
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	if len(fields) > 0 {
		affected, err := s.Repo.Updates(id, fields)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
	}
	return s.Get(id)
}

// Delete hides the product from the catalog; order history keeps pointing at it.
func (s *ProductService) Delete(id uint) error {
	affected, err := s.Repo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return nil
}
