package repository

import (
	"pos-backend/entity"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

type ProductFilter struct {
	IncludeInactive bool
	Category        entity.ProductCategory
}

// GET /products
func (r *ProductRepository) List(f ProductFilter) ([]entity.Product, error) {
	q := r.DB.Model(&entity.Product{})
	if !f.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	var products []entity.Product
	err := q.Order("category ASC, name ASC").Find(&products).Error
	return products, err
}

func (r *ProductRepository) FindByID(id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDs reads inside the checkout transaction; soft-deleted rows are excluded.
func (r *ProductRepository) FindByIDs(tx *gorm.DB, ids []uint) (map[uint]entity.Product, error) {
	var rows []entity.Product
	if err := tx.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]entity.Product, len(rows))
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.DB.Create(p).Error
}

// Updates applies only the given columns; returns rows affected so callers can 404.
func (r *ProductRepository) Updates(id uint, fields map[string]any) (int64, error) {
	res := r.DB.Model(&entity.Product{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

// Delete is a soft delete (gorm.Model DeletedAt).
func (r *ProductRepository) Delete(id uint) (int64, error) {
	res := r.DB.Delete(&entity.Product{}, id)
	return res.RowsAffected, res.Error
}

// DecrementStock only succeeds when enough stock is left.
func (r *ProductRepository) DecrementStock(tx *gorm.DB, id uint, qty int) (bool, error) {
	res := tx.Model(&entity.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// IncrementStock also reaches soft-deleted products so cancelled orders restock them.
func (r *ProductRepository) IncrementStock(tx *gorm.DB, id uint, qty int) error {
	return tx.Unscoped().Model(&entity.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
}

func (r *ProductRepository) CountActive() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Product{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}
