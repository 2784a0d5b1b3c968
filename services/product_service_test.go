package services

import (
	"testing"

	"pos-backend/entity"
	"pos-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCreateProductRequiresNameAndPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db))

	cases := map[string]*ProductInput{
		"no name":        {Price: ptr(int64(1000))},
		"blank name":     {Name: ptr("   "), Price: ptr(int64(1000))},
		"no price":       {Name: ptr("Kopi")},
		"negative price": {Name: ptr("Kopi"), Price: ptr(int64(-1))},
		"negative stock": {Name: ptr("Kopi"), Price: ptr(int64(1000)), Stock: ptr(-5)},
		"bad category":   {Name: ptr("Kopi"), Price: ptr(int64(1000)), Category: ptr(entity.ProductCategory("SNACK"))},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Zero(t, countRows(t, db, &entity.Product{}))
}

func TestCreateProductDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db))

	p, err := svc.Create(&ProductInput{Name: ptr(" Kopi Susu "), Price: ptr(int64(12000)), Category: ptr(entity.ProductCategory("beverage"))})
	require.NoError(t, err)
	assert.Equal(t, "Kopi Susu", p.Name)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, entity.CategoryBeverage, p.Category)
	assert.True(t, p.IsActive)

	hidden, err := svc.Create(&ProductInput{Name: ptr("Seasonal"), Price: ptr(int64(5000)), IsActive: ptr(false)})
	require.NoError(t, err)
	stored, err := svc.Get(hidden.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestUpdateProductOnlyChangesGivenFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db))
	p := seedProduct(t, db, "Nasi Goreng", 25000, 50)

	got, err := svc.Update(p.ID, &ProductInput{Price: ptr(int64(27000))})
	require.NoError(t, err)
	assert.Equal(t, int64(27000), got.Price)
	assert.Equal(t, "Nasi Goreng", got.Name)
	assert.Equal(t, 50, got.Stock)

	got, err = svc.Update(p.ID, &ProductInput{Stock: ptr(0), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
	assert.False(t, got.IsActive)

	_, err = svc.Update(p.ID, &ProductInput{Name: ptr("")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(9999, &ProductInput{Price: ptr(int64(1))})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAndDeleteProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db))
	food := seedProduct(t, db, "Nasi Goreng", 25000, 50)
	drink, err := svc.Create(&ProductInput{Name: ptr("Es Jeruk"), Price: ptr(int64(8000)), Category: ptr(entity.CategoryBeverage)})
	require.NoError(t, err)
	_, err = svc.Create(&ProductInput{Name: ptr("Off Menu"), Price: ptr(int64(1000)), IsActive: ptr(false)})
	require.NoError(t, err)

	active, err := svc.List(false, "")
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err := svc.List(true, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	drinks, err := svc.List(false, "beverage")
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, drink.ID, drinks[0].ID)

	_, err = svc.List(false, "SNACK")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.Delete(food.ID))
	assert.ErrorIs(t, svc.Delete(food.ID), ErrNotFound)
	_, err = svc.Get(food.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// soft delete keeps the row for order history
	var n int64
	require.NoError(t, db.Unscoped().Model(&entity.Product{}).Where("id = ?", food.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
