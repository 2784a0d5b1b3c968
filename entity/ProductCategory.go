package entity

type ProductCategory string

const (
	CategoryFood     ProductCategory = "FOOD"
	CategoryBeverage ProductCategory = "BEVERAGE"
	CategoryDessert  ProductCategory = "DESSERT"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryBeverage, CategoryDessert:
		return true
	}
	return false
}
