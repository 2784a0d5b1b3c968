package configs

import (
	"log"
	"strings"

	"pos-backend/entity"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the first administrator on an empty install.
func SeedAdmin(database *gorm.DB, cfg *Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := database.Model(&entity.User{}).
		Where("email = ? OR username = ?", email, cfg.AdminUsername).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:        email,
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
	}
	return database.Create(&admin).Error
}

func strPtr(s string) *string { return &s }

// SeedProducts fills an empty catalog with the demo menu.
func SeedProducts(database *gorm.DB) error {
	var count int64
	if err := database.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []entity.Product{
		{Name: "Nasi Goreng", Description: strPtr("Nasi goreng spesial dengan telur dan sayuran"), Price: 25000, Stock: 50, Category: entity.CategoryFood},
		{Name: "Gado-gado Special", Description: strPtr("Sayuran dengan kacang dan telur rebus"), Price: 20000, Stock: 40, Category: entity.CategoryFood},
		{Name: "Soto Ayam", Description: strPtr("Sup ayam tradisional dengan rempah pilihan"), Price: 22000, Stock: 35, Category: entity.CategoryFood},
		{Name: "Es Jeruk", Description: strPtr("Minuman segar dari jeruk asli"), Price: 12000, Stock: 60, Category: entity.CategoryBeverage},
		{Name: "Es Cendol", Description: strPtr("Minuman tradisional dengan cendol lembut"), Price: 15000, Stock: 45, Category: entity.CategoryBeverage},
		{Name: "Kopi Hitam", Description: strPtr("Kopi premium tanpa gula"), Price: 18000, Stock: 50, Category: entity.CategoryBeverage},
		{Name: "Pudding Cokelat", Description: strPtr("Pudding lembut dengan rasa cokelat premium"), Price: 16000, Stock: 30, Category: entity.CategoryDessert},
		{Name: "Tiramisu", Description: strPtr("Dessert Italia yang lezat"), Price: 20000, Stock: 25, Category: entity.CategoryDessert},
		{Name: "Brownies", Description: strPtr("Brownies cokelat premium"), Price: 18000, Stock: 35, Category: entity.CategoryDessert},
	}
	for i := range products {
		products[i].IsActive = true
	}
	if err := database.Create(&products).Error; err != nil {
		return err
	}
	log.Printf("seeded %d products", len(products))
	return nil
}
