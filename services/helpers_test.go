package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"pos-backend/configs"
	"pos-backend/entity"
	"pos-backend/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString()[:8])
	db, err := configs.OpenDB(dsn, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, configs.SetupDatabase(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role entity.Role, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, Price: price, Stock: stock, Category: entity.CategoryFood, IsActive: true}
	require.NoError(t, db.Create(p).Error)
	return p
}

func identityOf(u *entity.User) Identity {
	return Identity{UserID: u.ID, Username: u.Username, Role: u.Role}
}

type recordingPublisher struct{ events []OrderEvent }

func (r *recordingPublisher) Publish(ev OrderEvent) { r.events = append(r.events, ev) }

func newOrderService(db *gorm.DB, pub OrderPublisher) *OrderService {
	return NewOrderService(db,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		DefaultPricing(),
		pub,
	)
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// insertUserFirst returns a gorm callback that inserts a competing user on the same
// connection right before the next write to users, after the service's own duplicate check.
func insertUserFirst(email, username string) func(*gorm.DB) {
	done := false
	return func(tx *gorm.DB) {
		if done || tx.Statement.Table != "users" {
			return
		}
		done = true
		now := time.Now()
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"INSERT INTO users (created_at, updated_at, email, username, password_hash, role) VALUES (?, ?, ?, ?, ?, ?)",
			now, now, email, username, "x", entity.RoleCashier)
		if err != nil {
			tx.AddError(err)
		}
	}
}
