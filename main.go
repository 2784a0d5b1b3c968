package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"pos-backend/configs"
	"pos-backend/middlewares"
	"pos-backend/pkg/storage"
	"pos-backend/routes"
	"pos-backend/services"
	"pos-backend/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	db, err := configs.ConnectionDB(cfg.DBSource)
	if err != nil {
		log.Fatalf("connect database failed: %v", err)
	}

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	if err := configs.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if cfg.SeedProducts {
		if err := configs.SeedProducts(db); err != nil {
			log.Fatalf("seed products failed: %v", err)
		}
	}

	// sessions
	var revoker services.SessionRevoker = services.NoopRevoker{}
	rdb, err := configs.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("connect redis failed: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
		revoker = services.NewRedisRevoker(rdb)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.RequestID())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))

	// avatars
	var avatars services.AvatarStore
	if cfg.MinioEndpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store, err := storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		cancel()
		if err != nil {
			log.Fatalf("connect minio failed: %v", err)
		}
		avatars = store
	} else {
		avatars = storage.NewLocalStore(cfg.UploadDir, "/uploads/")
		r.Static("/uploads", cfg.UploadDir)
	}

	hub := ws.NewOrderHub(cfg.CORSOrigins...)
	go hub.Run()
	defer hub.Stop()

	deps, err := routes.NewDeps(db, cfg, revoker, avatars, hub)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	routes.RegisterRoutes(r, deps)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("Server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
