package main

import (
	"log"
	"os"
	"time"

	"quickbite/config"
	httpapi "quickbite/restaurant-svc/internal/api/http"
	"quickbite/restaurant-svc/internal/service"
	"quickbite/restaurant-svc/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	var cache service.MenuItemCache
	if os.Getenv("REDIS_HOST") != "" {
		rdb := config.MustInitRedis()
		defer rdb.Close()
		cache = storage.NewMenuCache(rdb, 5*time.Minute)
	}

	restSvc := service.NewRestaurantService(repo)
	menuSvc := service.NewMenuService(repo, repo, cache)

	handler := httpapi.NewHandler(restSvc, menuSvc)
	httpapi.StartServer(":8081", httpapi.NewRouter(handler))
}
