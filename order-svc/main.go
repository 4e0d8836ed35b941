package main

import (
	"log"
	"os"

	"quickbite/config"
	httpapi "quickbite/order-svc/internal/api/http"
	"quickbite/order-svc/internal/catalog"
	"quickbite/order-svc/internal/service"
	"quickbite/order-svc/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	var publisher service.OrderPublisher
	if os.Getenv("KAFKA_BROKER") != "" {
		writer := config.NewKafkaWriter("orders")
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	menu := catalog.NewClient(config.RestaurantServiceURL(), config.HTTPClientTimeout())
	qr := &service.DefaultQRGenerator{BaseURL: config.PublicBaseURL()}

	orderSvc := service.NewOrderService(repo, menu, publisher, qr)

	handler := httpapi.NewHandler(orderSvc)
	httpapi.StartServer(":8082", httpapi.NewRouter(handler))
}
