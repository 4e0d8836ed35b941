package main

import (
	"context"

	"quickbite/config"
	"quickbite/stats-svc/internal/service"
	"quickbite/stats-svc/internal/storage"
)

func main() {
	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader("orders", "stats-svc-consumer")
	defer reader.Close()

	consumer := service.NewConsumer(reader, storage.NewRedisStore(rdb))
	consumer.Start(context.Background())
}
