package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"quickbite/stats-svc/internal/domain"
)

type Consumer struct {
	Reader *kafka.Reader
	Store  StoreInterface
}

func NewConsumer(reader *kafka.Reader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Stats Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			log.Printf("Error reading message: %v", err)
			continue
		}

		var msg domain.OrderEvent
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.ProcessOrderEvent(ctx, msg)
	}
}

func (c *Consumer) ProcessOrderEvent(ctx context.Context, msg domain.OrderEvent) {
	if msg.Type != "order_placed" {
		return
	}
	log.Printf("Processing order: OrderID=%d, RestaurantID=%d", msg.OrderID, msg.RestaurantID)

	if err := c.Store.RecordOrder(ctx, msg.RestaurantID, msg.Timestamp); err != nil {
		log.Printf("Error recording order: %v", err)
		return
	}

	log.Printf("Successfully recorded order %d", msg.OrderID)
}
