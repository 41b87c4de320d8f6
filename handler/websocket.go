package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"

	"pos_manager/model"
)

// OrderFeed pushes paid-order events to dashboard clients of one
// organization. Events travel through Redis pubsub so every app instance
// sees them regardless of which one settled the payment.
type OrderFeed struct {
	Redis *redis.Client
}

func NewOrderFeed(client *redis.Client) *OrderFeed {
	return &OrderFeed{Redis: client}
}

func feedChannel(orgID uint) string {
	return fmt.Sprintf("orders:%d", orgID)
}

type orderEvent struct {
	Type        string `json:"type"`
	OrderID     uint   `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	TotalAmount string `json:"totalAmount"`
}

// PublishOrderPaid announces a settled order on the organization's channel.
func (f *OrderFeed) PublishOrderPaid(ctx context.Context, order *model.Order) {
	payload, err := json.Marshal(orderEvent{
		Type:        "order.paid",
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		TotalAmount: order.TotalAmount.StringFixed(2),
	})
	if err != nil {
		return
	}
	if err := f.Redis.Publish(ctx, feedChannel(order.OrganizationID), payload).Err(); err != nil {
		log.Printf("failed to publish order event for order %d: %v", order.ID, err)
	}
}

// Subscribe handles a dashboard websocket connection. Each connection gets
// its own Redis subscription on the organization's channel and receives
// every event exactly once.
func (f *OrderFeed) Subscribe(c *websocket.Conn) {
	orgID, ok := c.Locals("organizationId").(uint)
	if !ok || orgID == 0 {
		c.Close()
		return
	}

	pubsub := f.Redis.Subscribe(context.Background(), feedChannel(orgID))
	defer pubsub.Close()
	defer c.Close()

	// Read pump. The client never sends application messages, but the
	// reads surface the close frame; closing the pubsub ends the relay
	// below so the subscription does not outlive the socket.
	go func() {
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				pubsub.Close()
				return
			}
		}
	}()

	relayFeed(c, pubsub.Channel())
}

type feedConn interface {
	WriteMessage(messageType int, data []byte) error
}

// relayFeed forwards channel payloads to one client until the channel
// closes or a write fails.
func relayFeed(conn feedConn, msgs <-chan *redis.Message) {
	for msg := range msgs {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			return
		}
	}
}
