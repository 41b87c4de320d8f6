package cache

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"pos_manager/config"
)

var Client *redis.Client

// ConnectRedis opens the shared Redis client used for payment sessions, cart
// sessions and the order feed pubsub.
func ConnectRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr:     config.Config("REDIS_ADDR"),
		Password: config.Config("REDIS_PASSWORD"),
	})

	if err := Client.Ping(context.Background()).Err(); err != nil {
		panic("failed to connect redis: " + err.Error())
	}
	log.Println("Connection opened to Redis")
}
