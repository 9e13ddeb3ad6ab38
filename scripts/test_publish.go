//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

type serviceAvailableEvent struct {
	ServiceType  string    `json:"service_type"`
	Neighborhood string    `json:"neighborhood"`
	TriggerLogID int64     `json:"trigger_log_id"`
	FiredAt      time.Time `json:"fired_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	natsURL := flag.String("nats", nats.DefaultURL, "NATS server URL")
	stream := flag.String("stream", "stream:notify:service_available", "fan-out job stream")
	prefix := flag.String("prefix", "notifications.user", "per-user subject prefix")
	neighborhood := flag.String("neighborhood", "Kadıköy", "neighborhood to notify")
	serviceType := flag.String("type", "electricity", "electricity or water")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	nc, err := nats.Connect(*natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer nc.Close()

	// Подписка до публикации, чтобы не пропустить доставку
	received := make(chan *nats.Msg, 64)
	sub, err := nc.ChanSubscribe(*prefix+".>", received)
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	event := serviceAvailableEvent{
		ServiceType:  *serviceType,
		Neighborhood: *neighborhood,
		TriggerLogID: 0,
		FiredAt:      time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: *stream,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Job published: stream=%s id=%s neighborhood=%s type=%s\n", *stream, id, *neighborhood, *serviceType)
	fmt.Printf("Waiting for deliveries on %s.> ...\n", *prefix)

	timeout := time.After(15 * time.Second)
	count := 0
	for {
		select {
		case msg := <-received:
			count++
			fmt.Printf("  %s %s\n", msg.Subject, string(msg.Data))
		case <-timeout:
			fmt.Printf("Received %d notification(s)\n", count)
			return
		}
	}
}
