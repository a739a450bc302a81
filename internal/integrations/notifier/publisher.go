package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel канал событий бронирования по умолчанию
const DefaultChannel = "yakidesk:bookings"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Options параметры подключения к Redis
type Options struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewClient создает клиент Redis и проверяет соединение
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  opts.DialTimeout,
		WriteTimeout: opts.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, opts.Addr, err)
	}

	return client, nil
}

// Publisher публикует события бронирований в Redis pub/sub
type Publisher struct {
	client  *redis.Client
	channel string
	log     Logger
}

// NewPublisher создает публикатор; пустой channel заменяется на DefaultChannel
func NewPublisher(client *redis.Client, channel string, log Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{
		client:  client,
		channel: channel,
		log:     log,
	}
}

// Publish сериализует событие в JSON и отправляет в канал
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, event.Type, err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("%w: %s booking_id=%s: %v", ErrPublish, event.Type, event.BookingID, err)
	}

	p.log.Info("Published %s booking_id=%s to %s (receivers=%d)", event.Type, event.BookingID, p.channel, receivers)
	return nil
}

// Channel возвращает имя канала публикации
func (p *Publisher) Channel() string {
	return p.channel
}
