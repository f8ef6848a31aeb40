package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrNotConnected = errors.New("events.publisher: not connected to broker")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher отправляет события в RabbitMQ
// Ошибки публикации логируются и не возвращаются вызывающему коду
type Publisher struct {
	url  string
	log  Logger
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url string, log Logger) (*Publisher, error) {
	p := &Publisher{url: url, log: log}
	if err := p.connect(); err != nil {
		return nil, fmt.Errorf("events.publisher: Connect - %w", err)
	}
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	// Очереди durable -- переживают рестарт брокера
	for _, name := range []string{
		KeyScheduleCreated, KeyScheduleUpdated, KeyScheduleDeleted,
		KeyBookingCreated, KeyBookingConfirmed, KeyBookingCancelled,
	} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return err
		}
	}

	p.conn = conn
	p.ch = ch
	return nil
}

// Publish отправляет событие в очередь key
// При обрыве соединения делает одну попытку переподключения
func (p *Publisher) Publish(ctx context.Context, key string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.log.Error("events.publisher: Publish - marshal %s: %v", key, err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.publishLocked(ctx, key, body); err != nil {
		p.log.Warn("events.publisher: Publish - %s failed, reconnecting: %v", key, err)
		if err := p.reconnectLocked(); err != nil {
			p.log.Error("events.publisher: Publish - reconnect failed: %v", err)
			return
		}
		if err := p.publishLocked(ctx, key, body); err != nil {
			p.log.Error("events.publisher: Publish - %s failed after reconnect: %v", key, err)
		}
	}
}

func (p *Publisher) publishLocked(ctx context.Context, key string, body []byte) error {
	if p.ch == nil || p.ch.IsClosed() {
		return ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(ctx, "", key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (p *Publisher) reconnectLocked() error {
	p.closeLocked()
	return p.connect()
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

func (p *Publisher) closeLocked() {
	if p.ch != nil {
		p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}

// NopPublisher заглушка, когда RabbitMQ выключен в конфигурации
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, key string, payload interface{}) {}

func (NopPublisher) Close() {}
