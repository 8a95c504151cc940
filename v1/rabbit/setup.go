package rabbit

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	amqp "github.com/rabbitmq/amqp091-go"
)

// channel is the publishing surface of an AMQP channel.
type channel interface {
	publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error
	Close() error
}

// Publisher publishes tracing sessions to a RabbitMQ exchange with publisher
// confirms. It implements tracing.Ingester.
type Publisher struct {
	cfg Config

	// mu protects concurrent access to connection and channel
	mu   sync.RWMutex
	conn *amqp.Connection
	ch   channel

	observer observability.Observer
	logger   Logger
}

// NewPublisher connects to RabbitMQ, opens a channel in confirm mode and,
// when Channel.DeclareTopology is set, declares the exchange and queue.
//
//	pub, err := rabbit.NewPublisher(rabbit.NewConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pub.Close()
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg = cfg.withDefaults()

	conn, err := newConnection(cfg)
	if err != nil {
		return nil, err
	}

	ch, err := connectToChannel(conn, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	p := newPublisher(cfg, ch)
	p.conn = conn
	return p, nil
}

func newPublisher(cfg Config, ch channel) *Publisher {
	return &Publisher{cfg: cfg.withDefaults(), ch: ch}
}

// WithObserver attaches an observer for publish operations.
func (p *Publisher) WithObserver(observer observability.Observer) *Publisher {
	p.observer = observer
	return p
}

// WithLogger attaches a context-aware logger.
func (p *Publisher) WithLogger(logger Logger) *Publisher {
	p.logger = logger
	return p
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.ch != nil {
		err = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
		p.conn = nil
	}
	return err
}

// confirmChannel publishes and waits for the broker confirmation.
type confirmChannel struct {
	ch *amqp.Channel
}

func (c confirmChannel) publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error {
	dc, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil {
		return err
	}
	// nil when the channel is not in confirm mode
	if dc == nil {
		return nil
	}
	ok, err := dc.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNacked
	}
	return nil
}

func (c confirmChannel) Close() error {
	return c.ch.Close()
}

// connectToChannel opens a confirm-mode channel and declares the topology
// when asked to.
func connectToChannel(conn *amqp.Connection, cfg Config) (channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", translateError(err))
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", translateError(err))
	}

	if cfg.Channel.DeclareTopology {
		if err := declareTopology(ch, cfg.Channel); err != nil {
			_ = ch.Close()
			return nil, err
		}
	}
	return confirmChannel{ch: ch}, nil
}

func declareTopology(ch *amqp.Channel, cfg Channel) error {
	err := ch.ExchangeDeclare(
		cfg.ExchangeName,
		cfg.ExchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", translateError(err))
	}

	if cfg.QueueName == "" {
		return nil
	}

	_, err = ch.QueueDeclare(
		cfg.QueueName,
		true,  // Durable
		false, // AutoDelete
		false, // Exclusive
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", translateError(err))
	}

	err = ch.QueueBind(
		cfg.QueueName,
		cfg.RoutingKey,
		cfg.ExchangeName,
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		return fmt.Errorf("failed to bind queue: %w", translateError(err))
	}
	return nil
}

// newConnection dials RabbitMQ over amqp or amqps. With UseCert the client
// certificate is presented for mutual TLS. All connections use a 2-second
// heartbeat interval to detect disconnections quickly.
func newConnection(cfg Config) (*amqp.Connection, error) {
	scheme := "amqp"
	amqpCfg := amqp.Config{Heartbeat: 2 * time.Second}

	if cfg.Connection.IsSSLEnabled {
		scheme = "amqps"
		tlsConfig, err := createTLSConfig(cfg.Connection)
		if err != nil {
			return nil, err
		}
		amqpCfg.TLSClientConfig = tlsConfig
	}

	uri := amqp.URI{
		Scheme:   scheme,
		Host:     cfg.Connection.Host,
		Port:     int(cfg.Connection.Port),
		Username: cfg.Connection.User,
		Password: cfg.Connection.Password,
		Vhost:    "/",
	}
	conn, err := amqp.DialConfig(uri.String(), amqpCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return conn, nil
}

func createTLSConfig(cfg Connection) (*tls.Config, error) {
	tlsConfig := &tls.Config{ServerName: cfg.ServerName}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		caCertPool.AppendCertsFromPEM(caCert)
		tlsConfig.RootCAs = caCertPool
	}

	if cfg.UseCert {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	return tlsConfig, nil
}
