package rabbit

import (
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	// ErrConnectionFailed is returned when connection to RabbitMQ cannot be established
	ErrConnectionFailed = errors.New("rabbit: connection failed")

	// ErrChannelClosed is returned when the publishing channel is closed
	ErrChannelClosed = errors.New("rabbit: channel closed")

	// ErrNacked is returned when the broker negatively acknowledges a publish
	ErrNacked = errors.New("rabbit: publish not confirmed by broker")

	// ErrAccessDenied is returned when the user may not publish to the exchange
	ErrAccessDenied = errors.New("rabbit: access denied")

	// ErrExchangeNotFound is returned when the exchange doesn't exist
	ErrExchangeNotFound = errors.New("rabbit: exchange not found")

	// ErrPreconditionFailed is returned when a declaration conflicts with an existing one
	ErrPreconditionFailed = errors.New("rabbit: precondition failed")
)

// translateError maps AMQP protocol errors onto the package sentinels. The
// original error stays in the chain.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, amqp.ErrClosed) {
		return errors.Join(ErrChannelClosed, err)
	}

	var amqpErr *amqp.Error
	if !errors.As(err, &amqpErr) {
		return err
	}
	switch amqpErr.Code {
	case amqp.AccessRefused:
		return errors.Join(ErrAccessDenied, err)
	case amqp.NotFound:
		return errors.Join(ErrExchangeNotFound, err)
	case amqp.PreconditionFailed:
		return errors.Join(ErrPreconditionFailed, err)
	case amqp.ChannelError, amqp.ConnectionForced:
		return errors.Join(ErrChannelClosed, err)
	}
	return err
}
