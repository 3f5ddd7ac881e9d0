// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client publishes collected reports to a topic exchange.
type Client struct {
	AMQPURL     string
	Exchange    string
	mu          sync.Mutex
	AMQPConn    *amqp.Connection
	AMQPChannel *amqp.Channel
}
