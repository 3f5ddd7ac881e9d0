// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"apn-server/commons"
	"apn-server/models"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

func NewClient(amqpURL, exchange string) (*Client, error) {
	c := &Client{AMQPURL: amqpURL, Exchange: exchange}
	if err := c.connect(); err != nil {
		return nil, err
	}
	commons.Logger.Infof("RabbitMQ publisher ready on exchange %s", exchange)
	return c, nil
}

func (c *Client) connect() error {
	conn, err := amqp.Dial(c.AMQPURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("channel: %w", err)
	}
	if err := ch.ExchangeDeclare(c.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("exchange declare: %w", err)
	}
	c.AMQPConn = conn
	c.AMQPChannel = ch
	return nil
}

// RoutingKey returns report.<simOperator>, or report.unknown when the SIM
// code is empty.
func RoutingKey(msg *models.ReportMessage) string {
	op := strings.TrimSpace(msg.SimOperator)
	if op == "" {
		op = "unknown"
	}
	return "report." + op
}

// PublishReport sends msg as persistent JSON. A closed channel is redialed
// once before giving up.
func (c *Client) PublishReport(ctx context.Context, msg *models.ReportMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.AMQPChannel == nil || c.AMQPChannel.IsClosed() {
		commons.Logger.Warn("RabbitMQ channel closed, reconnecting")
		c.closeLocked()
		if err := c.connect(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	err = c.AMQPChannel.PublishWithContext(ctx, c.Exchange, RoutingKey(msg), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.RID,
		Timestamp:    msg.ReceivedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	commons.Logger.Debugf("Published report %s to %s", msg.RID, c.Exchange)
	return nil
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Client) closeLocked() {
	if c.AMQPChannel != nil {
		_ = c.AMQPChannel.Close()
		c.AMQPChannel = nil
	}
	if c.AMQPConn != nil {
		_ = c.AMQPConn.Close()
		c.AMQPConn = nil
	}
}
