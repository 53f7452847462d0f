// Package natsad publishes pipeline events to NATS.
package natsad

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"insight_engine/internal/domain"
)

const DefaultSubject = "insight.review.refreshed"

type Publisher struct {
	nc      *nats.Conn
	subject string
	owned   bool
}

// Connect dials url and keeps reconnecting in the background.
func Connect(url, subject string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("insight-engine"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("nats disconnected")
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	p := NewPublisher(nc, subject)
	p.owned = true
	return p, nil
}

func NewPublisher(nc *nats.Conn, subject string) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Publisher{nc: nc, subject: subject}
}

// PublishRefresh sends the event as JSON. The run id doubles as the
// JetStream dedup id should the subject be captured by a stream.
func (p *Publisher) PublishRefresh(ctx context.Context, ev domain.RefreshEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &nats.Msg{Subject: p.subject, Data: data, Header: nats.Header{}}
	msg.Header.Set(nats.MsgIdHdr, ev.RunID)
	msg.Header.Set("Product-Id", strconv.FormatInt(ev.ProductID, 10))
	msg.Header.Set("Outcome", ev.Outcome)
	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

// Close drains the connection if the publisher dialed it.
func (p *Publisher) Close() error {
	if !p.owned {
		return nil
	}
	return p.nc.Drain()
}
