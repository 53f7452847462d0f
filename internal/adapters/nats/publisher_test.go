package natsad_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	natsad "insight_engine/internal/adapters/nats"
	"insight_engine/internal/domain"
)

func startTestNATS(t *testing.T) (*natsserver.Server, *nats.Conn) {
	t.Helper()
	srv, err := natsserver.NewServer(&natsserver.Options{Port: -1})
	if err != nil {
		t.Fatal(err)
	}
	srv.Start()
	if !srv.ReadyForConnections(3 * time.Second) {
		t.Fatal("nats not ready")
	}
	nc, err := nats.Connect(srv.ClientURL())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		nc.Close()
		srv.Shutdown()
	})
	return srv, nc
}

func TestPublishRefresh(t *testing.T) {
	_, nc := startTestNATS(t)

	ch := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe(natsad.DefaultSubject, ch)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Unsubscribe()

	rating := 4.5
	ev := domain.RefreshEvent{RunID: "run-1", ProductID: 7, Profile: "appliance", Outcome: "updated", TotalFound: 9, OverallRating: &rating}
	p := natsad.NewPublisher(nc, "")
	if err := p.PublishRefresh(context.Background(), ev); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-ch:
		var got domain.RefreshEvent
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatal(err)
		}
		if got.ProductID != 7 || got.TotalFound != 9 || got.OverallRating == nil || *got.OverallRating != 4.5 {
			t.Fatalf("unexpected event: %+v", got)
		}
		if msg.Header.Get(nats.MsgIdHdr) != "run-1" || msg.Header.Get("Product-Id") != "7" {
			t.Fatalf("headers = %v", msg.Header)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for message")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close of borrowed connection: %v", err)
	}
	if nc.IsClosed() {
		t.Fatalf("borrowed connection must stay open")
	}
}

func TestConnect(t *testing.T) {
	srv, _ := startTestNATS(t)
	p, err := natsad.Connect(srv.ClientURL(), "custom.subject")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := natsad.Connect("nats://127.0.0.1:1", ""); err == nil {
		t.Fatalf("expected dial error")
	}
}

func TestPublishRefresh_CanceledContext(t *testing.T) {
	_, nc := startTestNATS(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := natsad.NewPublisher(nc, "").PublishRefresh(ctx, domain.RefreshEvent{RunID: "x"}); err == nil {
		t.Fatalf("expected context error")
	}
}
