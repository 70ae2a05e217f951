package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

const defaultStartupTimeout = 10 * time.Second

// NatsServer embeds a NATS broker in-process. Room channels and per-player
// channels are plain subjects on it. The broker never leaves the process:
// the only client is the server's own loopback connection, shared by every
// session and the world's publisher.
type NatsServer struct {
	host           string
	port           int
	startupTimeout time.Duration

	ns   *server.Server
	conn *nats.Conn
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	s := &NatsServer{
		host:           "127.0.0.1",
		startupTimeout: defaultStartupTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	ns, err := server.NewServer(&server.Options{
		Host:   s.host,
		Port:   s.port,
		NoSigs: true, // signal handling belongs to the application
	})
	if err != nil {
		return nil, fmt.Errorf("configuring broker: %w", err)
	}
	s.ns = ns

	return s, nil
}

// Start runs the broker and its loopback client until ctx is canceled.
func (n *NatsServer) Start(ctx context.Context) error {
	n.ns.Start()
	defer n.ns.WaitForShutdown()
	defer n.ns.Shutdown()

	if !n.ns.ReadyForConnections(n.startupTimeout) {
		return fmt.Errorf("broker not ready after %s", n.startupTimeout)
	}

	conn, err := nats.Connect(n.ns.ClientURL())
	if err != nil {
		return fmt.Errorf("connecting loopback client: %w", err)
	}
	n.conn = conn
	defer conn.Close()

	slog.InfoContext(ctx, "broker listening", "addr", n.ns.Addr())

	<-ctx.Done()
	return nil
}

// Subscribe registers a handler for a subject and returns the function that
// drops the subscription. Sessions hold one of these per joined channel.
func (n *NatsServer) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	if n.conn == nil {
		return nil, fmt.Errorf("broker not started")
	}

	sub, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}

	return func() {
		if err := sub.Unsubscribe(); err != nil {
			slog.Debug("unsubscribe failed", "subject", subject, "error", err)
		}
	}, nil
}

// Publish sends raw bytes to a subject.
func (n *NatsServer) Publish(subject string, data []byte) error {
	if n.conn == nil {
		return fmt.Errorf("broker not started")
	}
	return n.conn.Publish(subject, data)
}
