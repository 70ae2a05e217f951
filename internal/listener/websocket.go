package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/khunny7/yunsol-land/internal/game"
)

const writeTimeout = 5 * time.Second

// WebsocketListener serves the JSON event protocol over websocket frames,
// plus a plain health endpoint for process checks.
type WebsocketListener struct {
	port uint16
	cm   *ConnectionManager

	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, cm *ConnectionManager) *WebsocketListener {
	return &WebsocketListener{
		port: port,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // editor clients connect cross-origin
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", l.handleHealth)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		l.handleConn(ctx, w, r)
	})

	svr := &http.Server{
		Addr:    fmt.Sprintf(":%d", l.port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svr.Shutdown(shutdownCtx); err != nil {
			slog.Warn("websocket server shutdown", "error", err)
		}
	}()

	slog.InfoContext(ctx, "listening for websocket", "port", l.port)

	err := svr.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serving websocket on port %d: %w", l.port, err)
}

func (l *WebsocketListener) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (l *WebsocketListener) handleConn(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	session := l.cm.NewSession()
	defer session.Close()

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Writer goroutine: drains the session's outbound channel.
	go func() {
		for {
			select {
			case <-connCtx.Done():
				return
			case data := <-session.Out():
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	// Reader loop: one event at a time, in arrival order.
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		ev, err := game.DecodeEvent(msg)
		if err != nil {
			slog.DebugContext(ctx, "undecodable frame dropped", "conn", session.ID())
			continue
		}

		if err := session.HandleEvent(connCtx, ev); err != nil {
			slog.WarnContext(ctx, "session event failed", "conn", session.ID(), "event", ev.Name, "error", err)
			return
		}
	}
}
