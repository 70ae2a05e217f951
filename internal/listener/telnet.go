package listener

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
	"github.com/pixil98/go-log"
	"github.com/sirupsen/logrus"

	"github.com/khunny7/yunsol-land/internal/display"
)

// TelnetListener serves a plain-text rendition of the event protocol: the
// login event becomes a name prompt, every typed line becomes a command, and
// outbound events render through the display package. It shares the command
// pipeline and world with the websocket listener.
type TelnetListener struct {
	port     uint16
	cm       *ConnectionManager
	renderer *display.Renderer
}

func NewTelnetListener(port uint16, cm *ConnectionManager) *TelnetListener {
	renderer := display.NewRenderer(func(playerID string) string {
		if p := cm.World().Player(playerID); p != nil {
			return p.Name
		}
		return "Someone"
	})

	return &TelnetListener{
		port:     port,
		cm:       cm,
		renderer: renderer,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	// Create a cancelable context for all connections
	connCtx, cancelConns := context.WithCancel(context.Background())

	handler := &telnetHandler{
		listener:    l,
		logger:      log.GetLogger(ctx),
		connCtx:     connCtx,
		cancelConns: cancelConns,
	}

	svr := telnet.NewServer(fmt.Sprintf(":%d", l.port), handler)

	// done signals that Start is returning (either success or failure)
	done := make(chan struct{})
	defer close(done)

	// When parent context is canceled, stop accepting and cancel all connections
	go func() {
		select {
		case <-ctx.Done():
			svr.Stop()
			handler.Stop()
		case <-done:
			// Start returned (likely with error) - nothing to stop
		}
	}()

	err := svr.ListenAndServe()
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("serving telnet on port %d: %w", l.port, err)
	}

	return nil
}

type telnetHandler struct {
	wg          sync.WaitGroup
	listener    *TelnetListener
	logger      logrus.FieldLogger
	connCtx     context.Context
	cancelConns context.CancelFunc
}

func (h *telnetHandler) HandleTelnet(conn *telnet.Connection) {
	h.wg.Add(1)
	defer h.wg.Done()
	defer func() {
		if err := conn.Close(); err != nil {
			h.logger.Errorf("closing telnet connection: %s", err)
		}
	}()

	ctx := log.SetLogger(h.connCtx, h.logger)

	if err := h.listener.serve(ctx, conn); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warnf("telnet session: %s", err)
	}
}

func (h *telnetHandler) Stop() {
	h.cancelConns()
	h.wg.Wait()
}

func (l *TelnetListener) serve(ctx context.Context, conn io.ReadWriter) error {
	rw := newCRLFReadWriter(conn)
	br := bufio.NewReader(rw)

	name, err := prompt(br, rw, "What is your name? ",
		withValidator(func(s string) (bool, string) {
			if s == "" {
				return false, "A name is required.\n"
			}
			return true, ""
		}),
		withMaxTries(3),
	)
	if err != nil {
		return err
	}

	session := l.cm.NewSession()
	defer session.Close()

	player, err := session.Login(ctx, name)
	if err != nil {
		return fmt.Errorf("logging in %q: %w", name, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Writer goroutine: renders outbound envelopes as text.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case data := <-session.Out():
				view := display.View{PlayerID: player.ID}
				if p := l.cm.World().Player(player.ID); p != nil {
					view.RoomID = p.RoomID
				}
				text, ok := l.renderer.Render(data, view)
				if !ok {
					continue
				}
				if _, err := rw.Write([]byte("\n" + text + "\n> ")); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	// Reader loop: each line is one command, processed in arrival order.
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			if _, err := rw.Write([]byte("> ")); err != nil {
				return err
			}
			continue
		}

		if err := session.Command(ctx, line); err != nil {
			return fmt.Errorf("command execution failed: %w", err)
		}
	}
}
