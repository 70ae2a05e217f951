package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-service"

	"github.com/khunny7/yunsol-land/internal/commands"
	"github.com/khunny7/yunsol-land/internal/driver"
	"github.com/khunny7/yunsol-land/internal/editor"
	"github.com/khunny7/yunsol-land/internal/game"
	"github.com/khunny7/yunsol-land/internal/listener"
	"github.com/khunny7/yunsol-land/internal/messaging"
	"github.com/khunny7/yunsol-land/internal/world"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Embedded broker carrying room and player channels
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	publisher := messaging.NewEventPublisher(natsServer)

	// Seed the world
	rooms, err := world.Load(cfg.World.SeedPath)
	if err != nil {
		return nil, fmt.Errorf("loading world seed: %w", err)
	}
	w := game.NewWorld(publisher, rooms, cfg.World.startRoom())

	// Command pipeline and editor channel share the world
	cmdHandler := commands.NewHandler(w)
	editorHandler := editor.NewHandler(w)
	cm := listener.NewConnectionManager(w, cmdHandler, editorHandler, natsServer)

	// Create listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	// Tick loop
	var driverOpts []driver.WorldDriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	if cfg.AIEveryTicks > 0 {
		driverOpts = append(driverOpts, driver.WithAIEvery(cfg.AIEveryTicks))
	}
	worldDriver := driver.NewWorldDriver(w, driverOpts...)

	return service.WorkerList{
		"nats":      natsServer,
		"driver":    worldDriver,
		"listeners": &listeners,
	}, nil
}
