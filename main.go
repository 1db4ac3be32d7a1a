package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"masterhand/internal/config"
	"masterhand/internal/logger"
	"masterhand/internal/render"
	"masterhand/internal/sim"
	"masterhand/internal/wire"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config; defaults apply when empty")
	renderOut := flag.Bool("render-stdout", false, "stream debug render frames to stdout as JSON lines")
	flag.Parse()

	log, err := logger.NewFromEnv()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal("configuration rejected", logger.Err(err))
		}
	}

	// The datagram socket is the engine's only input; without it there is
	// nothing to run.
	conn, err := net.ListenPacket("udp", cfg.Net.ListenAddr)
	if err != nil {
		log.Fatal("bind datagram socket", logger.String("addr", cfg.Net.ListenAddr), logger.Err(err))
	}
	receiver := wire.NewReceiver(conn, cfg.Net.MaxDatagram)
	defer func() { _ = receiver.Close() }()

	var sink render.Sink = render.NullSink{}
	if *renderOut {
		sink = render.NewStreamSink(os.Stdout)
	}

	engine, err := sim.New(cfg, log, receiver, sink)
	if err != nil {
		log.Fatal("build engine", logger.Err(err))
	}

	log.Info("listening for hand packets", logger.String("addr", cfg.Net.ListenAddr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := engine.Run(ctx); err != nil {
		log.Error("engine exited", logger.Err(err))
	}
}
