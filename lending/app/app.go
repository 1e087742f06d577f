package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/unilib/lending-service/lending/config"
	"github.com/unilib/lending-service/lending/internal/engine"
	"github.com/unilib/lending-service/lending/internal/handler"
	"github.com/unilib/lending-service/lending/internal/server"
	"github.com/unilib/lending-service/lending/internal/service"
	"github.com/unilib/lending-service/pkg/kafka"
	"github.com/unilib/lending-service/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "lending")

	eng := engine.New(log)

	enq := service.NewNopEnqueuer()
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		enq = service.NewEnqueuer(producer)
	}

	svc := service.NewService(eng, enq, log)
	h := handler.New(svc, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return srv.Run()
	})

	if cfg.Kafka.Enabled() {
		cg, err := kafka.NewConsumer(cfg.Kafka, kafka.NotifierConsumerGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
		g.Go(func() error {
			return kafka.Consume(ctx, cg, handler.NewNotifier(log), kafka.LendingTopic)
		})
	}

	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case termSig := <-sig:
			log.Debug("Graceful shutdown", zap.Any("signal", termSig))
		case <-ctx.Done():
		}

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
