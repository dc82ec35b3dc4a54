package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Deoshabh/weBazaar-sub000/internal/config"
	kafkax "github.com/Deoshabh/weBazaar-sub000/internal/kafka"
	"github.com/Deoshabh/weBazaar-sub000/internal/orders"
	"github.com/Deoshabh/weBazaar-sub000/internal/postgres"
	"github.com/Deoshabh/weBazaar-sub000/internal/reconcile"
	"github.com/Deoshabh/weBazaar-sub000/internal/redisx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 256)
	prod.Start(ctx)

	sweeper := &reconcile.Sweeper{
		Store:    &orders.Repo{DB: db},
		Cache:    &redisx.Cache{R: rdb},
		Events:   &orders.EventEmitter{Producer: prod, Service: cfg.ServiceName + "-reconciler"},
		Timeout:  cfg.AbandonAfter,
		Interval: cfg.SweepInterval,
	}

	go func() {
		log.Printf("reconciler started: timeout=%s interval=%s", cfg.AbandonAfter, cfg.SweepInterval)
		sweeper.Run(ctx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down reconciler...")
	prod.Close()
	cancel()
	prod.WaitClosed()
}
