package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Deoshabh/weBazaar-sub000/internal/cart"
	"github.com/Deoshabh/weBazaar-sub000/internal/catalog"
	"github.com/Deoshabh/weBazaar-sub000/internal/config"
	"github.com/Deoshabh/weBazaar-sub000/internal/coupon"
	"github.com/Deoshabh/weBazaar-sub000/internal/httpx"
	kafkax "github.com/Deoshabh/weBazaar-sub000/internal/kafka"
	"github.com/Deoshabh/weBazaar-sub000/internal/notify"
	"github.com/Deoshabh/weBazaar-sub000/internal/orders"
	"github.com/Deoshabh/weBazaar-sub000/internal/payments"
	"github.com/Deoshabh/weBazaar-sub000/internal/postgres"
	"github.com/Deoshabh/weBazaar-sub000/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	cache := &redisx.Cache{R: rdb}

	// Kafka producer for order lifecycle events
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 1024)
	prod.Start(ctx)

	// Services
	catalogRepo := &catalog.Repo{DB: db}
	couponSvc := &coupon.Service{Store: &coupon.Repo{DB: db}}
	cartSvc := &cart.Service{Store: &cart.Repo{DB: db}, Catalog: catalogRepo}
	orderSvc := &orders.Service{
		Store:   &orders.Repo{DB: db},
		Coupons: couponSvc,
		Cache:   cache,
		Events:  &orders.EventEmitter{Producer: prod, Service: cfg.ServiceName},
		Gateway: payments.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL),
		Pricing: orders.Pricing{
			FreeShippingThresholdCents: cfg.FreeShippingThresholdCents,
			FlatShippingCents:          cfg.ShippingFlatCents,
		},
	}
	feed := &notify.Service{Redis: rdb}

	// Router
	router := httpx.NewRouter()
	(&httpx.ProductsHandler{Repo: catalogRepo, Cache: cache}).Register(router)
	router.Group(func(r chi.Router) {
		r.Use(httpx.Identity)
		(&httpx.OrdersHandler{Service: orderSvc, RazorpayKeyID: cfg.RazorpayKeyID}).Register(r)
		(&httpx.CartHandler{Service: cartSvc}).Register(r)
		(&httpx.CouponHandler{Service: couponSvc}).Register(r)
		r.Group(func(ar chi.Router) {
			ar.Use(httpx.RequireAdmin)
			(&httpx.AdminHandler{Orders: orderSvc, Feed: feed}).Register(ar)
		})
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()
	cancel()
	prod.WaitClosed()
}
