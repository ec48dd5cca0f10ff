package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/vxxious/aunty-burger/internal/cartstore"
	"github.com/vxxious/aunty-burger/internal/catalog"
	"github.com/vxxious/aunty-burger/internal/checkout"
	"github.com/vxxious/aunty-burger/internal/web"
)

const (
	serviceName = "aunty-burger-frontend"
	defaultPort = "8080"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.Level = logrus.DebugLevel
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
}

func initTracerProvider(ctx context.Context, endpoint string) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String("v1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp, nil
}

func main() {
	ctx := context.Background()

	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		tp, err := initTracerProvider(ctx, endpoint)
		if err != nil {
			log.Fatalf("failed to initialize tracer provider: %v", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down tracer provider: %v", err)
			}
		}()
	}

	var cat *catalog.Catalog
	var err error
	if path := os.Getenv("MENU_DATA_FILE"); path != "" {
		cat, err = catalog.LoadFile(path)
	} else {
		cat, err = catalog.Load()
	}
	if err != nil {
		log.Fatalf("failed to load menu data: %v", err)
	}
	log.Infof("loaded menu: %d items in %d categories", len(cat.Items()), len(cat.Categories()))

	var store cartstore.Store = cartstore.NewLocalStore()
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		rs := cartstore.NewRedisStore(redisAddr)
		if !rs.Ping(ctx) {
			// Best-effort mirror: warn and serve with in-memory carts.
			log.Warnf("redis at %s unreachable, carts will not survive restarts", redisAddr)
		}
		store = rs
		log.Infof("mirroring carts to redis at %s", redisAddr)
	}

	number := cat.Business().WhatsApp
	if v, ok := os.LookupEnv("WHATSAPP_NUMBER"); ok {
		number = v
	}

	srv := web.NewServer(cat, cartstore.NewManager(store, log), checkout.NewService(number), log)

	port := defaultPort
	if v, ok := os.LookupEnv("PORT"); ok {
		port = v
	}
	httpSrv := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(serviceName),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("storefront listening on :%s", port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Infof("received %v, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}
