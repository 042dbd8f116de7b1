// launching the server, redis, rabbit, supabase client
package appServer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"

	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/firufinds/match-notifier/config"
	"github.com/firufinds/match-notifier/internal/database"
	"github.com/firufinds/match-notifier/internal/push"
	"github.com/firufinds/match-notifier/internal/rabbitMQ"
	"github.com/firufinds/match-notifier/internal/service"
	"github.com/firufinds/match-notifier/internal/transport"
	"github.com/go-redis/redis/v8"

	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))

	// The platform client is injected, not a module-level global; without
	// the endpoint and key there is nothing this service can do.
	if cfg.Supabase.URL == "" || cfg.Supabase.Key == "" {
		logrus.Fatal("supabase url and key are required (config or SUPABASE_URL/SUPABASE_KEY)")
	}

	supabaseRepo := database.NewSupabaseRepository(cfg.Supabase.URL, cfg.Supabase.Key, cfg.Supabase.Timeout)
	expoClient := push.NewExpoClient(cfg.Expo.URL, cfg.Expo.Timeout)

	var dedupeCache database.DedupeCache
	if cfg.Dedupe.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxRetries:   cfg.Redis.MaxRetries,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolTimeout:  cfg.Redis.PoolTimeout,
			IdleTimeout:  cfg.Redis.IdleTimeout,
		})
		dedupeCache = database.NewRedisDedupeCache(redisClient, cfg.Dedupe.TTL)
	}

	coincidenceUseCase := service.NewCoincidenceUseCase(supabaseRepo, supabaseRepo, dedupeCache, expoClient, cfg.Expo.PropagateErrors)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional queue inbound: same events, same use case, retry owned by
	// the broker. The HTTP webhook stays the primary path.
	if cfg.Rabbit.Enabled {
		var rabbitMQURL string
		if cfg.Rabbit.URL != "" {
			rabbitMQURL = cfg.Rabbit.URL
		} else {
			rabbitMQURL = fmt.Sprintf("amqp://%s:%s@%s:%d/",
				cfg.Rabbit.Username,
				cfg.Rabbit.Password,
				cfg.Rabbit.Host,
				cfg.Rabbit.Port)
		}

		queue, err := rabbitMQ.NewRabbitMQ(rabbitMQ.RabbitMQConfig{
			URL:          rabbitMQURL,
			QueueName:    cfg.Rabbit.QueueName,
			ExchangeName: cfg.Rabbit.ExchangeName,
			RetryCount:   3,
		})
		if err != nil {
			logrus.Fatalf("Failed to connect to RabbitMQ: %s", err.Error())
		}
		defer queue.Close()

		if err := queue.Consume(ctx, rabbitMQ.CoincidenceHandler(ctx, coincidenceUseCase)); err != nil {
			logrus.Fatalf("Failed to start coincidence consumer: %s", err.Error())
		}
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(coincidenceUseCase)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
