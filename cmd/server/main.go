package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/urfave/cli/v2"

	"sales-service/internal/config"
	httpapi "sales-service/internal/controllers/http"
	"sales-service/internal/infra/cache"
	infra "sales-service/internal/infra/mysql"
	"sales-service/internal/infra/rabbitmq"
	"sales-service/internal/platform/logger"
	mysqlrepo "sales-service/internal/repository/mysql"
	"sales-service/internal/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
	app := &cli.App{
		Name:   "sales-service",
		Usage:  "quote and order persistence service",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or roll back the schema migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "direction",
						Value: string(infra.Up),
						Usage: "up or down",
					},
				},
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("sales-service: %v", err)
	}
}

func bootstrap() (config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logg, nil
}

func serve(c *cli.Context) error {
	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()

	db, err := infra.Open(cfg.MySQL, logg)
	if err != nil {
		return err
	}

	customers := services.NewCustomerService(mysqlrepo.NewCustomerRepository(db, logg), logg)
	quotes := services.NewQuoteService(mysqlrepo.NewQuoteRepository(db, logg), nil, logg)
	orders := services.NewOrderService(mysqlrepo.NewOrderRepository(db, logg), nil, logg)

	if rc, client, err := cache.NewRedisCache(cfg.RedisAddr, "sales", logg); err != nil {
		logg.Warn("redis unavailable, running without cache", "addr", cfg.RedisAddr, "error", err)
	} else {
		defer client.Close()
		quotes.SetCache(rc, cfg.CacheTTL)
		orders.SetCache(rc, cfg.CacheTTL)
	}

	if pub, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, logg); err != nil {
		logg.Warn("rabbitmq unavailable, events disabled", "error", err)
	} else {
		defer pub.Close()
		quotes.SetPublisher(pub)
		orders.SetPublisher(pub)
	}

	if cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Handler:     httpapi.NewHandler(customers, quotes, orders, logg),
		Log:         logg,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logg.Info("sales service listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("http shutdown failed", "error", err)
	}
	quotes.Wait()
	orders.Wait()
	return nil
}

func migrate(c *cli.Context) error {
	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()

	dir := infra.Direction(c.String("direction"))
	if dir != infra.Up && dir != infra.Down {
		return fmt.Errorf("unknown direction %q", dir)
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN())
	if err != nil {
		return fmt.Errorf("open mysql: %w", err)
	}
	defer db.Close()

	return infra.Migrate(db, dir, logg)
}
