// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"apn-server/apn"
	"apn-server/commons"
	"apn-server/db"
	"apn-server/handlers"
	"apn-server/rabbitmq"
	"apn-server/routes"
	"apn-server/store"
	"os"
	"slices"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func newStore(cfg *commons.Config) apn.Store {
	switch cfg.StoreBackend {
	case commons.StoreDB:
		commons.Logger.Info("Using database store for reported APN data")
		return store.NewGormStore(db.DB, commons.Logger)
	case commons.StoreRedis:
		client, err := store.DialRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Timeout)
		if err != nil {
			commons.Logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		commons.Logger.Infof("Using Redis store at %s for reported APN data", cfg.Redis.Addr)
		return store.NewRedisStore(client, cfg.Redis.Prefix, cfg.Redis.Timeout, commons.Logger)
	default:
		commons.Logger.Info("Using in-memory store for reported APN data")
		return apn.NewMemoryStore()
	}
}

func main() {
	commons.LoadEnvFile()
	commons.InitLogger()

	cfg, err := commons.LoadConfig()
	if err != nil {
		commons.Logger.Fatalf("Invalid configuration: %v", err)
	}

	e := echo.New()
	e.HideBanner = true

	e.Logger.SetLevel(commons.Logger.Level())
	e.Logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logMsg := func(format string, args ...any) {
				switch {
				case v.Status >= 500:
					e.Logger.Errorf(format, args...)
				case v.Status >= 400:
					e.Logger.Warnf(format, args...)
				default:
					e.Logger.Infof(format, args...)
				}
			}
			logMsg("%s %s - %d - %.2fms - %s",
				v.Method,
				v.URI,
				v.Status,
				float64(v.Latency.Microseconds())/1000.0,
				v.RemoteIP,
			)
			return nil
		},
	}))
	debugMode := slices.Contains(os.Args[1:], "--debug")
	if debugMode {
		e.Logger.Warn("Debug mode is enabled.")
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
		commons.Logger.SetLevel(log.DEBUG)
	}

	e.Use(middleware.Recover())

	db.InitDB()
	if slices.Contains(os.Args[1:], "--migrate-db") {
		commons.Logger.Debug("--migrate-db flag detected, running migrations")
		db.MigrateDB()
	}

	commons.InitCatalog(cfg.CatalogOverride)

	reporter := apn.NewReporter(newStore(cfg),
		apn.WithEndpoint(cfg.Report.URL),
		apn.WithClient(apn.NewReportClient(cfg.Report.Timeout)),
		apn.WithLogger(commons.Logger),
		apn.WithObserver(func(o apn.Outcome) {
			commons.ReportsTotal.WithLabelValues(o.String()).Inc()
		}),
	)
	apnHandler := handlers.NewAPNHandler(apn.NewResolver(commons.APNCatalog), reporter)

	var publisher handlers.ReportPublisher
	if cfg.RabbitMQ.URL != "" {
		client, err := rabbitmq.NewClient(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			commons.Logger.Errorf("RabbitMQ unavailable, reports will not be published: %v", err)
		} else {
			defer client.Close()
			publisher = client
		}
	}
	reportHandler := handlers.NewReportHandler(db.DB, publisher)

	routes.RegisterRoutes(e, apnHandler, reportHandler)

	port := commons.GetEnv("PORT")
	if port == "" {
		port = ":8080"
	}
	if port[0] != ':' {
		port = ":" + port
	}
	e.Logger.Fatal(e.Start(port))
}
