package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"fleet-agenda-api-server/config"
	"fleet-agenda-api-server/internal/api/routes"
	"fleet-agenda-api-server/internal/database"
	"fleet-agenda-api-server/internal/logger"
	"fleet-agenda-api-server/internal/socket"
	"fleet-agenda-api-server/internal/store"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		logrus.Fatalf("could not load config: %v", err)
	}
	logger.Setup(cfg.Log.File)

	client, err := store.Connect(cfg)
	if err != nil {
		logrus.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.DBName)
	st := store.New(db)

	if err := database.SeedDemoFleet(db); err != nil {
		logrus.Fatalf("could not seed demo fleet: %v", err)
	}

	hub := socket.NewHub()
	watcher := store.NewWatcher(st, hub)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	router := routes.SetupRouter(st, hub, watcher)
	logrus.Infof("starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logrus.Fatalf("failed to run server: %v", err)
	}
}
