package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"hootroost/app/config"
	"hootroost/app/repositories"
)

const (
	defaultBadgerPath = "data/badger"
	connectTimeout    = 10 * time.Second
)

// openStore opens the store selected by cfg.Store.Driver.
func openStore(ctx context.Context, cfg *config.Config) (repositories.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverBadger:
		store, err := repositories.NewBadgerStore(cfg.Store.BadgerPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger store at %s: %w", cfg.Store.BadgerPath, err)
		}
		log.Printf("Opened badger store at %s", cfg.Store.BadgerPath)
		return store, nil
	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		store, err := repositories.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to create mongo indexes: %w", err)
		}
		log.Printf("Connected to mongo database %s", cfg.Store.MongoDatabase)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
