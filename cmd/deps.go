package cmd

import (
	"strings"

	"id-check/core/args"
	"id-check/core/config"
	"id-check/core/database"
	"id-check/core/source"
	"id-check/core/storage"

	"go.uber.org/zap"
)

// sourceLocation returns the location the filter will load, startup options first.
func sourceLocation(cfg *config.Config, argv []string) string {
	opts, err := args.Parse(argv)
	if err == nil && opts.Path != "" {
		return opts.Path
	}
	return cfg.IDCheck.Path
}

// openDeps connects only the backend the source location needs.
func openDeps(cfg *config.Config, location string, l *zap.Logger) (source.Deps, func(), error) {
	var deps source.Deps
	cleanup := func() {}

	switch {
	case strings.HasPrefix(location, source.SchemeObject):
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return deps, cleanup, err
		}
		deps.Storage = client
		l.Info("Storage client ready", zap.String("endpoint", cfg.Storage.Endpoint))

	case strings.HasPrefix(location, source.SchemeTable):
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return deps, cleanup, err
		}
		deps.DB = db
		cleanup = func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		l.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	return deps, cleanup, nil
}
