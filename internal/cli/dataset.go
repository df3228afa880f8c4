package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Barritosaurus/schedsim/internal/dataset"
	"github.com/Barritosaurus/schedsim/internal/process"
	"github.com/Barritosaurus/schedsim/internal/scheduler"
	"github.com/Barritosaurus/schedsim/internal/store"
)

// loadDataset reads path under the configured capacity. Records past the
// capacity are dropped with a warning.
func loadDataset(path, format string) (*process.Set, error) {
	f, err := dataset.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	res, err := dataset.LoadFile(path, dataset.Options{Format: f, MaxProcesses: cfg.MaxProcesses})
	if err != nil {
		return nil, err
	}
	if err := res.Overflow(); err != nil {
		logger.Warn("dataset truncated",
			"path", path,
			"rejected", len(res.Rejected),
			"max_processes", cfg.MaxProcesses,
			"error", err,
		)
	}
	logger.Debug("dataset loaded", "path", path, "processes", res.Set.Len())
	return res.Set, nil
}

// resolvePolicies parses names, falling back to the configured policies.
func resolvePolicies(names []string) ([]scheduler.Policy, error) {
	if len(names) == 0 {
		return cfg.SchedulingPolicies()
	}
	return scheduler.ParsePolicies(names)
}

// runOptions layers an explicit quantum over the configured one.
func runOptions(quantum *int64) []scheduler.Option {
	opts := cfg.SchedulerOptions()
	if quantum != nil {
		opts = append(opts, scheduler.WithQuantum(*quantum))
	}
	return append(opts, scheduler.WithLogger(logger))
}

// openStore opens and migrates the configured results database.
func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	if cfg.Store.Path == "" {
		return nil, errors.New("no results database configured: set store.path or pass --db")
	}
	st, err := store.NewSQLiteStore(cfg.Store.Path, logger)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return st, nil
}
