// Package session ties a tracker store to its gateway: it loads once,
// and after every mutation saves the snapshot and refreshes metrics.
package session

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/dayrate/internal/logging"
	"github.com/nibzard/dayrate/internal/metrics"
	"github.com/nibzard/dayrate/internal/storage"
	"github.com/nibzard/dayrate/internal/tracker"
)

// Options configures a Session.
type Options struct {
	// DefaultWorkspaces are seeded when the loaded data has none.
	DefaultWorkspaces []string
	// MetricsFile, when set, receives a Prometheus textfile on every commit.
	MetricsFile string
	Logger      *log.Logger
	StoreOpts   []tracker.Option
}

// Session is one open data file.
type Session struct {
	Store *tracker.Store

	gateway     storage.Gateway
	exporter    *metrics.Exporter
	metricsFile string
	logger      *log.Logger
	seeded      bool
}

// Open loads data through gw and builds the store.
func Open(gw storage.Gateway, opts Options) *Session {
	logger := logging.OrDiscard(opts.Logger)
	store := tracker.NewStore(gw.Load(), opts.StoreOpts...)
	s := &Session{
		Store:       store,
		gateway:     gw,
		metricsFile: opts.MetricsFile,
		logger:      logger,
	}
	if store.EnsureWorkspaces(opts.DefaultWorkspaces) {
		s.seeded = true
		logger.Info("seeded default workspaces", "workspaces", store.Workspaces())
	}
	if s.metricsFile != "" {
		s.exporter = metrics.NewExporter()
	}
	return s
}

// Seeded reports whether Open created the default workspaces.
func (s *Session) Seeded() bool {
	return s.seeded
}

// Commit saves the store. The error wraps tracker.ErrPersistence when the
// gateway fails. A metrics write failure is logged but not returned.
func (s *Session) Commit() error {
	snapshot := s.Store.Snapshot()
	if err := s.gateway.Save(snapshot); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	s.seeded = false
	if s.exporter == nil {
		return nil
	}
	if err := s.ExportMetrics(s.metricsFile, s.Store.Now()); err != nil {
		s.logger.Warn("metrics export failed", "path", s.metricsFile, "err", err)
	}
	return nil
}

// ExportMetrics writes the aggregates as of date to path.
func (s *Session) ExportMetrics(path string, date time.Time) error {
	exporter := s.exporter
	if exporter == nil {
		exporter = metrics.NewExporter()
	}
	exporter.Observe(s.Store.Snapshot(), date)
	if err := exporter.WriteTextfile(path); err != nil {
		return err
	}
	s.logger.Debug("metrics exported", "path", path)
	return nil
}
