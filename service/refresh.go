package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"weatherdash.app/cache"
	"weatherdash.app/errors"
	"weatherdash.app/metrics"
	"weatherdash.app/models"
	"weatherdash.app/providers"
)

// ChartRenderer renders chart artifacts for a refresh cycle. The returned
// mapping may omit charts that failed to render; only a total failure (such
// as an unwritable output directory) is reported as an error.
type ChartRenderer interface {
	Render(observations []models.NormalizedObservation, insights *models.Insights) (map[string]string, error)
}

// ObservationExporter persists the observation table as a side-channel export.
type ObservationExporter interface {
	WriteObservations(observations []models.NormalizedObservation) error
}

// ObservationArchiver appends observations to a persistent archive.
type ObservationArchiver interface {
	Archive(ctx context.Context, observations []models.NormalizedObservation, collectedAt time.Time) error
}

// RefreshService runs the fetch -> normalize -> summarize -> publish pipeline.
// At most one refresh executes at a time: direct calls queue behind an
// in-flight run, asynchronous triggers coalesce with it.
type RefreshService struct {
	registry    []models.City
	fetcher     providers.WeatherFetcher
	snapshots   cache.SnapshotCache
	renderer    ChartRenderer
	exporter    ObservationExporter
	archiver    ObservationArchiver
	metrics     *metrics.RefreshMetrics
	pacingDelay time.Duration

	mu sync.Mutex
}

// RefreshServiceOptions bundles the collaborators a RefreshService needs.
// Renderer, Exporter and Archiver are optional; a nil collaborator simply
// skips that side effect.
type RefreshServiceOptions struct {
	Registry    []models.City
	Fetcher     providers.WeatherFetcher
	Snapshots   cache.SnapshotCache
	Renderer    ChartRenderer
	Exporter    ObservationExporter
	Archiver    ObservationArchiver
	Metrics     *metrics.RefreshMetrics
	PacingDelay time.Duration
}

// NewRefreshService creates a new refresh orchestrator
func NewRefreshService(opts RefreshServiceOptions) *RefreshService {
	return &RefreshService{
		registry:    opts.Registry,
		fetcher:     opts.Fetcher,
		snapshots:   opts.Snapshots,
		renderer:    opts.Renderer,
		exporter:    opts.Exporter,
		archiver:    opts.Archiver,
		metrics:     opts.Metrics,
		pacingDelay: opts.PacingDelay,
	}
}

// Refresh runs one complete refresh cycle, queuing behind any in-flight run.
// On total collection failure the previous snapshot stays authoritative and
// an error is returned.
func (s *RefreshService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(ctx)
}

// TriggerAsync starts a refresh in the background and returns immediately.
// If a refresh is already in flight the trigger is coalesced into it.
func (s *RefreshService) TriggerAsync() {
	go func() {
		if !s.mu.TryLock() {
			slog.Info("Refresh already in flight, trigger coalesced")
			return
		}
		defer s.mu.Unlock()

		if err := s.run(context.Background()); err != nil {
			slog.Error("Background refresh failed", "error", err)
		}
	}()
}

func (s *RefreshService) run(ctx context.Context) error {
	runID := uuid.New().String()
	start := time.Now()
	log := slog.With("run_id", runID)

	log.Info("Starting weather data refresh", "cities", len(s.registry))

	observations := s.collect(ctx, log)
	normalized := Normalize(observations)
	if len(normalized) == 0 {
		s.metrics.RecordRefreshFailure()
		log.Error("No usable weather data collected, keeping previous snapshot")
		return errors.NewNoDataError("no weather data collected for any city")
	}

	insights := Summarize(normalized)

	var charts map[string]string
	if s.renderer != nil {
		rendered, err := s.renderer.Render(normalized, insights)
		if err != nil {
			// Charts are an artifact, not the data; publish without them.
			log.Error("Chart rendering failed", "error", err)
		}
		charts = rendered
	}

	snapshot := &models.Snapshot{
		Observations: normalized,
		Insights:     insights,
		Charts:       charts,
		GeneratedAt:  time.Now(),
	}

	if err := s.snapshots.Publish(snapshot); err != nil {
		s.metrics.RecordRefreshFailure()
		return errors.NewCacheError("publish snapshot", err)
	}

	s.export(ctx, log, normalized, snapshot.GeneratedAt)

	s.metrics.RecordRefreshSuccess(time.Since(start), len(normalized))
	log.Info("Weather data refresh complete",
		"cities", len(normalized),
		"charts", len(charts),
		"duration", time.Since(start))
	return nil
}

// collect fetches every registry city sequentially with a courtesy pause
// between calls. Failed cities are logged and dropped for this cycle.
func (s *RefreshService) collect(ctx context.Context, log *slog.Logger) []models.Observation {
	observations := make([]models.Observation, 0, len(s.registry))

	for i, city := range s.registry {
		if i > 0 && s.pacingDelay > 0 {
			time.Sleep(s.pacingDelay)
		}

		obs, err := s.fetcher.Fetch(ctx, city)
		if err != nil {
			s.metrics.RecordFetchFailure(city.Name)
			log.Warn("Fetch failed, dropping city for this cycle", "city", city.Name, "error", err)
			continue
		}
		observations = append(observations, *obs)
	}

	return observations
}

func (s *RefreshService) export(ctx context.Context, log *slog.Logger, observations []models.NormalizedObservation, collectedAt time.Time) {
	if s.exporter != nil {
		if err := s.exporter.WriteObservations(observations); err != nil {
			log.Error("CSV export failed", "error", err)
		}
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, observations, collectedAt); err != nil {
			log.Error("Observation archive write failed", "error", err)
		}
	}
}
