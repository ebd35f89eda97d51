package webapi

//go:generate go tool mockgen -source=service.go -destination=mock_fetcher_test.go -package=webapi

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pinchbench/pinchboard/internal/api"
	"github.com/pinchbench/pinchboard/internal/cache"
	"github.com/pinchbench/pinchboard/internal/charts"
	"github.com/pinchbench/pinchboard/internal/models"
	"github.com/pinchbench/pinchboard/internal/ranking"
	"github.com/pinchbench/pinchboard/internal/reporting"
	"github.com/pinchbench/pinchboard/internal/transform"
	"github.com/pinchbench/pinchboard/internal/view"
)

// Scatter charts are laid out on a fixed canvas; clients scale the result.
const (
	ChartWidth  = 800
	ChartHeight = 500
)

// DefaultRunsLimit is the page size used for run listings and distributions.
const DefaultRunsLimit = 500

// Fetcher is the upstream API surface the service needs. *api.Client
// implements it.
type Fetcher interface {
	Leaderboard(ctx context.Context, version string) ([]api.LeaderboardEntry, error)
	BenchmarkVersions(ctx context.Context) (*api.VersionsResponse, error)
	Submission(ctx context.Context, id string) (*api.SubmissionDetail, error)
	Submissions(ctx context.Context, query api.SubmissionsQuery) (*api.SubmissionsResponse, error)
}

// ServiceConfig configures a LeaderboardService. Zero values select defaults.
type ServiceConfig struct {
	Cache     cache.Store
	BatchSize int
	RunsLimit int
	Logger    *slog.Logger
}

// LeaderboardService fetches upstream data and turns it into the ranked,
// chart-ready shapes served by the handlers and the CLI.
type LeaderboardService struct {
	fetcher   Fetcher
	details   api.DetailFetcher
	batchSize int
	runsLimit int
	logger    *slog.Logger
}

// NewLeaderboardService creates a service reading from f.
func NewLeaderboardService(f Fetcher, cfg ServiceConfig) *LeaderboardService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewFileCache("")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = api.DefaultBatchSize
	}
	if cfg.RunsLimit <= 0 {
		cfg.RunsLimit = DefaultRunsLimit
	}
	return &LeaderboardService{
		fetcher:   f,
		details:   &cachedFetcher{fetcher: f, store: cfg.Cache, logger: cfg.Logger},
		batchSize: cfg.BatchSize,
		runsLimit: cfg.RunsLimit,
		logger:    cfg.Logger,
	}
}

// cachedFetcher serves submission details from the cache and stores misses.
type cachedFetcher struct {
	fetcher Fetcher
	store   cache.Store
	logger  *slog.Logger
}

func (c *cachedFetcher) Submission(ctx context.Context, id string) (*api.SubmissionDetail, error) {
	if d, ok := c.store.Get(id); ok {
		c.logger.Debug("submission cache hit", "id", id)
		return d, nil
	}
	d, err := c.fetcher.Submission(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.store.Put(d); err != nil {
		c.logger.Warn("caching submission", "id", id, "error", err)
	}
	return d, nil
}

// Versions returns all benchmark versions and the ids of the current ones.
func (s *LeaderboardService) Versions(ctx context.Context) (*VersionsResponse, error) {
	resp, err := s.fetcher.BenchmarkVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching benchmark versions: %w", err)
	}
	versions := resp.Versions
	if versions == nil {
		versions = []models.BenchmarkVersion{}
	}
	current := models.CurrentVersionIDs(versions)
	if current == nil {
		current = []string{}
	}
	return &VersionsResponse{Versions: versions, Current: current}, nil
}

// Leaderboard fetches, transforms and ranks the leaderboard for version.
func (s *LeaderboardService) Leaderboard(ctx context.Context, version string) ([]models.LeaderboardEntry, error) {
	raw, err := s.fetcher.Leaderboard(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("fetching leaderboard: %w", err)
	}
	return ranking.CalculateRanks(transform.TransformLeaderboard(raw)), nil
}

// View applies the provider filter and view sort of st to the leaderboard.
func (s *LeaderboardService) View(ctx context.Context, st view.State) (*LeaderboardResponse, error) {
	entries, err := s.Leaderboard(ctx, st.Version)
	if err != nil {
		return nil, err
	}
	filtered := view.FilterByProvider(entries, st.Provider)

	resp := &LeaderboardResponse{
		Version:   st.Version,
		View:      string(st.View),
		Score:     st.Score,
		Provider:  st.Provider,
		Entries:   view.SortForView(filtered, st.View, st.Score),
		Providers: view.Providers(entries),
		TotalRuns: view.TotalRuns(filtered),
	}
	if resp.Entries == nil {
		resp.Entries = []models.LeaderboardEntry{}
	}
	if resp.Providers == nil {
		resp.Providers = []string{}
	}
	if t := view.LastUpdated(filtered); !t.IsZero() {
		resp.LastUpdated = &t
	}
	return resp, nil
}

// Submission returns one transformed submission, using the cache when set.
func (s *LeaderboardService) Submission(ctx context.Context, id string) (models.Submission, error) {
	d, err := s.details.Submission(ctx, id)
	if err != nil {
		return models.Submission{}, fmt.Errorf("fetching submission %s: %w", id, err)
	}
	return transform.TransformSubmission(*d), nil
}

// SubmissionDetail wraps Submission with the overall percentage and task
// notes rendered to HTML.
func (s *LeaderboardService) SubmissionDetail(ctx context.Context, id string) (*SubmissionResponse, error) {
	sub, err := s.Submission(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &SubmissionResponse{
		Submission: sub,
		Percentage: sub.Percentage(),
		NotesHTML:  map[string]string{},
	}
	for _, t := range sub.TaskResults {
		if t.Notes == nil || strings.TrimSpace(*t.Notes) == "" {
			continue
		}
		html, err := reporting.RenderNotes(*t.Notes)
		if err != nil {
			s.logger.Warn("rendering task notes", "task", t.TaskID, "error", err)
			continue
		}
		resp.NotesHTML[t.TaskID] = html
	}
	return resp, nil
}

// Runs lists individual submissions sorted by model and then score, together
// with the benchmark versions. Both are fetched concurrently.
func (s *LeaderboardService) Runs(ctx context.Context, q api.SubmissionsQuery) (*RunsResponse, error) {
	if q.Limit <= 0 {
		q.Limit = s.runsLimit
	}

	var (
		subs     *api.SubmissionsResponse
		versions *VersionsResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subs, err = s.fetcher.Submissions(gctx, q)
		if err != nil {
			return fmt.Errorf("fetching submissions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		versions, err = s.Versions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := view.SortRuns(transform.TransformSubmissionList(subs.Submissions))
	if items == nil {
		items = []models.SubmissionListItem{}
	}
	return &RunsResponse{
		Submissions:       items,
		Total:             subs.Total,
		Limit:             subs.Limit,
		Offset:            subs.Offset,
		HasMore:           subs.HasMore,
		BenchmarkVersion:  subs.BenchmarkVersion,
		BenchmarkVersions: versions.Versions,
		Current:           versions.Current,
	}, nil
}

// Scatter builds the performance-vs-axis chart for st and lays out labels
// for the visible points.
func (s *LeaderboardService) Scatter(ctx context.Context, st view.State, axis charts.Axis, hidden map[string]bool) (*ScatterResponse, error) {
	entries, err := s.Leaderboard(ctx, st.Version)
	if err != nil {
		return nil, err
	}
	sc := charts.BuildScatter(view.FilterByProvider(entries, st.Provider), st.Score, axis, hidden)

	resp := &ScatterResponse{
		Scatter:    sc,
		Labels:     []charts.LabelRect{},
		HiddenNote: sc.HiddenNote(),
		Width:      ChartWidth,
		Height:     ChartHeight,
	}
	if sc.Sufficient {
		resp.Labels = charts.LayoutLabels(sc.Points, charts.Projector{
			Width:   ChartWidth,
			Height:  ChartHeight,
			XDomain: sc.XDomain,
			YDomain: sc.YDomain,
		})
	}
	return resp, nil
}

// Heatmap fetches the best submission of every ranked model in batches and
// builds the model-by-task grid. Submissions that fail to load are left out.
func (s *LeaderboardService) Heatmap(ctx context.Context, st view.State, order charts.HeatmapSort) (*charts.Heatmap, error) {
	entries, err := s.Leaderboard(ctx, st.Version)
	if err != nil {
		return nil, err
	}
	entries = view.FilterByProvider(entries, st.Provider)

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.SubmissionID != "" {
			ids = append(ids, e.SubmissionID)
		}
	}

	details, err := api.FetchDetails(ctx, s.details, ids, s.batchSize, s.logger)
	if err != nil {
		return nil, fmt.Errorf("fetching submission details: %w", err)
	}

	rows := make([]charts.ModelTasks, 0, len(details))
	for _, e := range entries {
		d, ok := details[e.SubmissionID]
		if !ok {
			continue
		}
		rows = append(rows, charts.ModelTasksFromSubmission(e, transform.TransformSubmission(*d)))
	}

	h := charts.BuildHeatmap(rows, order)
	return &h, nil
}

// Distribution builds per-model score box plots from individual runs.
func (s *LeaderboardService) Distribution(ctx context.Context, st view.State, order charts.DistributionSort) (*DistributionResponse, error) {
	var (
		entries []models.LeaderboardEntry
		subs    *api.SubmissionsResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.Leaderboard(gctx, st.Version)
		return err
	})
	g.Go(func() error {
		var err error
		subs, err = s.fetcher.Submissions(gctx, api.SubmissionsQuery{Version: st.Version, Limit: s.runsLimit})
		if err != nil {
			return fmt.Errorf("fetching submissions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The provider filter narrows the best-score markers only; every model's
	// runs stay in the plot.
	items := transform.TransformSubmissionList(subs.Submissions)
	plots := charts.BuildDistribution(items, view.FilterByProvider(entries, st.Provider), order)
	resp := &DistributionResponse{
		Sort:       order,
		Plots:      plots,
		Domain:     charts.DistributionDomain(plots),
		Sufficient: len(plots) > 0,
	}
	if !resp.Sufficient {
		resp.EmptyReason = charts.DistributionEmptyReason
	}
	return resp, nil
}

// Radar computes radar metrics for every model matching the provider filter
// and the series for the requested models, capped at charts.MaxRadarModels.
func (s *LeaderboardService) Radar(ctx context.Context, st view.State, requested []string) (*RadarResponse, error) {
	entries, err := s.Leaderboard(ctx, st.Version)
	if err != nil {
		return nil, err
	}
	entries = view.FilterByProvider(entries, st.Provider)
	metrics := charts.ComputeRadar(entries, st.Score)

	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e.Model] = true
	}
	var names []string
	for _, m := range requested {
		if known[m] {
			names = append(names, m)
		}
	}
	selected := charts.SelectModels(names)
	if selected == nil {
		selected = []string{}
	}

	colors := make(map[string]string, len(selected))
	for i, m := range selected {
		colors[m] = charts.RadarColor(i)
	}
	if metrics == nil {
		metrics = []charts.RadarMetrics{}
	}
	return &RadarResponse{
		Axes:     charts.RadarAxes,
		Selected: selected,
		Colors:   colors,
		Series:   charts.RadarSeries(metrics, selected),
		Metrics:  metrics,
	}, nil
}
