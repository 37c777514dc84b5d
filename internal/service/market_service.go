package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/Market-Data-Simulator/internal/apperrors"
	"github.com/ndewijer/Market-Data-Simulator/internal/marketdata"
	"github.com/ndewijer/Market-Data-Simulator/internal/metrics"
	"github.com/ndewijer/Market-Data-Simulator/internal/model"
	"github.com/ndewijer/Market-Data-Simulator/internal/validation"
)

// DefaultLatency is the simulated network delay applied to every refresh.
const DefaultLatency = 500 * time.Millisecond

// IntervalOptions are the update intervals offered to clients, in milliseconds.
var IntervalOptions = []int64{2000, 5000, 10000, 30000, 60000, 300000}

// Publisher receives every completed market generation.
type Publisher interface {
	Publish(snapshot model.MarketSnapshot)
}

// Controls reports the state of the update loop that drives the service.
type Controls interface {
	AutoUpdateEnabled() bool
	Interval() time.Duration
	State() string
}

// MarketDataOptions holds the optional collaborators of a MarketDataService.
// Zero values select the real clock, a time-seeded random source, a no-op logger
// and no metrics.
type MarketDataOptions struct {
	Rand    marketdata.Rand
	Clock   marketdata.Clock
	Latency time.Duration
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// MarketDataService owns the current generation of simulated market data.
// A generation (stocks, indices and summary) is always replaced as a whole, so
// readers never observe stocks from one tick next to a summary from another.
type MarketDataService struct {
	rnd     marketdata.Rand
	clock   marketdata.Clock
	latency time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics

	// ctx bounds the shared tick work; callers only bound their own wait.
	ctx     context.Context
	cancel  context.CancelFunc
	group   singleflight.Group
	loading atomic.Bool

	mu           sync.RWMutex
	stocks       []model.StockRecord
	indices      []model.IndexRecord
	summary      model.PortfolioSummary
	lastUpdated  time.Time
	generationID string
	sequence     uint64
	publisher    Publisher
	controls     Controls
}

// NewMarketDataService creates a MarketDataService seeded with the given generation.
// The seed is validated and rejected if any record is malformed.
func NewMarketDataService(seed marketdata.Seed, opts MarketDataOptions) (*MarketDataService, error) {
	if err := validation.ValidateStocks(seed.Stocks); err != nil {
		return nil, fmt.Errorf("invalid seed stocks: %w", err)
	}
	if err := validation.ValidateIndices(seed.Indices); err != nil {
		return nil, fmt.Errorf("invalid seed indices: %w", err)
	}
	if err := validation.ValidateSummary(seed.Summary); err != nil {
		return nil, fmt.Errorf("invalid seed summary: %w", err)
	}

	if opts.Rand == nil {
		opts.Rand = marketdata.NewRand(0)
	}
	if opts.Clock == nil {
		opts.Clock = marketdata.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Latency < 0 {
		opts.Latency = 0
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &MarketDataService{
		ctx:          ctx,
		cancel:       cancel,
		rnd:          opts.Rand,
		clock:        opts.Clock,
		latency:      opts.Latency,
		logger:       opts.Logger.Named("market"),
		metrics:      opts.Metrics,
		stocks:       seed.Stocks,
		indices:      seed.Indices,
		summary:      seed.Summary,
		lastUpdated:  seed.Summary.LastUpdated,
		generationID: uuid.NewString(),
	}, nil
}

// SetPublisher registers the receiver of completed generations.
func (s *MarketDataService) SetPublisher(p Publisher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publisher = p
}

// SetControls registers the update loop whose settings are reported in snapshots.
func (s *MarketDataService) SetControls(c Controls) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls = c
}

// Close aborts a tick in flight. No further tick can complete afterwards.
func (s *MarketDataService) Close() {
	s.cancel()
}

// Refresh runs one manual tick and returns the resulting snapshot.
// Callers that arrive while a tick is in flight share its result instead of
// starting another one. Cancelling ctx stops the wait for the result; the tick
// itself keeps running so other callers still receive the new generation.
func (s *MarketDataService) Refresh(ctx context.Context) (model.MarketSnapshot, error) {
	return s.refresh(ctx, metrics.TriggerManual)
}

// Tick runs one scheduled tick.
func (s *MarketDataService) Tick(ctx context.Context) error {
	_, err := s.refresh(ctx, metrics.TriggerScheduled)
	return err
}

func (s *MarketDataService) refresh(ctx context.Context, trigger string) (model.MarketSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.MarketSnapshot{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRefresh, err)
	}

	results := s.group.DoChan("refresh", func() (interface{}, error) {
		return s.tick(s.ctx, trigger)
	})

	select {
	case <-ctx.Done():
		s.logger.Debug("refresh caller stopped waiting", zap.String("trigger", trigger), zap.Error(ctx.Err()))
		return model.MarketSnapshot{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRefresh, ctx.Err())
	case res := <-results:
		if res.Shared {
			s.metrics.ObserveCoalesced()
		}
		if res.Err != nil {
			return model.MarketSnapshot{}, res.Err
		}
		return res.Val.(model.MarketSnapshot), nil
	}
}

// tick waits out the simulated latency, then computes and installs the next generation.
func (s *MarketDataService) tick(ctx context.Context, trigger string) (model.MarketSnapshot, error) {
	started := time.Now()
	s.loading.Store(true)

	if err := s.wait(ctx); err != nil {
		s.loading.Store(false)
		s.metrics.ObserveTickError()
		s.logger.Warn("market refresh cancelled", zap.String("trigger", trigger), zap.Error(err))
		return model.MarketSnapshot{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRefresh, err)
	}

	now := s.clock.Now()

	s.mu.Lock()
	stocks := marketdata.UpdateStocks(s.rnd, s.stocks, now)
	indices := marketdata.UpdateIndices(s.rnd, s.indices, now)
	summary := marketdata.UpdateSummary(s.rnd, stocks, s.summary, now)

	s.stocks = stocks
	s.indices = indices
	s.summary = summary
	s.lastUpdated = now
	s.generationID = uuid.NewString()
	s.sequence++
	s.loading.Store(false)

	snapshot := s.snapshotLocked(now)
	publisher := s.publisher
	s.mu.Unlock()

	s.metrics.ObserveTick(trigger, time.Since(started), summary.TotalValue)
	s.logger.Debug("market data refreshed",
		zap.String("trigger", trigger),
		zap.Uint64("sequence", snapshot.Sequence),
		zap.Float64("totalValue", summary.TotalValue),
	)

	if publisher != nil {
		publisher.Publish(snapshot)
	}
	return snapshot, nil
}

func (s *MarketDataService) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.latency == 0 {
		return nil
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Stocks returns the current stock records.
func (s *MarketDataService) Stocks() []model.StockRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stocks
}

// Stock returns the stock with the given ID.
func (s *MarketDataService) Stock(id string) (model.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, stock := range s.stocks {
		if stock.ID == id {
			return stock, nil
		}
	}
	return model.StockRecord{}, apperrors.ErrStockNotFound
}

// Indices returns the current index records.
func (s *MarketDataService) Indices() []model.IndexRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indices
}

// Summary returns the current portfolio summary.
func (s *MarketDataService) Summary() model.PortfolioSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Allocations returns each stock's share of the total portfolio value.
func (s *MarketDataService) Allocations() []model.Allocation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return marketdata.Allocations(s.stocks)
}

// LastUpdated returns the time the current generation was produced.
func (s *MarketDataService) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// FormattedLastUpdated returns LastUpdated relative to now, for example "3 minutes ago".
func (s *MarketDataService) FormattedLastUpdated() string {
	return marketdata.TimeAgo(s.LastUpdated(), s.clock.Now())
}

// IsLoading reports whether a refresh is in flight.
func (s *MarketDataService) IsLoading() bool {
	return s.loading.Load()
}

// Snapshot returns a consistent view of the current generation.
func (s *MarketDataService) Snapshot() model.MarketSnapshot {
	now := s.clock.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(now)
}

// Status describes the update loop and the freshness of the current generation.
func (s *MarketDataService) Status() model.FeedStatus {
	now := s.clock.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	status := model.FeedStatus{
		LastUpdated:          s.lastUpdated,
		FormattedLastUpdated: marketdata.TimeAgo(s.lastUpdated, now),
		IsLoading:            s.loading.Load(),
		IntervalOptions:      IntervalOptions,
		Sequence:             s.sequence,
		State:                "idle",
	}
	if s.controls != nil {
		status.AutoUpdate = s.controls.AutoUpdateEnabled()
		status.IntervalMs = s.controls.Interval().Milliseconds()
		status.State = s.controls.State()
	}
	return status
}

// snapshotLocked builds a snapshot from the current generation. The caller holds s.mu.
// Records are never mutated after installation, so the slices can be shared.
func (s *MarketDataService) snapshotLocked(now time.Time) model.MarketSnapshot {
	snapshot := model.MarketSnapshot{
		GenerationID:         s.generationID,
		Sequence:             s.sequence,
		Stocks:               s.stocks,
		Indices:              s.indices,
		Summary:              s.summary,
		LastUpdated:          s.lastUpdated,
		FormattedLastUpdated: marketdata.TimeAgo(s.lastUpdated, now),
		IsLoading:            s.loading.Load(),
	}
	if s.controls != nil {
		snapshot.AutoUpdate = s.controls.AutoUpdateEnabled()
		snapshot.IntervalMs = s.controls.Interval().Milliseconds()
	}
	return snapshot
}
