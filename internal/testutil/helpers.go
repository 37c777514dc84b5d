package testutil

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Market-Data-Simulator/internal/marketdata"
	"github.com/ndewijer/Market-Data-Simulator/internal/model"
	"github.com/ndewijer/Market-Data-Simulator/internal/repository"
	"github.com/ndewijer/Market-Data-Simulator/internal/service"
)

// Now is the fixed wall-clock time used by test services.
var Now = time.Date(2024, 3, 18, 9, 5, 0, 0, time.UTC)

// FixedRand always returns the same value. 0.5 puts every random walk at the
// midpoint of its range, so prices do not move.
type FixedRand float64

// Float64 implements marketdata.Rand.
func (r FixedRand) Float64() float64 { return float64(r) }

// Clock is a manually advanced clock, safe for concurrent use.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock set to start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now implements marketdata.Clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// NewTestMarketDataService creates a MarketDataService seeded with the default fixtures,
// a fixed random source, a manual clock and no simulated latency.
func NewTestMarketDataService(t *testing.T) (*service.MarketDataService, *Clock) {
	t.Helper()

	clock := NewClock(Now)
	svc, err := service.NewMarketDataService(marketdata.DefaultSeed(Now), service.MarketDataOptions{
		Rand:   FixedRand(0.5),
		Clock:  clock,
		Logger: zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("Failed to create market data service: %v", err)
	}
	t.Cleanup(svc.Close)
	return svc, clock
}

// NewTestTransactionService creates a TransactionService over the default history.
func NewTestTransactionService(t *testing.T) *service.TransactionService {
	t.Helper()

	svc, err := service.NewTransactionService(marketdata.DefaultTransactions(Now))
	if err != nil {
		t.Fatalf("Failed to create transaction service: %v", err)
	}
	return svc
}

// NewTestSettingsService creates a SettingsService backed by db.
func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()
	return service.NewSettingsService(repository.NewSettingsRepository(db))
}

// NewTestSystemService creates a SystemService backed by db.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// RecordingPublisher collects every published snapshot.
type RecordingPublisher struct {
	mu        sync.Mutex
	snapshots []model.MarketSnapshot
}

// Publish implements service.Publisher.
func (p *RecordingPublisher) Publish(snapshot model.MarketSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = append(p.snapshots, snapshot)
}

// Snapshots returns the snapshots received so far.
func (p *RecordingPublisher) Snapshots() []model.MarketSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.MarketSnapshot, len(p.snapshots))
	copy(out, p.snapshots)
	return out
}

// StaticControls reports a fixed update loop configuration.
type StaticControls struct {
	Enabled  bool
	Every    time.Duration
	StateVal string
}

// AutoUpdateEnabled implements service.Controls.
func (c StaticControls) AutoUpdateEnabled() bool { return c.Enabled }

// Interval implements service.Controls.
func (c StaticControls) Interval() time.Duration { return c.Every }

// State implements service.Controls.
func (c StaticControls) State() string { return c.StateVal }
