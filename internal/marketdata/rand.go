package marketdata

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the source of randomness for the walk. Tests inject fixed values.
type Rand interface {
	Float64() float64
}

// Clock supplies the current time for timestamps and history labels.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// lockedRand makes a *rand.Rand safe for the scheduler and manual refreshes to share.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewRand returns a goroutine-safe Rand. A zero seed seeds from the current time.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}
