package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/lightthelamp/internal/common/clock Clock

// Clock is the time source for pick and join timestamps
type Clock interface {
	Now() time.Time
}

// New returns the system clock
func New() Clock {
	return clockwork.NewRealClock()
}

// NewFake returns a clock frozen at t that tests can advance
func NewFake(t time.Time) *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(t)
}
