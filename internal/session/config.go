package session

import "time"

// Config carries the tunables of a session. Production code uses
// DefaultConfig; tests shrink the intervals to keep timing out of assertions.
type Config struct {
	// TickInterval is the wall-clock length of one timer tick. The time
	// limit of a question set is expressed in ticks, so production keeps
	// this at one second.
	TickInterval time.Duration

	// SettleDelay is how long a flashcard stays face-down before the next
	// card appears after navigation. Presentation timing only; zero makes
	// navigation synchronous.
	SettleDelay time.Duration

	// OnComplete is invoked exactly once when the session reaches its
	// terminal state, whichever path gets it there.
	OnComplete func(Outcome)
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		TickInterval: time.Second,
		SettleDelay:  180 * time.Millisecond,
	}
}
