package lifecycle

import "time"

// Clock abstracts the settle-delay sleep so tests can simulate elapsed time
// without a real wait.
type Clock interface {
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }
