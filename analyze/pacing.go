package analyze

import (
	"math/rand"
	"time"
)

// Pace implements spec.md §4.3/§5's cooperative pacing rule: sleep
// delay + Uniform[1..jitter] seconds, but only when delay is positive.
// Shared by the paged-search loop (between pages) and the Enumeration
// Pipeline (between methods) so both honor the identical formula.
func Pace(delaySeconds, jitterSeconds int) {
	if delaySeconds <= 0 {
		return
	}
	extra := 0
	if jitterSeconds > 0 {
		extra = 1 + rand.Intn(jitterSeconds)
	}
	time.Sleep(time.Duration(delaySeconds+extra) * time.Second)
}
