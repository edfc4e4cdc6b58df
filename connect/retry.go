package connect

import (
	"fmt"
	"math"
	"time"

	"adldap/analyze"
)

// RetryConfig governs the exponential backoff applied to the initial bind
// only; spec.md's concurrency model treats a bind failure as fatal once
// retries are exhausted, never mid-enumeration.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  analyze.DefaultRetryMaxAttempts,
		InitialDelay: time.Duration(analyze.DefaultRetryInitialDelay) * time.Millisecond,
		MaxDelay:     time.Duration(analyze.DefaultRetryMaxDelay) * time.Second,
		Multiplier:   analyze.DefaultRetryMultiplier,
	}
}

// NewDirectoryWithRetry retries NewDirectory with exponential backoff,
// logging each attempt through the supplied callback.
func NewDirectoryWithRetry(c *Config, retryCfg RetryConfig, onRetry func(attempt int, err error)) (Directory, error) {
	var lastErr error
	for attempt := 0; attempt < retryCfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(calculateBackoff(attempt, retryCfg))
		}
		d, err := NewDirectory(c)
		if err == nil {
			return d, nil
		}
		lastErr = err
		if onRetry != nil {
			onRetry(attempt+1, err)
		}
	}
	return nil, fmt.Errorf("failed after %d attempt(s): %w", retryCfg.MaxAttempts, lastErr)
}

func calculateBackoff(attempt int, cfg RetryConfig) time.Duration {
	delay := cfg.InitialDelay * time.Duration(math.Pow(cfg.Multiplier, float64(attempt)))
	if delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	return delay
}
