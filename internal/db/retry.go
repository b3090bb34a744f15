package db

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/logger"
)

// WithRetry runs fn and, if it fails with something that looks transient,
// retries exactly once after a short jittered sleep. Constraint violations
// and missing rows are deterministic outcomes and are never retried.
func WithRetry(ctx context.Context, log *logger.Logger, fn func() error) error {
	err := fn()
	if err == nil || !isTransient(err) {
		return err
	}
	delay := 50*time.Millisecond + time.Duration(rand.Intn(100))*time.Millisecond
	if log != nil {
		log.Warn("Transient database error, retrying once", "error", err, "delay", delay)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
	}
	return fn()
}

func isTransient(err error) bool {
	switch {
	case IsUniqueViolation(err), IsNotFound(err):
		return false
	case errors.Is(err, gorm.ErrInvalidTransaction):
		return false
	default:
		return true
	}
}
