package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appointmentRepo "clinicport/database/repository/appointment"
	"clinicport/utils"
)

const (
	maxStoreAttempts  = 3
	initialRetryDelay = 100 * time.Millisecond
)

// withRetry runs a store operation, retrying transient infrastructure
// failures with exponential backoff. Domain outcomes (ErrSlotTaken,
// ErrNotFound, ErrStatusChanged) are surfaced immediately and never
// retried. Anything
// still failing after the last attempt comes back as
// InfrastructureError.
func withRetry(ctx context.Context, op string, fn func() error) error {
	logger := utils.GetLogger()

	var err error
	delay := initialRetryDelay
	for attempt := 1; attempt <= maxStoreAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, appointmentRepo.ErrSlotTaken) ||
			errors.Is(err, appointmentRepo.ErrNotFound) ||
			errors.Is(err, appointmentRepo.ErrStatusChanged) {
			return err
		}
		if attempt == maxStoreAttempts {
			break
		}
		logger.Warn("transient store failure, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Error(err))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return &InfrastructureError{Err: ctx.Err()}
		}
		delay *= 2
	}
	return &InfrastructureError{Err: err}
}
