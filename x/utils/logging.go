package utils

import (
	"time"

	"github.com/iov-one/lockup"
)

// Logging is a decorator to log operations as they pass through
type Logging struct {
	msg string
}

var _ Decorator = Logging{}

// NewLogging creates a Logging decorator that writes msg once the
// operation is done.
func NewLogging(msg string) Logging {
	return Logging{msg: msg}
}

// Run logs error -> error, success -> info
func (l Logging) Run(ctx lockup.Context, db lockup.KVStore, next Op) error {
	start := time.Now()
	err := next(ctx, db)
	logDuration(ctx, start, l.msg, err)
	return err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx lockup.Context, start time.Time, msg string, err error) {
	delta := time.Since(start)
	logger := lockup.GetLogger(ctx).With("duration", delta/time.Microsecond)

	if err != nil {
		logger.With("err", err).Error(msg)
	} else {
		logger.Info(msg)
	}
}
