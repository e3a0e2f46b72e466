package notify

import (
	"github.com/iov-one/lockup"
	"github.com/tendermint/tendermint/libs/log"
)

// LogSink writes every event as a structured log line.
type LogSink struct {
	logger log.Logger
}

var _ lockup.EventSink = (*LogSink)(nil)

// NewLogSink returns a sink that writes to given logger. When logger is nil
// the logger carried by the context is used.
func NewLogSink(logger log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(ctx lockup.Context, events []lockup.Event) error {
	logger := s.logger
	if logger == nil {
		logger = lockup.GetLogger(ctx)
	}
	for _, e := range events {
		logger.Info("event", "name", e.EventName(), "payload", e)
	}
	return nil
}
