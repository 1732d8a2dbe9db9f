package reaper

import (
	"context"

	"github.com/goran-ethernal/TicketIndexor/internal/logger"
)

// LogSink logs decisions. The transactions that carry them out are submitted
// elsewhere, and their events re-enter the pipeline through the downloader.
type LogSink struct {
	log *logger.Logger
}

// NewLogSink creates a sink that writes decisions to log.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

// Handle logs the events to cancel and close. Empty decisions are logged at debug level.
func (s *LogSink) Handle(_ context.Context, d *Decision) error {
	if d.Empty() {
		s.log.Debugw("no events to reap", "today", d.Today.Format("2006-01-02"))
		return nil
	}

	s.log.Infow("events to reap",
		"today", d.Today.Format("2006-01-02"),
		"cancel", d.Cancel,
		"close", d.Close,
	)
	return nil
}
