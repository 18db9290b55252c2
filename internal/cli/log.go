package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Wrote 3 files (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks reports pipeline and explore events at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) logHooks {
	return logHooks{logger: l.WithPrefix("hooks")}
}

func (h logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load start", "source", source)
}

func (h logHooks) OnLoadComplete(_ context.Context, source string, leaves int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("load complete", "source", source, "leaves", leaves, "duration", d)
}

func (h logHooks) OnLayoutStart(_ context.Context, visibility string, nodes int) {
	h.logger.Debug("layout start", "visible", visibility, "nodes", nodes)
}

func (h logHooks) OnLayoutComplete(_ context.Context, visibility string, connectors int, d time.Duration) {
	h.logger.Debug("layout complete", "visible", visibility, "connectors", connectors, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render complete", "formats", formats, "duration", d, "err", err)
}

func (h logHooks) OnToggle(_ context.Context, status string, visible bool, visibility string) {
	h.logger.Debug("toggle", "status", status, "visible", visible, "now", visibility)
}
