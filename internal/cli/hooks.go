package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/riverplot/pkg/observability"
)

// logHooks reports pipeline and viewport events at debug level, so they show
// up with --verbose only.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.ViewportHooks = (*logHooks)(nil)
)

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("loading dataset", "source", source)
}

func (h *logHooks) OnLoadComplete(_ context.Context, source string, records, issues int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "source", source, "duration", d, "err", err)
		return
	}
	h.logger.Debug("load complete", "source", source, "records", records, "issues", issues, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("rendering", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h *logHooks) OnResize(width, height float64) {
	h.logger.Debug("viewport resized", "width", width, "height", height)
}

func (h *logHooks) OnSelect(prev, next int) {
	h.logger.Debug("selection changed", "from", prev, "to", next)
}

func (h *logHooks) OnRedraw(width, height float64, selected int, d time.Duration) {
	h.logger.Debug("redraw", "width", width, "height", height, "selected", selected, "duration", d)
}
