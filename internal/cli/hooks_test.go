package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogHooksVerbose(t *testing.T) {
	var buf bytes.Buffer
	h := newLogHooks(newLogger(&buf, log.DebugLevel))
	ctx := context.Background()

	h.OnLoadStart(ctx, "rivers.csv")
	h.OnLoadComplete(ctx, "rivers.csv", 28, 1, time.Millisecond, nil)
	h.OnRenderComplete(ctx, []string{"png"}, time.Millisecond, errors.New("boom"))
	h.OnResize(640, 480)
	h.OnSelect(-1, 3)

	out := buf.String()
	for _, want := range []string{"loading dataset", "load complete", "render failed", "boom", "viewport resized", "selection changed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}
