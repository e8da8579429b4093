package vlc

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Tracer receives every coded element with the bit offset it starts at.
type Tracer interface {
	Trace(offset int, se *SyntaxElement)
}

// TextTracer writes one line per element:
//
//	@offset label                      bit pattern ( value)
type TextTracer struct {
	W io.Writer
}

func (t TextTracer) Trace(offset int, se *SyntaxElement) {
	fmt.Fprintf(t.W, "@%-6d%-48s%15s (%3d)\n", offset, se.Label, se.Code().String(), se.Value1)
}

// ZapTracer logs elements at debug level.
type ZapTracer struct {
	Logger *zap.SugaredLogger
}

func (t ZapTracer) Trace(offset int, se *SyntaxElement) {
	t.Logger.Debugw("syntax element",
		"offset", offset,
		"label", se.Label,
		"mode", se.Mode.String(),
		"bits", se.Code().String(),
		"value", se.Value1,
	)
}
