package diagnostics

import (
	"fmt"
	"io"

	"github.com/vladimir-sama/arx-lang/colors"
)

// Emitter writes formatted diagnostics to a writer
type Emitter struct {
	writer io.Writer
}

// NewEmitter creates an emitter writing to w
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{writer: w}
}

// Emit writes one diagnostic
func (e *Emitter) Emit(diag *Diagnostic) {
	color := colors.RED
	switch diag.Severity {
	case Warning:
		color = colors.ORANGE
	case Info:
		color = colors.CYAN
	}

	if diag.Code != "" {
		color.Fprintf(e.writer, "%s[%s]", diag.Severity, diag.Code)
	} else {
		color.Fprintf(e.writer, "%s", diag.Severity)
	}
	fmt.Fprintf(e.writer, ": %s\n", diag.Message)

	for _, note := range diag.Notes {
		colors.GREY.Fprintf(e.writer, "  note: %s\n", note.Message)
	}
	if diag.Help != "" {
		colors.CYAN.Fprintf(e.writer, "  help: %s\n", diag.Help)
	}
}
