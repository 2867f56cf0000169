package check

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Reporter receives results as they are produced. Output is streamed,
// not batched: the user sees each file's verdict while later files are
// still being validated.
type Reporter interface {
	// CategoryHeader announces a category pass and its file count
	CategoryHeader(c Category, fileCount int)

	// FileOutcome reports one validated file
	FileOutcome(o Outcome)

	// Summary prints the final verdict for the run
	Summary(r *Result)
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	okStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	subtextStyle = lipgloss.NewStyle().Faint(true)
)

// PrettyReporter renders the human-facing colored console report.
type PrettyReporter struct {
	w     io.Writer
	color bool
}

// NewPrettyReporter creates a console reporter. Color is applied only
// when the writer is a terminal and noColor is false.
func NewPrettyReporter(w io.Writer, noColor bool) *PrettyReporter {
	color := false
	if f, ok := w.(*os.File); ok && !noColor {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &PrettyReporter{w: w, color: color}
}

func (p *PrettyReporter) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// CategoryHeader announces a category pass and its file count
func (p *PrettyReporter) CategoryHeader(c Category, fileCount int) {
	fmt.Fprintf(p.w, "\n%s\n", p.render(headerStyle, c.Title()))
	if fileCount == 0 {
		fmt.Fprintf(p.w, "%s\n", p.render(subtextStyle, "  no matching files"))
	}
}

// FileOutcome reports one validated file
func (p *PrettyReporter) FileOutcome(o Outcome) {
	label := p.render(passStyle, "PASSED")
	if !o.Passed {
		label = p.render(failStyle, "FAILED")
	}
	fmt.Fprintf(p.w, "  [%s] %s\n", label, o.File)
	if !o.Passed && o.Diagnostics != "" {
		for _, line := range strings.Split(o.Diagnostics, "\n") {
			fmt.Fprintf(p.w, "    %s\n", line)
		}
	}
}

// Summary prints the final verdict for the run
func (p *PrettyReporter) Summary(r *Result) {
	if r.Ok() {
		fmt.Fprintf(p.w, "\n%s\n", p.render(okStyle, "No Errors Found"))
		return
	}
	fmt.Fprintf(p.w, "\n%s\n", p.render(errStyle, "Errors Found"))
}

// QuietReporter discards streamed output; used when the caller renders
// the aggregate Result itself (JSON mode).
type QuietReporter struct{}

// CategoryHeader is a no-op
func (QuietReporter) CategoryHeader(Category, int) {}

// FileOutcome is a no-op
func (QuietReporter) FileOutcome(Outcome) {}

// Summary is a no-op
func (QuietReporter) Summary(*Result) {}
