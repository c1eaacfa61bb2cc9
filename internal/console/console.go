// Package console renders batch progress and the end-of-run summary for
// operators.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"

	"github.com/joseph-ayodele/manifest-reconciler/constants"
	"github.com/joseph-ayodele/manifest-reconciler/internal/names"
	"github.com/joseph-ayodele/manifest-reconciler/internal/pipeline"
)

// DefaultSummaryLimit caps the matched-driver table.
const DefaultSummaryLimit = 40

type Options struct {
	Color        bool // false forces plain output even on a terminal
	Verbose      bool // one line per document instead of a progress bar
	SummaryLimit int
}

type styles struct {
	title  lipgloss.Style
	step   lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	fail   lipgloss.Style
	header lipgloss.Style
	muted  lipgloss.Style
}

// Console writes human-oriented output. It implements pipeline.Observer.
type Console struct {
	out  io.Writer
	opts Options
	st   styles
	bar  *progressbar.ProgressBar
	rows [][]string
	step int
}

var _ pipeline.Observer = (*Console)(nil)

func New(out io.Writer, opts Options) *Console {
	if opts.SummaryLimit <= 0 {
		opts.SummaryLimit = DefaultSummaryLimit
	}
	r := lipgloss.NewRenderer(out)
	if !opts.Color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Console{
		out:  out,
		opts: opts,
		st: styles{
			title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
			step:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3")),
			ok:     r.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
			warn:   r.NewStyle().Foreground(lipgloss.Color("#FFC107")),
			fail:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#e53935")),
			header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4db6ac")),
			muted:  r.NewStyle().Faint(true),
		},
	}
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func rule() string { return strings.Repeat("=", 60) }

// Banner prints the run header.
func (c *Console) Banner(title string) {
	c.printf("%s\n%s\n%s\n\n", c.st.title.Render(rule()), c.st.title.Render(center(title, 60)), c.st.title.Render(rule()))
}

func center(s string, width int) string {
	pad := width - lipgloss.Width(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s
}

func (c *Console) Step(title string) {
	c.step++
	c.printf("%s\n", c.st.step.Render(fmt.Sprintf("[%d] %s...", c.step, title)))
}

func (c *Console) Start(total int) {
	c.rows = nil
	if c.opts.Verbose || total == 0 {
		return
	}
	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("documents"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionEnableColorCodes(c.opts.Color),
		progressbar.OptionOnCompletion(func() { _, _ = fmt.Fprintln(c.out) }),
	)
}

func (c *Console) Document(out pipeline.Outcome) {
	name := names.CleanDocumentName(out.Document.Name)
	if out.Status == constants.DocumentMatched {
		e := out.Match.Entry
		c.rows = append(c.rows, []string{
			e.ShortName,
			constants.SheetLabel(out.Match.Sheet),
			dash(out.Document.Folder),
			dash(e.Fleet),
			dash(out.Fields.TripTicket),
			dash(out.Fields.TrailerPlate),
		})
	}

	if c.bar != nil {
		_ = c.bar.Add(1)
		return
	}
	if !c.opts.Verbose {
		return
	}
	switch out.Status {
	case constants.DocumentMatched:
		c.printf("%s %s -> %s (%s, %s)\n", c.st.ok.Render("[OK]"), name, out.Match.Entry.ShortName,
			constants.SheetLabel(out.Match.Sheet), out.Document.Folder)
	case constants.DocumentUnresolved:
		c.printf("%s %s not found in roster (%s)\n", c.st.warn.Render("[--]"), name, out.Document.Folder)
	default:
		c.printf("%s %s: %v\n", c.st.fail.Render("[ERR]"), name, out.Err)
	}
	if out.ReadErr != nil {
		c.printf("      %s\n", c.st.muted.Render("unreadable document: "+out.ReadErr.Error()))
	}
}

func (c *Console) Finish(stats pipeline.Stats) {
	if c.bar != nil {
		_ = c.bar.Finish()
		c.bar = nil
	}
	c.printf("\nDocuments: %d read, %d unreadable, %d with manifest data\n",
		stats.Read, stats.ReadFailures, stats.WithCore)
	c.printf("%s\n", c.st.title.Render(fmt.Sprintf("Driver matching: %d matched, %d not found", stats.Matched, stats.Unresolved)))
	if stats.Invalid > 0 {
		c.printf("%s\n", c.st.fail.Render(fmt.Sprintf("%d record(s) failed validation", stats.Invalid)))
	}
}

var tableHeaders = []string{"Name", "Day", "Folder", "Fleet", "DT", "Trailer"}

// MatchedTable renders the drivers matched in the last run, at most
// SummaryLimit rows followed by a remainder line.
func (c *Console) MatchedTable() string {
	if len(c.rows) == 0 {
		return ""
	}
	shown := c.rows
	if len(shown) > c.opts.SummaryLimit {
		shown = shown[:c.opts.SummaryLimit]
	}

	widths := make([]int, len(tableHeaders))
	for i, h := range tableHeaders {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range shown {
		for i, cell := range r {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	head := formatRow(tableHeaders, widths)
	sb.WriteString(c.st.title.Render("Matched drivers"))
	sb.WriteString("\n")
	sb.WriteString(c.st.header.Render(head))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", lipgloss.Width(head)))
	sb.WriteString("\n")
	for _, r := range shown {
		sb.WriteString(formatRow(r, widths))
		sb.WriteString("\n")
	}
	if extra := len(c.rows) - len(shown); extra > 0 {
		sb.WriteString(fmt.Sprintf("... (+%d remaining)\n", extra))
	}
	return sb.String()
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
	}
	return strings.TrimRight(strings.Join(parts, " | "), " ")
}

// Success prints the matched table, the files written and any export
// failures.
func (c *Console) Success(sum pipeline.Summary) {
	if t := c.MatchedTable(); t != "" {
		c.printf("\n%s", t)
	}
	for _, p := range sum.Export.Written {
		c.printf("%s %s\n", c.st.ok.Render("[OK]"), p)
	}
	for p, err := range sum.Export.Failed {
		c.printf("%s %s: %v\n", c.st.fail.Render("[ERR]"), p, err)
	}
	c.printf("\n%s\n%s\n%s\n", c.st.title.Render(rule()), c.st.title.Render("SUCCESS"), c.st.title.Render(rule()))
	c.printf("Records: %d\nColumns: %d\nRun: %s\n", len(sum.Report.Records), sum.Columns, sum.RunID)
}

// NoRecords prints the distinct message for a run that matched nothing.
func (c *Console) NoRecords(hints []string) {
	c.printf("\n%s\n%s\n%s\n", c.st.fail.Render(rule()), c.st.fail.Render("ERROR - no driver was matched"), c.st.fail.Render(rule()))
	c.printf("No records were produced. Check:\n")
	for _, h := range hints {
		c.printf("  - %s\n", h)
	}
}

// Checks prints an environment check report grouped as it ran, followed by
// the overall verdict.
func (c *Console) Checks(rep pipeline.CheckReport) {
	group := ""
	for _, it := range rep.Items {
		if it.Group != group {
			if group != "" {
				c.printf("\n")
			}
			group = it.Group
			c.printf("%s\n", c.st.header.Render(group+":"))
		}
		var mark string
		switch it.Level {
		case pipeline.CheckOK:
			mark = c.st.ok.Render("[OK]")
		case pipeline.CheckWarn:
			mark = c.st.warn.Render("[!!]")
		default:
			mark = c.st.fail.Render("[ERR]")
		}
		c.printf("  %s %s %s\n", mark, it.Name, c.st.muted.Render("("+it.Detail+")"))
	}
	if rep.OK() {
		c.printf("\n%s\n%s\n", c.st.ok.Render("Environment ready"), c.st.title.Render(rule()))
		return
	}
	c.printf("\n%s\n%s\n", c.st.fail.Render("Environment has problems; fix the [ERR] lines above"), c.st.fail.Render(rule()))
}

// Error prints a fatal setup error.
func (c *Console) Error(err error) {
	c.printf("%s %v\n", c.st.fail.Render("[ERR]"), err)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
