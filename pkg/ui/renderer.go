package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/headerguard/headerguard/pkg/scanner"
)

// Renderer writes a scan report in one concrete format.
type Renderer struct {
	out    io.Writer
	format Format
}

// NewRenderer creates a renderer. The format must already be resolved;
// FormatAuto is treated as plain text.
func NewRenderer(out io.Writer, format Format) *Renderer {
	return &Renderer{out: out, format: format}
}

// fileEntry is the machine-readable shape of one result.
type fileEntry struct {
	Path   string `json:"path" yaml:"path"`
	Status string `json:"status" yaml:"status"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// reportDoc is the machine-readable shape of a whole run.
type reportDoc struct {
	Files       []fileEntry    `json:"files" yaml:"files"`
	Counts      map[string]int `json:"counts" yaml:"counts"`
	Interrupted bool           `json:"interrupted" yaml:"interrupted"`
	Failed      bool           `json:"failed" yaml:"failed"`
}

// Render writes the report. Results are already sorted by path.
func (r *Renderer) Render(report *scanner.Report) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(report)
	case FormatYAML:
		return r.renderYAML(report)
	case FormatTerminal:
		return r.renderLines(report, true)
	default:
		return r.renderLines(report, false)
	}
}

func (r *Renderer) renderLines(report *scanner.Report, styled bool) error {
	for _, res := range report.Results {
		line := fmt.Sprintf("%s\t%s", res.Path, statusText(res))
		if styled {
			line = styleFor(res.Status).Render(line)
		}
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return err
		}
		if res.Diff != "" {
			diff := res.Diff
			if styled {
				diff = colorizeDiff(diff)
			}
			if _, err := fmt.Fprint(r.out, diff); err != nil {
				return err
			}
		}
	}

	summary := summaryLine(report)
	if styled {
		summary = styleSummary.Render(summary)
	}
	_, err := fmt.Fprintln(r.out, summary)
	return err
}

func (r *Renderer) renderJSON(report *scanner.Report) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(toDoc(report))
}

func (r *Renderer) renderYAML(report *scanner.Report) error {
	enc := yaml.NewEncoder(r.out)
	defer enc.Close()
	return enc.Encode(toDoc(report))
}

func toDoc(report *scanner.Report) reportDoc {
	doc := reportDoc{
		Files:       make([]fileEntry, 0, len(report.Results)),
		Counts:      make(map[string]int),
		Interrupted: report.Interrupted,
		Failed:      report.Failed(),
	}
	for status, n := range report.Counts() {
		doc.Counts[string(status)] = n
	}
	for _, res := range report.Results {
		entry := fileEntry{Path: res.Path, Status: string(res.Status)}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		}
		doc.Files = append(doc.Files, entry)
	}
	return doc
}

// colorizeDiff styles added and removed lines for the terminal format.
// Diff text stays plain in every other format so it survives CI logs.
func colorizeDiff(diff string) string {
	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = styleDiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = styleDiffDel.Render(line)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// statusText renders the status column; errors carry their reason inline.
func statusText(res scanner.Result) string {
	if res.Status == scanner.StatusError && res.Err != nil {
		return fmt.Sprintf("error:%s", res.Err)
	}
	return string(res.Status)
}

func summaryLine(report *scanner.Report) string {
	counts := report.Counts()
	line := fmt.Sprintf("%d compliant, %d violating, %d fixed, %d errors",
		counts[scanner.StatusCompliant],
		counts[scanner.StatusViolating],
		counts[scanner.StatusFixed],
		counts[scanner.StatusError])
	if n := counts[scanner.StatusExcluded]; n > 0 {
		line += fmt.Sprintf(", %d excluded", n)
	}
	if report.Interrupted {
		line += fmt.Sprintf(", %d interrupted", counts[scanner.StatusInterrupted])
	}
	return line
}
