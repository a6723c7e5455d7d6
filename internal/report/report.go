package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"slices"
	"strings"
	"time"
)

// Config summarises the export configuration used for a run.
type Config struct {
	InputPath        string
	OutputPath       string
	Format           string
	Geometry         string
	MinResolution    int
	MaxResolution    int
	ResolutionFilter bool
	QuantizeSpec     string
	PropsKeep        []string
	PropsDrop        []string
	Attributes       []string
	Threads          int
	PropertyByteCap  int
}

// PropertyWarning captures over-sized property payloads.
type PropertyWarning struct {
	RowNumber     int64
	H3            string
	PropertyCount int
	PropertyBytes int
	Message       string
}

// HistogramEntry is used to render deterministic resolution histograms.
type HistogramEntry struct {
	Resolution int
	Count      int64
}

// Metrics holds runtime statistics gathered during an export.
type Metrics struct {
	StartedAt           time.Time
	FinishedAt          time.Time
	Duration            time.Duration
	TotalRows           int64
	EmittedFeatures     int64
	DroppedInvalid      int64
	DroppedResolution   int64
	DroppedDuplicate    int64
	DroppedPropertyCap  int64
	PropertyWarnings    []PropertyWarning
	Pentagons           int64
	TotalAreaKm2        float64
	MinResolutionSeen   int
	MaxResolutionSeen   int
	ResolutionHistogram map[int]int64
	ResolutionEntries   []HistogramEntry
	QuantizeApplied     bool
	QuantizeChanges     int64
	QuantizeTotalError  float64
	OutputPath          string
	OutputSize          int64
	Warnings            []string
}

// Report ties together configuration and metrics.
type Report struct {
	Config  Config
	Metrics Metrics
}

// AddWarning appends a human-readable warning to the report.
func (r *Report) AddWarning(message string) {
	r.Metrics.Warnings = append(r.Metrics.Warnings, message)
}

// AddPropertyWarning appends a property warning to the report.
func (r *Report) AddPropertyWarning(w PropertyWarning) {
	r.Metrics.PropertyWarnings = append(r.Metrics.PropertyWarnings, w)
}

// IncrementHistogram counts one row at resolution and widens the seen span.
func (r *Report) IncrementHistogram(resolution int) {
	m := &r.Metrics
	if m.ResolutionHistogram == nil {
		m.ResolutionHistogram = make(map[int]int64)
		m.MinResolutionSeen, m.MaxResolutionSeen = resolution, resolution
	}
	m.ResolutionHistogram[resolution]++
	m.MinResolutionSeen = min(m.MinResolutionSeen, resolution)
	m.MaxResolutionSeen = max(m.MaxResolutionSeen, resolution)
}

// Finish stamps the end time and derives the sorted histogram.
func (r *Report) Finish() {
	r.Metrics.FinishedAt = time.Now()
	r.Metrics.Duration = r.Metrics.FinishedAt.Sub(r.Metrics.StartedAt)
	r.prepare()
}

func (r *Report) prepare() {
	keys := make([]int, 0, len(r.Metrics.ResolutionHistogram))
	for k := range r.Metrics.ResolutionHistogram {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	r.Metrics.ResolutionEntries = r.Metrics.ResolutionEntries[:0]
	for _, k := range keys {
		r.Metrics.ResolutionEntries = append(r.Metrics.ResolutionEntries, HistogramEntry{Resolution: k, Count: r.Metrics.ResolutionHistogram[k]})
	}
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	r.prepare()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// RenderHTML writes the report as an HTML page.
func (r *Report) RenderHTML(w io.Writer) error {
	r.prepare()

	funcMap := template.FuncMap{
		"FormatBytes": FormatBytes,
		"FormatDuration": func(d time.Duration) string {
			if d <= 0 {
				return "n/a"
			}
			return d.Truncate(time.Millisecond).String()
		},
		"Join": strings.Join,
		"int64": func(i int) int64 {
			return int64(i)
		},
	}

	tpl, err := template.New("report").Funcs(funcMap).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}
	if err := tpl.Execute(w, r); err != nil {
		return fmt.Errorf("execute report template: %w", err)
	}
	return nil
}

// WriteFile writes the report to path, as JSON when the name ends in .json
// and as HTML otherwise.
func (r *Report) WriteFile(path string) error {
	var buf bytes.Buffer
	var err error
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		err = r.WriteJSON(&buf)
	} else {
		err = r.RenderHTML(&buf)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(value int64) string {
	if value <= 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	f := float64(value)
	idx := 0
	for f >= 1024 && idx < len(units)-1 {
		f /= 1024
		idx++
	}
	if f >= 10 || idx == 0 {
		return fmt.Sprintf("%.0f %s", f, units[idx])
	}
	return fmt.Sprintf("%.1f %s", f, units[idx])
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>hexgrid export report</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; margin: 40px; color: #1f2933; }
header { margin-bottom: 32px; }
h1 { font-size: 28px; margin: 0; }
section { margin-bottom: 36px; }
h2 { font-size: 20px; border-bottom: 1px solid #e1e4e8; padding-bottom: 4px; margin-bottom: 16px; }
table { border-collapse: collapse; width: 100%; margin-bottom: 16px; }
th, td { border: 1px solid #d9e2ec; padding: 8px 12px; text-align: left; font-size: 14px; }
th { background: #f0f4f8; }
code { background: #f1f5f9; padding: 2px 4px; border-radius: 4px; }
.warning { color: #b43403; }
</style>
</head>
<body>
<header>
  <h1>Export report</h1>
  <p>Input: <code>{{ .Config.InputPath }}</code> &middot; Output: <code>{{ .Config.OutputPath }}</code> ({{ .Config.Format }})</p>
  <p>Started {{ .Metrics.StartedAt.Format "2006-01-02 15:04:05" }} &middot; Duration {{ FormatDuration .Metrics.Duration }}</p>
</header>

<section>
  <h2>Configuration</h2>
  <table>
    <tr><th>Geometry</th><td>{{ .Config.Geometry }}</td></tr>
    <tr><th>Resolution filter</th><td>{{ if .Config.ResolutionFilter }}r{{ .Config.MinResolution }} &rarr; r{{ .Config.MaxResolution }}{{ else }}none{{ end }}</td></tr>
    <tr><th>Quantization</th><td>{{ if .Config.QuantizeSpec }}{{ .Config.QuantizeSpec }}{{ else }}disabled{{ end }}</td></tr>
    <tr><th>Property cap</th><td>{{ if gt .Config.PropertyByteCap 0 }}{{ FormatBytes (int64 .Config.PropertyByteCap) }}{{ else }}not set{{ end }}</td></tr>
    <tr><th>Threads</th><td>{{ .Config.Threads }}</td></tr>
    <tr><th>Attributes</th><td>{{ if .Config.Attributes }}{{ Join .Config.Attributes ", " }}{{ else }}none{{ end }}</td></tr>
    <tr><th>Keep properties</th><td>{{ if .Config.PropsKeep }}{{ Join .Config.PropsKeep ", " }}{{ else }}none{{ end }}</td></tr>
    <tr><th>Drop patterns</th><td>{{ if .Config.PropsDrop }}{{ Join .Config.PropsDrop ", " }}{{ else }}none{{ end }}</td></tr>
  </table>
</section>

<section>
  <h2>Dataset</h2>
  <table>
    <tr><th>Total rows</th><td>{{ .Metrics.TotalRows }}</td></tr>
    <tr><th>Features emitted</th><td>{{ .Metrics.EmittedFeatures }}</td></tr>
    <tr><th>Pentagons</th><td>{{ .Metrics.Pentagons }}</td></tr>
    <tr><th>Total area</th><td>{{ printf "%.3f" .Metrics.TotalAreaKm2 }} km&sup2;</td></tr>
    <tr><th>Dropped (invalid cell)</th><td>{{ .Metrics.DroppedInvalid }}</td></tr>
    <tr><th>Dropped (resolution filter)</th><td>{{ .Metrics.DroppedResolution }}</td></tr>
    <tr><th>Dropped (duplicate)</th><td>{{ .Metrics.DroppedDuplicate }}</td></tr>
    <tr><th>Dropped (property cap)</th><td>{{ .Metrics.DroppedPropertyCap }}</td></tr>
    <tr><th>Resolution span</th><td>{{ if .Metrics.ResolutionEntries }}r{{ .Metrics.MinResolutionSeen }} &rarr; r{{ .Metrics.MaxResolutionSeen }}{{ else }}n/a{{ end }}</td></tr>
  </table>
  {{ if .Metrics.ResolutionEntries }}
  <h3>Resolution histogram</h3>
  <table>
    <tr><th>Resolution</th><th>Rows</th></tr>
    {{ range .Metrics.ResolutionEntries }}
    <tr><td>r{{ .Resolution }}</td><td>{{ .Count }}</td></tr>
    {{ end }}
  </table>
  {{ end }}
</section>

<section>
  <h2>Output</h2>
  <table>
    <tr><th>File</th><td><code>{{ .Metrics.OutputPath }}</code> ({{ FormatBytes .Metrics.OutputSize }})</td></tr>
    <tr><th>Quantization</th><td>{{ if .Metrics.QuantizeApplied }}{{ .Metrics.QuantizeChanges }} adjustments, total error {{ printf "%.4f" .Metrics.QuantizeTotalError }}{{ else }}no changes{{ end }}</td></tr>
  </table>
</section>

{{ if or .Metrics.PropertyWarnings .Metrics.Warnings }}
<section>
  <h2>Warnings</h2>
  {{ if .Metrics.Warnings }}
  <ul>
    {{ range .Metrics.Warnings }}<li class="warning">{{ . }}</li>{{ end }}
  </ul>
  {{ end }}
  {{ if .Metrics.PropertyWarnings }}
  <table>
    <tr><th>Row</th><th>Cell</th><th>Properties</th><th>Bytes</th><th>Details</th></tr>
    {{ range .Metrics.PropertyWarnings }}
    <tr><td>{{ .RowNumber }}</td><td><code>{{ .H3 }}</code></td><td>{{ .PropertyCount }}</td><td>{{ .PropertyBytes }}</td><td>{{ .Message }}</td></tr>
    {{ end }}
  </table>
  {{ end }}
</section>
{{ end }}

<footer>
  <p>Generated {{ .Metrics.FinishedAt.Format "2006-01-02 15:04:05" }}.</p>
</footer>
</body>
</html>`
