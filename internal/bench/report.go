package bench

import (
	"encoding/json"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes the results as a table.
func Render(w io.Writer, results []Result) {
	tbl := table.NewWriter()
	tbl.SetTitle("neoflux propagation latency")
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"scenario", "nodes", "iters", "avg", "min", "p75", "p99", "max", "heap"})

	for _, r := range results {
		tbl.AppendRow(table.Row{
			r.Scenario.Name,
			humanize.Comma(int64(r.Nodes)),
			r.Iterations,
			r.Avg,
			r.Min,
			r.P75,
			r.P99,
			r.Max,
			humanize.Bytes(r.HeapDelta),
		})
	}

	tbl.Render()
}

// jsonResult is the machine-readable row shape. Durations are
// nanoseconds so consumers do not have to parse Go duration strings.
type jsonResult struct {
	Name       string `json:"name"`
	Shape      Shape  `json:"shape"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Nodes      int    `json:"nodes"`
	Iterations int    `json:"iterations"`
	AvgNs      int64  `json:"avgNs"`
	MinNs      int64  `json:"minNs"`
	P75Ns      int64  `json:"p75Ns"`
	P99Ns      int64  `json:"p99Ns"`
	MaxNs      int64  `json:"maxNs"`
	HeapBytes  uint64 `json:"heapBytes"`
}

// RenderJSON writes the results as a JSON array.
func RenderJSON(w io.Writer, results []Result) error {
	rows := make([]jsonResult, 0, len(results))
	for _, r := range results {
		rows = append(rows, jsonResult{
			Name:       r.Scenario.Name,
			Shape:      r.Scenario.Shape,
			Width:      r.Scenario.Width,
			Height:     r.Scenario.Height,
			Nodes:      r.Nodes,
			Iterations: r.Iterations,
			AvgNs:      r.Avg.Nanoseconds(),
			MinNs:      r.Min.Nanoseconds(),
			P75Ns:      r.P75.Nanoseconds(),
			P99Ns:      r.P99.Nanoseconds(),
			MaxNs:      r.Max.Nanoseconds(),
			HeapBytes:  r.HeapDelta,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
