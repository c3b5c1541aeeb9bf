package sweep

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

// WriteDiscoveryLines prints one line per discovery run. Complete runs are
// green, runs that missed targets yellow, runs stopped by the sample cap red.
func WriteDiscoveryLines(w io.Writer, runs *orderedmap.OrderedMap[Point, DiscoveryRun]) {
	for el := runs.Front(); el != nil; el = el.Next() {
		res := el.Value.Result
		line := fmt.Sprintf("%s: %s", el.Key, res)
		switch {
		case res.CapReached:
			line = color.Red.Sprint(line)
		case !res.Complete():
			line = color.Yellow.Sprint(line)
		default:
			line = color.Green.Sprint(line)
		}
		fmt.Fprintln(w, line)
	}
}

// WriteCountingLines prints the mean absolute error of each counting point.
func WriteCountingLines(w io.Writer, runs *orderedmap.OrderedMap[Point, CountingRun]) {
	for el := runs.Front(); el != nil; el = el.Next() {
		sum := el.Value.Summary
		fmt.Fprintf(w, "%s: avg. error = %s with %d counting qubits\n",
			el.Key, color.Cyan.Sprintf("%.4f", sum.MeanAbsError), sum.Width)
	}
}

// WriteDiscoveryTable prints an aligned summary of a discovery sweep.
func WriteDiscoveryTable(w io.Writer, runs *orderedmap.OrderedMap[Point, DiscoveryRun]) {
	t := newTable("n", "N", "M", "found", "measurements", "rounds", "status")
	complete := 0
	for el := runs.Front(); el != nil; el = el.Next() {
		p, res := el.Key, el.Value.Result
		status := res.Phase.String()
		if res.Complete() {
			complete++
		} else {
			status = "incomplete"
		}
		if res.CapReached {
			status = "capped"
		}
		t.addRow(
			strconv.Itoa(p.Qubits),
			strconv.Itoa(p.SpaceSize()),
			strconv.Itoa(p.Targets),
			fmt.Sprintf("%d/%d", res.Found.Len(), res.Total),
			strconv.Itoa(res.Stats.Measurements),
			strconv.Itoa(res.Stats.Rounds),
			status,
		)
	}
	printHeader(w, fmt.Sprintf("Discovery sweep: %d/%d runs complete", complete, runs.Len()))
	t.write(w)
}

// WriteCountingTable prints an aligned summary of a counting sweep.
func WriteCountingTable(w io.Writer, runs *orderedmap.OrderedMap[Point, CountingRun]) {
	t := newTable("n", "N", "M", "t", "mean |error|", "covered")
	for el := runs.Front(); el != nil; el = el.Next() {
		p, sum := el.Key, el.Value.Summary
		t.addRow(
			strconv.Itoa(p.Qubits),
			strconv.Itoa(p.SpaceSize()),
			strconv.Itoa(p.Targets),
			strconv.Itoa(sum.Width),
			fmt.Sprintf("%.4f", sum.MeanAbsError),
			fmt.Sprintf("%d/%d", sum.Covered, sum.Trials),
		)
	}
	printHeader(w, fmt.Sprintf("Counting sweep: %d points", runs.Len()))
	t.write(w)
}

// printHeader prints a title framed by rules as wide as the title.
func printHeader(w io.Writer, title string) {
	width := runewidth.StringWidth(title) + 4
	fmt.Fprintln(w, strings.Repeat("=", width))
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, strings.Repeat("=", width))
}

type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

func (t *table) write(w io.Writer) {
	widths := t.widths()
	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	writeRow(t.headers)
	rules := make([]string, len(widths))
	for i, n := range widths {
		rules[i] = strings.Repeat("-", n)
	}
	writeRow(rules)
	for _, row := range t.rows {
		writeRow(row)
	}
}

// WriteDiscoveryChart renders measurements against M, one line per n, as a
// standalone HTML page.
func WriteDiscoveryChart(w io.Writer, runs *orderedmap.OrderedMap[Point, DiscoveryRun]) error {
	series := orderedmap.NewOrderedMap[int, []float64]()
	for el := runs.Front(); el != nil; el = el.Next() {
		appendSeries(series, el.Key.Qubits, float64(el.Value.Result.Stats.Measurements))
	}
	return renderLines(w, "Measurements until convergence", "measurements", series)
}

// WriteCountingChart renders the mean absolute counting error against M.
func WriteCountingChart(w io.Writer, runs *orderedmap.OrderedMap[Point, CountingRun]) error {
	series := orderedmap.NewOrderedMap[int, []float64]()
	for el := runs.Front(); el != nil; el = el.Next() {
		appendSeries(series, el.Key.Qubits, el.Value.Summary.MeanAbsError)
	}
	return renderLines(w, "Phase counting mean absolute error", "mean |error|", series)
}

// appendSeries relies on grid order: points of one n arrive with M = 0, 1, ...
func appendSeries(series *orderedmap.OrderedMap[int, []float64], qubits int, v float64) {
	values, _ := series.Get(qubits)
	series.Set(qubits, append(values, v))
}

func renderLines(w io.Writer, title, yName string, series *orderedmap.OrderedMap[int, []float64]) error {
	longest := 0
	for el := series.Front(); el != nil; el = el.Next() {
		longest = max(longest, len(el.Value))
	}
	xs := make([]int, longest)
	for i := range xs {
		xs[i] = i
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "M"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)
	line.SetXAxis(xs)
	for el := series.Front(); el != nil; el = el.Next() {
		data := make([]opts.LineData, len(el.Value))
		for i, v := range el.Value {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(fmt.Sprintf("n=%d", el.Key), data)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
