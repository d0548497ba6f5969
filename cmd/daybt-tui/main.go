// daybt-tui is a terminal viewer for a result document produced by
// daybt-run: aggregate metrics, per-day returns, and the trade log,
// scrollable in a single viewport. The document can come from a
// direct JSON file, or be reconstructed from the SQLite run registry and
// Parquet archive by run ID.
//
// Usage:
//
//	daybt-tui -result result.json
//	daybt-tui -registry runs.db -archive-dir archive/ -run-id <uuid>
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"daybt/internal/domain"
	"daybt/internal/resultstore"
	"daybt/internal/strategyio"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	gainStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func pnlStyle(v float64) lipgloss.Style {
	if v < 0 {
		return lossStyle
	}
	return gainStyle
}

type model struct {
	doc      domain.ResultDocument
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

func initialModel(doc domain.ResultDocument) model {
	return model{doc: doc}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerH := 1
		footerH := 1
		vpHeight := m.height - headerH - footerH
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.MouseWheelEnabled = true
			m.ready = true
			m.viewport.SetContent(m.renderContent())
			return m, nil
		}
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "initializing..."
	}
	header := headerStyle.Render(fmt.Sprintf(
		"daybt results — %d days, %d trades, %.2f%% total return",
		m.doc.AggregateMetrics.TotalDays,
		m.doc.AggregateMetrics.TotalTrades,
		m.doc.AggregateMetrics.TotalReturnPct,
	))
	footer := footerStyle.Render("↑/↓ scroll · q quit")
	return header + "\n" + m.viewport.View() + "\n" + footer
}

func (m model) renderContent() string {
	var b []string

	b = append(b, sectionStyle.Render("Aggregate"))
	agg := m.doc.AggregateMetrics
	b = append(b, fmt.Sprintf("  win rate:     %.2f%%", agg.WinRatePct))
	b = append(b, fmt.Sprintf("  avg/day:      %.2f%%", agg.AvgReturnPerDayPct))
	b = append(b, fmt.Sprintf("  avg sharpe:   %.3f", agg.AvgSharpe))
	b = append(b, fmt.Sprintf("  avg max DD:   %.2f%%", agg.AvgMaxDDPct))
	b = append(b, fmt.Sprintf("  avg PF:       %.3f", agg.AvgProfitFactor))
	b = append(b, fmt.Sprintf("  total PnL:    %.2f", agg.TotalPnL))
	b = append(b, "")

	b = append(b, sectionStyle.Render(fmt.Sprintf("Days (%d)", len(m.doc.DayResults))))
	for _, d := range m.doc.DayResults {
		ret := derefOr(d.TotalReturnPct, 0)
		b = append(b, fmt.Sprintf("  %s %-8s %d trades  %s",
			d.Date, d.Ticker, d.TotalTrades, pnlStyle(ret).Render(fmt.Sprintf("%+.2f%%", ret))))
	}
	b = append(b, "")

	b = append(b, sectionStyle.Render(fmt.Sprintf("Trades (%d)", len(m.doc.Trades))))
	for _, tr := range m.doc.Trades {
		b = append(b, fmt.Sprintf("  %s %-8s %-5s %8.2f -> %8.2f  %s  %s",
			tr.Date, tr.Ticker, tr.Direction, tr.EntryPrice, tr.ExitPrice,
			pnlStyle(tr.PnL).Render(fmt.Sprintf("%+8.2f", tr.PnL)),
			dimStyle.Render(string(tr.ExitReason))))
	}

	joined := ""
	for i, line := range b {
		if i > 0 {
			joined += "\n"
		}
		joined += line
	}
	return joined
}

func derefOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func main() {
	resultPath := flag.String("result", "", "path to a result document JSON file written by daybt-run")
	registryPath := flag.String("registry", "", "path to the SQLite run registry (used with -run-id instead of -result)")
	archiveDir := flag.String("archive-dir", "", "path to the Parquet archive directory (used with -run-id)")
	runID := flag.String("run-id", "", "run ID to look up in the registry/archive instead of -result")
	flag.Parse()

	var doc domain.ResultDocument
	switch {
	case *resultPath != "":
		data, err := os.ReadFile(*resultPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading result file: %v\n", err)
			os.Exit(1)
		}
		doc, err = strategyio.DecodeResult(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "decoding result file: %v\n", err)
			os.Exit(1)
		}

	case *runID != "" && *registryPath != "" && *archiveDir != "":
		registry, err := resultstore.OpenRunRegistry(*registryPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening run registry: %v\n", err)
			os.Exit(1)
		}
		defer registry.Close()

		archive := resultstore.NewParquetArchive(*archiveDir)
		doc, err = resultstore.LoadResult(registry, archive, *runID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading run %s: %v\n", *runID, err)
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "usage: daybt-tui -result result.json")
		fmt.Fprintln(os.Stderr, "   or: daybt-tui -registry runs.db -archive-dir archive/ -run-id <uuid>")
		os.Exit(1)
	}

	m := initialModel(doc)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
