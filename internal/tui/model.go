// Package tui is the terminal dashboard served over SSH: a leaderboard
// table with per-collection chart drill-down.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"floorboard/internal/domain"
	"floorboard/internal/service"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Dashboard is the data surface the TUI reads from.
type Dashboard interface {
	GetLeaderboard(ctx context.Context, includeListings bool) ([]domain.EnrichedRecord, error)
	GetCollectionSeries(ctx context.Context, slug string) ([]domain.ChartPoint, error)
}

// Services carries everything a session's model needs.
type Services struct {
	Dashboard Dashboard
	Username  string
}

type view int

const (
	viewLeaderboard view = iota
	viewCollection
)

type leaderboardMsg struct {
	records []domain.EnrichedRecord
	err     error
}

// seriesMsg carries the generation its fetch started under; the model
// drops it when the viewer has since selected another collection.
type seriesMsg struct {
	slug   string
	gen    uint64
	points []domain.ChartPoint
	err    error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	upStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type AppModel struct {
	svc     Services
	session *service.ViewSession

	view    view
	tbl     table.Model
	records []domain.EnrichedRecord

	selected string
	points   []domain.ChartPoint

	width   int
	height  int
	loading bool
	errText string
}

func NewAppModel(svc Services) *AppModel {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Collection", Width: 24},
		{Title: "Floor", Width: 10},
		{Title: "Chg%", Width: 8},
		{Title: "Listed", Width: 8},
		{Title: "24h Vol", Width: 12},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	return &AppModel{
		svc:     svc,
		session: service.NewViewSession(),
		view:    viewLeaderboard,
		tbl:     tbl,
		loading: true,
	}
}

func (m *AppModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if height > 8 {
		m.tbl.SetHeight(height - 6)
	}
}

func (m *AppModel) Init() tea.Cmd {
	return m.fetchLeaderboard()
}

func (m *AppModel) fetchLeaderboard() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		records, err := m.svc.Dashboard.GetLeaderboard(ctx, false)
		return leaderboardMsg{records: records, err: err}
	}
}

func (m *AppModel) fetchSeries(slug string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		points, err := m.svc.Dashboard.GetCollectionSeries(ctx, slug)
		return seriesMsg{slug: slug, gen: gen, points: points, err: err}
	}
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if m.view == viewLeaderboard {
				m.loading = true
				return m, m.fetchLeaderboard()
			}
			gen := m.session.Select(m.selected)
			m.loading = true
			return m, m.fetchSeries(m.selected, gen)
		case "esc":
			if m.view == viewCollection {
				// Invalidate any fetch still in flight.
				m.session.Select("")
				m.view = viewLeaderboard
				m.errText = ""
			}
			return m, nil
		case "enter":
			if m.view == viewLeaderboard && len(m.records) > 0 {
				row := m.tbl.Cursor()
				if row >= 0 && row < len(m.records) {
					slug := domain.NormalizeSlug(m.records[row].Slug)
					gen := m.session.Select(slug)
					m.selected = slug
					m.view = viewCollection
					m.points = nil
					m.loading = true
					m.errText = ""
					return m, m.fetchSeries(slug, gen)
				}
			}
			return m, nil
		}

	case leaderboardMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.records = msg.records
		m.tbl.SetRows(m.leaderboardRows())
		return m, nil

	case seriesMsg:
		if !m.session.Commit(msg.gen) {
			// A later selection superseded this fetch.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.points = msg.points
		return m, nil
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m *AppModel) leaderboardRows() []table.Row {
	rows := make([]table.Row, 0, len(m.records))
	for _, r := range m.records {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.Rank),
			domain.DisplayName(domain.NormalizeSlug(r.Slug)),
			fmt.Sprintf("%.2f", r.FloorPrice),
			fmt.Sprintf("%+.1f", r.FloorChangePct()),
			fmt.Sprintf("%d", r.Listed),
			fmt.Sprintf("%.0f", r.DayVolume),
		})
	}
	return rows
}

func (m *AppModel) View() string {
	var b strings.Builder

	switch m.view {
	case viewLeaderboard:
		b.WriteString(titleStyle.Render("Floorboard :: collection leaderboard"))
		b.WriteString("\n\n")
		if m.loading {
			b.WriteString(statusStyle.Render("loading..."))
		} else if m.errText != "" {
			b.WriteString(errStyle.Render("error: " + m.errText))
		} else {
			b.WriteString(m.tbl.View())
		}
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("enter: open  r: refresh  q: quit"))

	case viewCollection:
		b.WriteString(titleStyle.Render("Floorboard :: " + domain.DisplayName(m.selected)))
		b.WriteString("\n\n")
		switch {
		case m.loading:
			b.WriteString(statusStyle.Render("loading..."))
		case m.errText != "":
			b.WriteString(errStyle.Render("error: " + m.errText))
		case len(m.points) == 0:
			b.WriteString(statusStyle.Render("no chart data"))
		default:
			b.WriteString(m.renderSeries())
		}
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("esc: back  r: refresh  q: quit"))
	}

	if m.svc.Username != "" {
		b.WriteString(statusStyle.Render("   " + m.svc.Username))
	}
	return b.String()
}

// renderSeries draws a coarse sparkline plus the latest observations.
func (m *AppModel) renderSeries() string {
	points := m.points
	if len(points) == 0 {
		return ""
	}

	lo, hi := points[0].Floor, points[0].Floor
	for _, p := range points {
		if p.Floor < lo {
			lo = p.Floor
		}
		if p.Floor > hi {
			hi = p.Floor
		}
	}

	ramp := []rune("▁▂▃▄▅▆▇█")
	var spark strings.Builder
	for _, p := range points {
		idx := 0
		if hi > lo {
			idx = int((p.Floor - lo) / (hi - lo) * float64(len(ramp)-1))
		}
		spark.WriteRune(ramp[idx])
	}

	last := points[len(points)-1]
	change := ""
	if len(points) > 1 {
		prev := points[len(points)-2].Floor
		diff := last.Floor - prev
		if diff >= 0 {
			change = upStyle.Render(fmt.Sprintf(" (+%.2f)", diff))
		} else {
			change = downStyle.Render(fmt.Sprintf(" (%.2f)", diff))
		}
	}

	var b strings.Builder
	b.WriteString(spark.String())
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("floor %.2f SEI%s   range %.2f to %.2f\n", last.Floor, change, lo, hi))
	b.WriteString(fmt.Sprintf("24h avg price %.2f   24h volume %.0f\n", last.AveragePrice24h, last.Volume24h))
	b.WriteString(statusStyle.Render(fmt.Sprintf("%d points through %s", len(points), last.Timestamp.UTC().Format("2006-01-02 15:04"))))
	return b.String()
}
