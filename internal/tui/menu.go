// Package tui is the interactive menu over the catalog: lookups and
// network analyses without remembering subcommand names. Every failure
// is shown and returns to the menu rather than exiting.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/geo"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/graph"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/report"
)

const viewportHeight = 20

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	paneStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Deps are the services the menu drives. SnapshotPath is where a catalog
// refresh writes its snapshot.
type Deps struct {
	Index        *catalog.Index
	Source       catalog.Source
	Geocoder     *geo.Geocoder
	SnapshotPath string
	Log          *zap.SugaredLogger
}

type action struct {
	title  string
	prompt string
	run    func(ctx context.Context, d *Deps, input string) (string, error)
}

var actions = []action{
	{
		title:  "Pattern details",
		prompt: "Pattern name or id",
		run: func(ctx context.Context, d *Deps, input string) (string, error) {
			p, err := d.Index.FindPattern(parseSelector(input))
			if err != nil {
				return "", err
			}
			if err := d.Index.HydratePattern(ctx, p); err != nil {
				return "", err
			}
			var labels []string
			for _, id := range p.RecommendedYarnIDs {
				y, err := d.Index.FindYarn(catalog.Selector{ID: id})
				if errors.Is(err, catalog.ErrNotFound) {
					continue
				}
				if err != nil {
					return "", err
				}
				labels = append(labels, y.Label())
			}
			return report.Pattern(p, labels), nil
		},
	},
	{
		title:  "Yarn details",
		prompt: "Yarn name or id",
		run: func(ctx context.Context, d *Deps, input string) (string, error) {
			y, err := d.Index.FindYarn(parseSelector(input))
			if err != nil {
				return "", err
			}
			if err := d.Index.HydrateYarn(ctx, y); err != nil {
				return "", err
			}
			return report.Yarn(y), nil
		},
	},
	{
		title:  "Shops in a city",
		prompt: "City",
		run: func(ctx context.Context, d *Deps, input string) (string, error) {
			city := catalog.NormalizeName(input)
			return report.Shops(city, d.Index.ShopsInCity(city)), nil
		},
	},
	{
		title:  "Designer yarn network",
		prompt: "Designer name",
		run: func(ctx context.Context, d *Deps, input string) (string, error) {
			net, err := graph.BuildYarnNetwork(ctx, d.Index, input)
			if err != nil {
				return "", err
			}
			return report.YarnNetwork(net), nil
		},
	},
	{
		title:  "Shop proximity network",
		prompt: "City",
		run: func(ctx context.Context, d *Deps, input string) (string, error) {
			center, err := d.Geocoder.Locate(ctx, input)
			if err != nil {
				return "", err
			}
			net := graph.BuildShopNetwork(d.Index, center, graph.DefaultRadiusMiles, graph.TopShopCount)
			return report.ShopNetwork(input, net), nil
		},
	},
	{
		title:  "Yarn alternatives for a pattern",
		prompt: "Pattern name or id",
		run: func(ctx context.Context, d *Deps, input string) (string, error) {
			p, err := d.Index.FindPattern(parseSelector(input))
			if err != nil {
				return "", err
			}
			alts, err := graph.FindAlternatives(ctx, d.Index, p)
			if err != nil {
				return "", err
			}
			return report.Alternatives(alts), nil
		},
	},
	{
		title: "Refresh catalog",
	},
}

func parseSelector(arg string) catalog.Selector {
	if id, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil {
		return catalog.Selector{ID: id}
	}
	return catalog.Selector{Name: arg}
}

type state int

const (
	stateMenu state = iota
	stateInput
	stateWorking
	stateResult
)

type resultMsg struct {
	text     string
	newIndex *catalog.Index
	err      error
}

type model struct {
	deps     *Deps
	state    state
	cursor   int
	selected int
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	err      error
}

func newModel(deps *Deps) model {
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	vp := viewport.New(100, viewportHeight)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		PaddingRight(2)

	return model{deps: deps, input: ti, spinner: s, viewport: vp}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case stateMenu:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(actions)-1 {
					m.cursor++
				}
			case "enter":
				m.selected = m.cursor
				m.err = nil
				if actions[m.selected].prompt == "" {
					m.state = stateWorking
					return m, tea.Batch(m.spinner.Tick, m.refresh())
				}
				m.state = stateInput
				m.input.Placeholder = actions[m.selected].prompt
				m.input.SetValue("")
				m.input.Focus()
				return m, textinput.Blink
			}
		case stateInput:
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.state = stateMenu
			case "enter":
				value := strings.TrimSpace(m.input.Value())
				if value == "" {
					return m, nil
				}
				m.state = stateWorking
				return m, tea.Batch(m.spinner.Tick, m.work(m.selected, value))
			default:
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case stateWorking:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case stateResult:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc", "enter":
				m.state = stateMenu
			default:
				m.viewport, cmd = m.viewport.Update(msg)
				cmds = append(cmds, cmd)
			}
		}

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case resultMsg:
		if msg.newIndex != nil {
			m.deps.Index = msg.newIndex
		}
		if msg.err != nil {
			m.err = msg.err
			m.state = stateMenu
			break
		}
		m.viewport.SetContent(msg.text)
		m.viewport.GotoTop()
		m.state = stateResult
	}

	return m, tea.Batch(cmds...)
}

// work runs one menu action off the update loop.
func (m model) work(idx int, input string) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		text, err := actions[idx].run(context.Background(), deps, input)
		return resultMsg{text: text, err: err}
	}
}

// refresh re-fetches the catalog and rewrites the snapshot.
func (m model) refresh() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ix := catalog.NewIndex(deps.Source, deps.Log)
		if err := ix.Load(context.Background()); err != nil {
			return resultMsg{err: err}
		}
		snap := ix.Snapshot()
		if err := snap.WriteFile(deps.SnapshotPath); err != nil {
			return resultMsg{err: err}
		}
		text := fmt.Sprintf("\n  Refreshed: %d patterns, %d shops, %d yarns.\n  Snapshot written to %s\n",
			len(snap.Patterns), len(snap.Shops), len(snap.Yarns), deps.SnapshotPath)
		return resultMsg{text: text, newIndex: ix}
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Fiber Arts Finder"))
	b.WriteString("\n\n")

	switch m.state {
	case stateMenu:
		for i, a := range actions {
			cursor := "  "
			line := a.title
			if i == m.cursor {
				cursor = cursorStyle.Render("> ")
				line = cursorStyle.Render(a.title)
			}
			fmt.Fprintf(&b, "%s%s\n", cursor, line)
		}
		if m.err != nil {
			b.WriteString("\n" + errorStyle.Render(friendlyError(m.err)) + "\n")
		}
		b.WriteString("\n" + subtleStyle.Render("up/down to move, enter to select, q to quit"))
	case stateInput:
		fmt.Fprintf(&b, "%s:\n\n%s\n", actions[m.selected].prompt, m.input.View())
		b.WriteString("\n" + subtleStyle.Render("enter to run, esc to go back"))
	case stateWorking:
		fmt.Fprintf(&b, "%s %s...\n", m.spinner.View(), actions[m.selected].title)
	case stateResult:
		b.WriteString(paneStyle.Render(m.viewport.View()))
		b.WriteString("\n" + subtleStyle.Render("up/down to scroll, esc for menu, q to quit"))
	}
	return b.String()
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return "Nothing in the catalog matches that. Check the spelling, or refresh the catalog."
	case errors.Is(err, geo.ErrNoMatch):
		return "No location found for that city."
	default:
		return "Error: " + err.Error()
	}
}

// Run starts the interactive menu and blocks until the user quits.
func Run(deps Deps) error {
	p := tea.NewProgram(newModel(&deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
