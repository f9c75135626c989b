// Package tui renders a running conformer search in the terminal: a live
// energy trace with acceptance statistics.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/mwillard/confspin/internal/mol"
	"github.com/mwillard/confspin/internal/spin"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// Model drives one search to completion, one accepted conformer per
// update, and keeps every accepted snapshot for the caller to persist
// after the program exits.
type Model struct {
	search   *spin.Search
	target   int
	accepted []*mol.SupraMolecule
	energies []float64
	best     float64
	done     bool
	width    int
	height   int
}

// New builds a live view around a freshly started search.
func New(search *spin.Search, target int) Model {
	initial := search.Initial()
	return Model{
		search:   search,
		target:   target,
		energies: []float64{initial.Energy()},
		best:     initial.Energy(),
		width:    80,
		height:   24,
	}
}

// Accepted returns the conformers collected while the view ran.
func (m Model) Accepted() []*mol.SupraMolecule { return m.accepted }

// Stats returns the search statistics at the current point.
func (m Model) Stats() spin.Stats { return m.search.Stats() }

type stepMsg struct {
	conformer *mol.SupraMolecule
	ok        bool
}

func (m Model) step() tea.Cmd {
	return func() tea.Msg {
		c, ok := m.search.Next()
		return stepMsg{conformer: c, ok: ok}
	}
}

func (m Model) Init() tea.Cmd { return m.step() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case stepMsg:
		if !msg.ok {
			m.done = true
			return m, nil
		}
		m.accepted = append(m.accepted, msg.conformer)
		m.energies = append(m.energies, msg.conformer.Energy())
		if msg.conformer.Energy() < m.best {
			m.best = msg.conformer.Energy()
		}
		return m, m.step()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render("confspin") + dim.Render("  host-guest conformer search") + "\n\n")

	if len(m.energies) > 1 {
		w := m.width - 12
		if w < 20 {
			w = 20
		}
		b.WriteString(asciigraph.Plot(m.energies,
			asciigraph.Height(10),
			asciigraph.Width(w),
			asciigraph.Caption("energy per accepted conformer"),
		))
		b.WriteString("\n\n")
	}

	st := m.search.Stats()
	rate := 0.0
	if st.Proposals > 0 {
		rate = float64(st.Accepted) / float64(st.Proposals)
	}
	b.WriteString(fmt.Sprintf("  %s %s\n",
		white.Render("conformers"),
		green.Render(fmt.Sprintf("%d/%d", st.Accepted, m.target))))
	b.WriteString(fmt.Sprintf("  %s %d   %s %.1f%%\n",
		white.Render("proposals"), st.Proposals,
		white.Render("acceptance"), 100*rate))
	b.WriteString(fmt.Sprintf("  %s %.4f   %s %.4f\n",
		white.Render("current"), m.energies[len(m.energies)-1],
		white.Render("best"), m.best))

	if m.done {
		if st.Exhausted {
			b.WriteString("\n" + yellow.Render("  attempt budget exhausted") + "\n")
		} else {
			b.WriteString("\n" + green.Render("  search complete") + "\n")
		}
		b.WriteString(dim.Render("  press q to exit") + "\n")
	} else {
		b.WriteString("\n" + dim.Render("  searching... q to stop early") + "\n")
	}
	return b.String()
}
