package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wsnlab/kcmc/pkg/genetic"
)

// generationMsg carries one generation report into the TUI.
type generationMsg genetic.Generation

// evolveDoneMsg signals that the evolution loop has finished.
type evolveDoneMsg struct {
	result *genetic.Result
	err    error
}

// evolveModel is the bubbletea model for live evolution progress.
type evolveModel struct {
	key         string
	k, m        int
	generations int

	cancel context.CancelFunc

	last    genetic.Generation
	started bool
	done    bool

	result *genetic.Result
	err    error
}

// newEvolveModel creates a progress model for one evolution run.
func newEvolveModel(key string, k, m, generations int, cancel context.CancelFunc) evolveModel {
	return evolveModel{
		key:         key,
		k:           k,
		m:           m,
		generations: generations,
		cancel:      cancel,
	}
}

func (m evolveModel) Init() tea.Cmd {
	return nil
}

func (m evolveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
		}
	case generationMsg:
		m.last = genetic.Generation(msg)
		m.started = true
	case evolveDoneMsg:
		m.result = msg.result
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m evolveModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Evolving %s", m.key)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("guarantee K%dM%d  ·  q to stop", m.k, m.m)))
	b.WriteString("\n\n")

	if !m.started {
		b.WriteString(StyleDim.Render("  seeding population...\n"))
		return b.String()
	}

	pct := float64(m.last.Number+1) / float64(m.generations) * 100
	b.WriteString(fmt.Sprintf("  generation  %s\n",
		StyleNumber.Render(fmt.Sprintf("%d / %d (%.0f%%)", m.last.Number+1, m.generations, pct))))
	b.WriteString(fmt.Sprintf("  installed   %s\n",
		StyleNumber.Render(fmt.Sprintf("%d sensors", m.last.NumUsed))))
	b.WriteString(fmt.Sprintf("  fitness     %s\n",
		StyleValue.Render(fmt.Sprintf("%.4f", m.last.Fitness))))
	b.WriteString(fmt.Sprintf("  elapsed     %s\n",
		StyleValue.Render(m.last.Elapsed.Round(time.Millisecond).String())))

	if m.last.Improved {
		b.WriteString("\n" + StyleSuccess.Render("  ↓ improved") + "\n")
	}
	return b.String()
}
