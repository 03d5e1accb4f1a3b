// ABOUTME: Interactive import prompts using bubbletea
// ABOUTME: Year clarification and duplicate merge confirmation dialogs
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/rolo/models"
)

var (
	promptBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(1, 2).
			Width(64)

	promptTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)

	sampleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	contactCardStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				Padding(0, 1).
				Width(30)
)

// yearModel asks for the year to apply to year-less date tokens.
type yearModel struct {
	input    textinput.Model
	samples  []string
	year     int
	accepted bool
	done     bool
	errMsg   string
}

func newYearModel(samples []string) yearModel {
	input := textinput.New()
	input.Placeholder = "2024"
	input.CharLimit = 4
	input.Width = 6
	input.Focus()

	return yearModel{input: input, samples: samples}
}

func (m yearModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m yearModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			year, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
			if err != nil || year < 1900 || year > 2100 {
				m.errMsg = "enter a 4-digit year between 1900 and 2100"
				return m, nil
			}
			m.year = year
			m.accepted = true
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m yearModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptTitleStyle.Render("Some dates have no year"))
	b.WriteString("\n\n")
	b.WriteString("Examples: " + sampleStyle.Render(strings.Join(m.samples, ", ")))
	b.WriteString("\n\nWhich year should these dates use?\n\n")
	b.WriteString(m.input.View())
	if m.errMsg != "" {
		b.WriteString("\n" + sampleStyle.Render(m.errMsg))
	}
	b.WriteString("\n\n" + helpStyle.Render("enter: apply • esc: skip these dates"))

	return promptBoxStyle.Render(b.String())
}

// mergeModel asks whether a candidate row is the same person as an existing
// contact.
type mergeModel struct {
	existing  *models.Contact
	candidate *models.Contact
	approved  bool
	done      bool
}

func (m mergeModel) Init() tea.Cmd {
	return nil
}

func (m mergeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y", "enter":
			m.approved = true
			m.done = true
			return m, tea.Quit
		case "n", "N", "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m mergeModel) View() string {
	if m.done {
		return ""
	}

	cards := lipgloss.JoinHorizontal(
		lipgloss.Top,
		contactCardStyle.Render("EXISTING\n\n"+contactSummary(m.existing)),
		contactCardStyle.Render("INCOMING\n\n"+contactSummary(m.candidate)),
	)

	var b strings.Builder
	b.WriteString(promptTitleStyle.Render("Possible duplicate found"))
	b.WriteString("\n\n")
	b.WriteString(cards)
	b.WriteString("\n\n" + helpStyle.Render("y: merge into existing • n: keep as separate contact"))

	return promptBoxStyle.Render(b.String())
}

func contactSummary(c *models.Contact) string {
	lines := []string{c.Name}
	if c.Email != "" {
		lines = append(lines, c.Email)
	}
	if c.Firm != "" {
		lines = append(lines, c.Firm)
	}
	if c.Phone != "" {
		lines = append(lines, c.Phone)
	}
	if len(c.Emails) > 0 {
		lines = append(lines, fmt.Sprintf("%d email event(s)", len(c.Emails)))
	}
	return strings.Join(lines, "\n")
}

// TerminalPrompts answers the import pipeline's clarification requests with
// interactive dialogs. It satisfies the importer's YearResolver and
// MergeConfirmer interfaces.
type TerminalPrompts struct{}

func (TerminalPrompts) ResolveYear(ctx context.Context, samples []string) (int, bool, error) {
	program := tea.NewProgram(newYearModel(samples), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return 0, false, fmt.Errorf("year prompt failed: %w", err)
	}

	m := final.(yearModel)
	return m.year, m.accepted, nil
}

func (TerminalPrompts) ConfirmMerge(ctx context.Context, existing, candidate *models.Contact) (bool, error) {
	program := tea.NewProgram(mergeModel{existing: existing, candidate: candidate}, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("merge prompt failed: %w", err)
	}

	m := final.(mergeModel)
	return m.approved, nil
}
