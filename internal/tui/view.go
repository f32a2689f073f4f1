package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"feedpad/internal/api"
	"feedpad/internal/tui/state"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	kindStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	promptStyle   = lipgloss.NewStyle().Bold(true)
)

const listChromeLines = 4

func (m Model) View() string {
	switch m.phase {
	case phaseAuthenticating:
		return "\n  Connecting to " + m.sess.FeedName() + "...\n"
	case phasePin:
		return m.viewPin()
	case phaseFatal:
		return m.viewFatal()
	case phaseDetail:
		return m.viewDetail()
	default:
		return m.viewList()
	}
}

func (m Model) viewPin() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(m.sess.FeedName()) + "\n\n")
	if m.loading {
		b.WriteString("  Checking PIN...\n")
	} else {
		b.WriteString("  " + promptStyle.Render("PIN: ") + strings.Repeat("*", len(m.input)) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n  " + errorStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n  " + helpStyle.Render("enter submit · esc clear · ctrl+c quit") + "\n")
	return b.String()
}

func (m Model) viewFatal() string {
	var b strings.Builder
	b.WriteString("\n  " + errorStyle.Render("Cannot open feed "+m.sess.FeedName()) + "\n\n")
	b.WriteString("  " + m.sess.FatalMessage() + "\n\n")
	b.WriteString("  " + helpStyle.Render("q quit") + "\n")
	return b.String()
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("feed: "+m.sync.FeedName()) + "\n\n")

	if m.mode != inputNone {
		b.WriteString(" " + promptStyle.Render(m.inputPrompt()) + m.input + "\n\n")
	}

	switch {
	case m.sync.Empty():
		b.WriteString(" " + dimStyle.Render("Feed is empty. Press c to paste something.") + "\n")
	case m.sync.Len() == 0:
		b.WriteString(" " + dimStyle.Render("Loading items...") + "\n")
	default:
		height := m.height - listChromeLines
		if m.mode != inputNone {
			height -= 2
		}
		start, end := state.CenteredWindow(m.sync.Len(), m.cursor, height)
		for i := start; i < end; i++ {
			item, _ := m.sync.ItemAt(i)
			line := m.itemLine(item)
			if i == m.cursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(" " + line + "\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(" " + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(" " + helpStyle.Render("enter open · y copy · c paste · r refresh · R rename · d delete · D empty · s save · P pin · L link · q quit") + "\n")
	return b.String()
}

func (m Model) itemLine(item api.Item) string {
	name := item.DisplayName
	if name == "" {
		name = item.Name
	}
	tag := kindStyle.Render(fmt.Sprintf("[%-5s]", item.Kind))
	date := dimStyle.Render(item.Date.Local().Format("Jan _2 15:04"))
	return fmt.Sprintf("%s %s  %s", tag, date, name)
}

func (m Model) inputPrompt() string {
	switch m.mode {
	case inputRename:
		return "rename to: "
	case inputCompose:
		return "paste text: "
	case inputSetPIN:
		return "new PIN: "
	}
	return ""
}

func (m Model) viewDetail() string {
	var b strings.Builder
	name := m.detail.DisplayName
	if name == "" {
		name = m.detail.Name
	}
	b.WriteString(" " + titleStyle.Render(name) + "  " + kindStyle.Render(m.detail.Kind.String()) + "\n\n")

	if m.mode != inputNone {
		b.WriteString(" " + promptStyle.Render(m.inputPrompt()) + m.input + "\n\n")
	}

	switch {
	case m.detail.Kind != api.TextItem:
		b.WriteString(" " + dimStyle.Render("Binary item. y copies images, s saves to disk.") + "\n")
	case !m.textReady:
		b.WriteString(" " + dimStyle.Render("Loading...") + "\n")
	default:
		lines := m.detailLines()
		height := m.detailBodyHeight()
		top := state.ScrollTop(m.detailTop, len(lines), height)
		end := top + height
		if end > len(lines) {
			end = len(lines)
		}
		for _, line := range lines[top:end] {
			b.WriteString(" " + line + "\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(" " + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(" " + helpStyle.Render("j/k scroll · y copy · o open in browser · R rename · d delete · s save · esc back · q quit") + "\n")
	return b.String()
}

func (m Model) detailLines() []string {
	width := m.width - 2
	if width < 20 {
		width = 76
	}
	return wrapText(m.text, width)
}

func (m Model) detailLineCount() int {
	return len(m.detailLines())
}

func (m Model) detailBodyHeight() int {
	height := m.height - listChromeLines
	if height < 3 {
		height = 3
	}
	return height
}

// wrapText breaks text into lines no wider than width, preserving existing
// newlines and breaking on spaces when possible.
func wrapText(text string, width int) []string {
	if width <= 0 {
		width = 76
	}
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		line := raw
		for len(line) > width {
			cut := strings.LastIndex(line[:width], " ")
			if cut <= 0 {
				cut = width
			}
			out = append(out, line[:cut])
			line = strings.TrimLeft(line[cut:], " ")
		}
		out = append(out, line)
	}
	return out
}
