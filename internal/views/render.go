package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	Sidebar      string
	Content      string
	Overlay      string
	StatusLine   string
	StatusIsErr  bool
	Notification string
	Footer       string
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	sidebarStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).PaddingRight(1)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	blockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	coinStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	overlayStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2)
	sectionStyle  = lipgloss.NewStyle().Bold(true)
)

// RenderApp assembles the full frame: header, sidebar + content row, then
// status, notification and footer lines. A non-empty Overlay (modal form,
// confirmation, celebration) replaces the content row, the terminal
// counterpart of the web client's stacked dialogs.
func RenderApp(data AppData) string {
	content := panelStyle.Width(72).Render(data.Content)
	if data.Overlay != "" {
		content = overlayStyle.Width(64).Render(data.Overlay)
	}
	row := content
	if data.Sidebar != "" {
		row = lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(data.Sidebar), content)
	}

	status := statusStyle.Render(data.StatusLine)
	if data.StatusIsErr {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{headerStyle.Render(data.Header), row}
	if data.StatusLine != "" {
		lines = append(lines, status)
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders a description pane through glamour, falling back
// to the raw text when rendering fails.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

type SidebarItem struct {
	Key    string
	Label  string
	Active bool
}

type SidebarData struct {
	Collapsed   bool
	Nickname    string
	AvatarGlyph string
	Level       int
	Coins       int
	Items       []SidebarItem
}

// RenderSidebar draws the navigation rail. Collapsed mode keeps only the
// key column, like the web client's narrow-viewport drawer.
func RenderSidebar(data SidebarData) string {
	var b strings.Builder
	if data.Nickname != "" {
		if data.Collapsed {
			b.WriteString(data.AvatarGlyph + "\n")
		} else {
			b.WriteString(data.AvatarGlyph + " " + data.Nickname + "\n")
			b.WriteString(dimStyle.Render(fmt.Sprintf("nível %d · %s", data.Level, FormatCoins(data.Coins))) + "\n")
		}
		b.WriteString("\n")
	}
	for _, item := range data.Items {
		label := "[" + item.Key + "]"
		if !data.Collapsed {
			label += " " + item.Label
		}
		if item.Active {
			label = selectedStyle.Render(label)
		}
		b.WriteString(label + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatCoins renders a coin amount with its unit.
func FormatCoins(coins int) string {
	return coinStyle.Render(fmt.Sprintf("%d moedas", coins))
}
