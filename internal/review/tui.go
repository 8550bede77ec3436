package review

import (
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/askohli/boardscout/internal/model"
)

// Lines per record item in the list pane (headline + subtitle + blank separator).
const recordItemHeight = 3

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	recordTitleStyle = lipgloss.NewStyle().
				Bold(true)

	recordSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedRecordTitleStyle = lipgloss.NewStyle().
					Bold(true).
					Foreground(lipgloss.Color("15")). // bright white
					Background(lipgloss.Color("24"))  // dark blue bg

	selectedRecordSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(16)

	detailValueStyle = lipgloss.NewStyle()

	snippetDividerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	snippetBodyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))
)

type reviewModel struct {
	role    string // role filter label, "" = all roles
	records []model.JobRecord

	listViewport   viewport.Model
	detailViewport viewport.Model
	activePane     int // 0=list, 1=detail
	cursor         int
	width          int
	height         int
	ready          bool

	wantQuit bool
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.wantQuit = true
			return m, tea.Quit
		case "esc", "b":
			m.wantQuit = false
			return m, tea.Quit
		case "tab", "left", "right":
			m.activePane = 1 - m.activePane
			m.recalcContent()
			return m, nil
		case "up", "k":
			if m.activePane == 0 {
				m.moveCursor(-1)
				return m, nil
			}
		case "down", "j":
			if m.activePane == 0 {
				m.moveCursor(1)
				return m, nil
			}
		case "o":
			if len(m.records) > 0 {
				openURL(m.records[m.cursor].Link)
			}
			return m, nil
		}

		// Remaining keys (and up/down while the detail pane is active)
		// scroll the focused viewport.
		var cmd tea.Cmd
		if m.activePane == 0 {
			m.listViewport, cmd = m.listViewport.Update(msg)
		} else {
			m.detailViewport, cmd = m.detailViewport.Update(msg)
		}
		return m, cmd
	}

	return m, nil
}

func (m *reviewModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.records)-1, 0))
	m.recalcContent()
	m.ensureCursorVisible()
}

func (m *reviewModel) ensureCursorVisible() {
	cursorTop := m.cursor * recordItemHeight
	cursorBottom := cursorTop + recordItemHeight - 1

	if cursorTop < m.listViewport.YOffset {
		m.listViewport.SetYOffset(cursorTop)
	} else if cursorBottom >= m.listViewport.YOffset+m.listViewport.Height {
		m.listViewport.SetYOffset(cursorBottom - m.listViewport.Height + 1)
	}
}

func (m *reviewModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.listViewport = viewport.New(paneWidth, paneHeight)
		m.detailViewport = viewport.New(paneWidth, paneHeight)
		m.ready = true
	} else {
		m.listViewport.Width = paneWidth
		m.listViewport.Height = paneHeight
		m.detailViewport.Width = paneWidth
		m.detailViewport.Height = paneHeight
	}

	m.recalcContent()
}

func (m *reviewModel) recalcContent() {
	m.listViewport.SetContent(renderRecords(m.records, m.cursor, m.activePane == 0))
	m.detailViewport.SetContent(m.renderDetail())
	m.detailViewport.SetYOffset(0)
}

func (m reviewModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	paneWidth := m.listViewport.Width

	roleLabel := m.role
	if roleLabel == "" {
		roleLabel = "all roles"
	}
	listHeader := fmt.Sprintf(" Postings — %s (%d)", roleLabel, len(m.records))
	detailHeader := " Detail"

	var listHeaderRendered, detailHeaderRendered string
	var listBorder, detailBorder lipgloss.Style

	if m.activePane == 0 {
		listHeaderRendered = activeHeaderStyle.Render(listHeader)
		detailHeaderRendered = inactiveHeaderStyle.Render(detailHeader)
		listBorder = activeBorderStyle.Width(paneWidth)
		detailBorder = inactiveBorderStyle.Width(paneWidth)
	} else {
		listHeaderRendered = inactiveHeaderStyle.Render(listHeader)
		detailHeaderRendered = activeHeaderStyle.Render(detailHeader)
		listBorder = inactiveBorderStyle.Width(paneWidth)
		detailBorder = activeBorderStyle.Width(paneWidth)
	}

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth+2).Render(listHeaderRendered),
		" ",
		lipgloss.NewStyle().Width(paneWidth+2).Render(detailHeaderRendered),
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		listBorder.Render(m.listViewport.View()),
		" ",
		detailBorder.Render(m.detailViewport.View()),
	)

	statusText := " ←/→/Tab switch  ↑/↓ cursor/scroll  o open in browser  Esc back  q quit"
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return headerRow + "\n" + panes + "\n" + statusBar
}

func (m reviewModel) renderDetail() string {
	if len(m.records) == 0 {
		return "  (no postings)"
	}
	rec := m.records[m.cursor]

	var b strings.Builder
	addField := func(label, value string) {
		if value == "" || value == model.NoData {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}

	addField("Company", rec.Company)
	addField("Title", rec.Title)
	addField("Role", rec.RoleMatched)
	addField("Location", rec.LocationSearched)
	if !rec.FoundAt.IsZero() {
		addField("Found", rec.FoundAt.Format(model.TimestampLayout))
	}

	b.WriteByte('\n')
	addField("Link", rec.Link)

	if rec.Snippet != model.NoData && rec.Snippet != "" {
		wrapWidth := max(m.detailViewport.Width-4, 20)
		label := "── Snippet "
		fill := strings.Repeat("─", max(wrapWidth-len(label), 3))
		b.WriteByte('\n')
		b.WriteString(snippetDividerStyle.Render(label+fill) + "\n\n")
		b.WriteString(snippetBodyStyle.Render(wordWrap(rec.Snippet, wrapWidth)) + "\n")
	}

	return b.String()
}

func renderRecords(records []model.JobRecord, cursor int, isActive bool) string {
	if len(records) == 0 {
		return "  (no postings)"
	}

	var b strings.Builder
	for i, rec := range records {
		isSelected := isActive && i == cursor

		titleSt := recordTitleStyle
		subtitleSt := recordSubtitleStyle
		prefix := "  "
		if isSelected {
			titleSt = selectedRecordTitleStyle
			subtitleSt = selectedRecordSubtitleStyle
			prefix = "> "
		}

		headline := rec.Company
		if rec.Title != model.NoData && rec.Title != "" {
			headline = rec.Company + " · " + rec.Title
		}
		b.WriteString(prefix)
		b.WriteString(titleSt.Render(headline))
		b.WriteByte('\n')

		found := "n/a"
		if !rec.FoundAt.IsZero() {
			found = rec.FoundAt.Format("2006-01-02")
		}
		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(fmt.Sprintf("%s · %s", rec.RoleMatched, found)))
		b.WriteByte('\n')

		if i < len(records)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sortRecordsByDate(records []model.JobRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].FoundAt.After(records[j].FoundAt)
	})
}

// wordWrap breaks text at word boundaries so no line exceeds width runes.
// Width is measured in runes, not bytes, so multi-byte snippets don't wrap
// early.
func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	lineLen := utf8.RuneCountInString(line)
	for _, w := range words[1:] {
		wLen := utf8.RuneCountInString(w)
		if lineLen+1+wLen <= width {
			line += " " + w
			lineLen += 1 + wLen
		} else {
			lines = append(lines, line)
			line = w
			lineLen = wLen
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// RunReviewTUI launches the split-pane ledger browser for one role filter.
// role may be empty to show every record. Returns wantQuit=true if the user
// pressed q/ctrl+c, false if they pressed esc to return to the picker.
func RunReviewTUI(role string, records []model.JobRecord) (bool, error) {
	sortRecordsByDate(records)

	m := reviewModel{
		role:    role,
		records: records,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	final := result.(reviewModel)
	return final.wantQuit, nil
}
