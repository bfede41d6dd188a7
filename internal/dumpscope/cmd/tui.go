package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"dumpscope/internal/analysis"
	"dumpscope/internal/dump"
	"dumpscope/internal/dumpscope/styles"
	"dumpscope/internal/search"
	"dumpscope/internal/session"
	"dumpscope/internal/ui/colorize"
)

type viewMode int

const (
	viewDump viewMode = iota
	viewFindings
	viewSummary
)

type popupMode int

const (
	popupNone popupMode = iota
	popupSearchAscii
	popupSearchHex
	popupGoto
)

// chrome is the number of terminal rows used by the status and menu bars.
const chrome = 3

type model struct {
	filepath string
	opts     session.Options
	sess     *session.Session

	mode  viewMode
	popup popupMode

	findingsList list.Model
	summaryView  viewport.Model
	input        textinput.Model
	spinner      spinner.Model

	loading bool
	loadErr error
	status  string
	scroll  int

	width  int
	height int
}

// Message types
type analyzedMsg struct {
	sess *session.Session
	err  error
}

// Commands
func analyzeCmd(filepath string, opts session.Options) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(filepath)
		if err != nil {
			return analyzedMsg{err: err}
		}
		defer f.Close()

		s, err := session.Load(f, opts)
		return analyzedMsg{sess: s, err: err}
	}
}

// findingItem is one row of the findings list: a signature match or a
// detected string, jumpable with enter.
type findingItem struct {
	offset     int
	kind       string
	label      string
	filterTerm string
}

func (i findingItem) Title() string       { return fmt.Sprintf("%08x  %s", i.offset, i.label) }
func (i findingItem) FilterValue() string { return i.filterTerm }

// Custom item delegate for the findings list
type findingDelegate struct{}

func (d findingDelegate) Height() int                               { return 1 }
func (d findingDelegate) Spacing() int                              { return 0 }
func (d findingDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d findingDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(findingItem)
	if !ok {
		return
	}

	var addrStyle lipgloss.Style
	var indicator string

	if index == m.Index() {
		indicator = ">"
		addrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	} else {
		indicator = " "
		addrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	}

	kindStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	if i.kind == "string" {
		kindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	}

	fmt.Fprintf(w, " %s  %s  %s  %s",
		indicator,
		addrStyle.Render(fmt.Sprintf("%08x", i.offset)),
		kindStyle.Render(fmt.Sprintf("%-9s", i.kind)),
		i.label)
}

func NewModel(filepath string, opts session.Options) model {
	delegate := findingDelegate{}
	findings := list.New([]list.Item{}, delegate, 80, 24)
	findings.SetShowStatusBar(false)
	findings.SetFilteringEnabled(true)
	findings.Title = "Findings"
	findings.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		MarginLeft(2)
	findings.SetShowHelp(true)

	sv := viewport.New()
	sv.SetWidth(80)
	sv.SetHeight(24)

	ti := textinput.New()
	ti.Prompt = "> "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	return model{
		filepath:     filepath,
		opts:         opts,
		mode:         viewDump,
		findingsList: findings,
		summaryView:  sv,
		input:        ti,
		spinner:      s,
		loading:      true,
		width:        80,
		height:       24,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		analyzeCmd(m.filepath, m.opts),
		m.spinner.Tick,
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case analyzedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			return m, tea.Quit
		}
		m.sess = msg.sess
		m.updateFindingsList()
		m.updateSummaryView()
		sum := m.sess.Summary()
		m.status = fmt.Sprintf("loaded %d bytes, %d signatures, %d strings",
			m.sess.Buffer().Len(), sum.PatternMatchCount, sum.AsciiRunCount)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.loading {
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		if msg.Width != m.width || msg.Height != m.height {
			m.width = msg.Width
			m.height = msg.Height
			m.findingsList.SetWidth(msg.Width)
			m.findingsList.SetHeight(msg.Height - 2)
			m.summaryView.SetWidth(msg.Width)
			m.summaryView.SetHeight(msg.Height - 2)
			m.updateSummaryView()
		}

	case tea.KeyMsg:
		if m.sess == nil {
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.popup != popupNone {
			return m.updatePopup(msg)
		}

		// If the findings list is filtering, let it handle the keys first
		if m.mode == viewFindings && m.findingsList.FilterState() == list.Filtering {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			}
			m.findingsList, cmd = m.findingsList.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "/":
			return m.openPopup(popupSearchAscii, "ascii text")
		case "x":
			return m.openPopup(popupSearchHex, "hex bytes, ?? for wildcard")
		case "g":
			return m.openPopup(popupGoto, "address (hex)")
		case "f":
			m.mode = viewFindings
			return m, nil
		case "s":
			m.mode = viewSummary
			return m, nil
		case "tab":
			switch m.mode {
			case viewDump:
				m.mode = viewFindings
			case viewFindings:
				m.mode = viewSummary
			case viewSummary:
				m.mode = viewDump
			}
			return m, nil
		case "esc":
			m.mode = viewDump
			return m, nil
		}

		switch m.mode {
		case viewDump:
			return m.updateDumpKeys(msg)
		case viewFindings:
			if msg.String() == "enter" {
				if item, ok := m.findingsList.SelectedItem().(findingItem); ok {
					if err := m.sess.Jump(item.offset); err == nil {
						m.mode = viewDump
						m.ensureVisible()
						m.status = fmt.Sprintf("jumped to 0x%X", item.offset)
					}
				}
				return m, nil
			}
			m.findingsList, cmd = m.findingsList.Update(msg)
			return m, cmd
		case viewSummary:
			m.summaryView, cmd = m.summaryView.Update(msg)
			return m, cmd
		}
	}

	if m.popup != popupNone {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateDumpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.dumpPaneHeight()
	switch msg.String() {
	case "up", "k":
		m.sess.MoveSelection(-1)
	case "down", "j":
		m.sess.MoveSelection(1)
	case "pgup", "b":
		m.sess.MoveSelection(-page)
	case "pgdown", "space":
		m.sess.MoveSelection(page)
	case "home":
		m.sess.MoveSelection(-m.sess.Index().Len())
	case "end":
		m.sess.MoveSelection(m.sess.Index().Len())
	case "n":
		m.sess.NextMatch()
		m.updateMatchStatus()
	case "N":
		m.sess.PrevMatch()
		m.updateMatchStatus()
	}
	m.ensureVisible()
	return m, nil
}

func (m *model) updateMatchStatus() {
	if m.sess.Cursor() < 0 {
		m.status = "no active search results"
		return
	}
	m.status = fmt.Sprintf("match %d/%d at 0x%X",
		m.sess.Cursor()+1, len(m.sess.Results()), m.sess.CurrentMatch())
}

func (m model) openPopup(p popupMode, placeholder string) (tea.Model, tea.Cmd) {
	m.popup = p
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.status = ""
	return m, m.input.Focus()
}

func (m model) updatePopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.popup = popupNone
		m.input.Blur()
		return m, nil
	case "enter":
		return m.executePopup()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// executePopup runs the pending search or jump. Validation errors keep the
// popup open with the message shown; success closes it.
func (m model) executePopup() (tea.Model, tea.Cmd) {
	value := m.input.Value()

	switch m.popup {
	case popupSearchAscii, popupSearchHex:
		var q search.Query
		var err error
		if m.popup == popupSearchHex {
			q, err = search.ParseHexQuery(value)
		} else {
			q, err = search.NewAsciiQuery(value)
		}
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		n := m.sess.Search(q)
		if n == 0 {
			m.status = fmt.Sprintf("no matches for %q", value)
		} else {
			m.status = fmt.Sprintf("%d matches, n/N to cycle", n)
		}

	case popupGoto:
		addr, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(value), "0x"), 16, 64)
		if err != nil {
			m.status = "invalid address format"
			return m, nil
		}
		if err := m.sess.Jump(int(addr)); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("jumped to 0x%X", addr)
	}

	m.popup = popupNone
	m.input.Blur()
	m.mode = viewDump
	m.ensureVisible()
	return m, nil
}

func (m *model) dumpPaneHeight() int {
	h := m.height - chrome
	if h < 1 {
		h = 1
	}
	return h
}

// ensureVisible scrolls the dump pane so the selected row stays in view.
func (m *model) ensureVisible() {
	height := m.dumpPaneHeight()
	sel := m.sess.Selected()
	if sel < m.scroll {
		m.scroll = sel
	} else if sel >= m.scroll+height {
		m.scroll = sel - height + 1
	}
}

func (m *model) updateFindingsList() {
	ix := m.sess.Index()
	items := make([]list.Item, 0, len(ix.Matches())+len(ix.Runs()))
	for _, pm := range ix.Matches() {
		items = append(items, findingItem{
			offset:     pm.Offset,
			kind:       "signature",
			label:      pm.Name,
			filterTerm: fmt.Sprintf("%x %s", pm.Offset, pm.Name),
		})
	}
	for _, r := range ix.Runs() {
		label := fmt.Sprintf("%q", r.Preview())
		items = append(items, findingItem{
			offset:     r.Start,
			kind:       "string",
			label:      label,
			filterTerm: fmt.Sprintf("%x %s", r.Start, r.Text),
		})
	}
	m.findingsList.SetItems(items)
	m.findingsList.Title = fmt.Sprintf("Findings (%d total)", len(items))
}

func (m *model) updateSummaryView() {
	if m.sess == nil {
		return
	}
	sum := m.sess.Summary()
	buf := m.sess.Buffer()

	markdown := fmt.Sprintf(`# Dump Summary

| | |
|---|---|
| File | %s |
| Size | %d bytes |
| Rows | %d × %d bytes |
| Signature matches | %d |
| ASCII strings | %d |

## Keys

- up/down, pgup/pgdown: navigate rows
- `+"`/`"+`: search ascii, `+"`x`"+`: search hex (?? wildcard), `+"`g`"+`: go to address
- `+"`n`"+`/`+"`N`"+`: next/previous match
- `+"`f`"+`: findings, `+"`s`"+`: summary, tab: cycle views, `+"`q`"+`: quit
`,
		m.filepath, buf.Len(), sum.EntryCount, buf.RowWidth(),
		sum.PatternMatchCount, sum.AsciiRunCount)

	width := m.width
	if width == 0 {
		width = 80
	}
	renderer := styles.GetMarkdownRenderer(width - 2)
	rendered, _ := renderer.Render(markdown)
	m.summaryView.SetContent(strings.TrimSuffix(rendered, "\n"))
}

func (m model) View() string {
	if m.loadErr != nil {
		return fmt.Sprintf("error: %v\n", m.loadErr)
	}
	if m.loading {
		return fmt.Sprintf("\n  %s Analyzing %s...\n", m.spinner.View(), m.filepath)
	}

	var content string
	switch m.mode {
	case viewFindings:
		content = m.findingsList.View()
	case viewSummary:
		content = m.summaryView.View()
	default:
		content = m.viewDumpPane()
	}

	return content + "\n" + m.statusBar() + "\n" + m.menuBar()
}

// viewDumpPane renders the two-column dump view: hex rows on the left,
// details of the selected entry on the right.
func (m model) viewDumpPane() string {
	height := m.dumpPaneHeight()
	leftWidth := m.width/2 - 1
	rightWidth := m.width - leftWidth - 1

	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	taggedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	normalStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	entries := m.sess.Entries()
	resultRows := make(map[int]bool, len(m.sess.Results()))
	for _, off := range m.sess.Results() {
		resultRows[m.sess.Buffer().RowForAddress(off)] = true
	}

	lines := make([]string, 0, height)
	for i := m.scroll; i < len(entries) && i < m.scroll+height; i++ {
		e := entries[i]
		line := dump.HexLine(e.Address, e.Bytes, m.sess.Buffer().RowWidth())
		if tags := rowTags(e); tags != "" {
			line += "  " + tags
		}
		if resultRows[i] {
			line = "*" + line
		} else {
			line = " " + line
		}

		style := normalStyle
		switch {
		case i == m.sess.Selected():
			style = selectedStyle
			line = ">" + line[1:]
		case e.Tagged():
			style = taggedStyle
		}
		lines = append(lines, style.MaxWidth(leftWidth).Render(line))
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(height).
		Render(strings.Join(lines, "\n"))

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		PaddingLeft(1).
		Render(m.viewDetails(rightWidth - 2))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func rowTags(e analysis.Entry) string {
	var tags []string
	for _, pm := range e.Matches {
		tags = append(tags, pm.Name)
	}
	for range e.Runs {
		tags = append(tags, "str")
	}
	return strings.Join(tags, ",")
}

func (m model) viewDetails(width int) string {
	e := m.sess.SelectedEntry()
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s 0x%08X\n", labelStyle.Render("Address:"), e.Address)
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Bytes:"), dump.HexBytes(e.Bytes))
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Text:"), analysis.EscapeUnprintable(e.Bytes))

	if len(e.Matches) > 0 {
		sb.WriteString(labelStyle.Render("Signatures:") + "\n")
		for _, pm := range e.Matches {
			fmt.Fprintf(&sb, "  %s at 0x%X (%d bytes)\n", pm.Name, pm.Offset, pm.Length)
		}
	}
	if len(e.Runs) > 0 {
		sb.WriteString(labelStyle.Render("Strings:") + "\n")
		for _, r := range e.Runs {
			fmt.Fprintf(&sb, "  0x%X %q\n", r.Start, r.Preview())
			if sym := r.DemangledSymbol(); sym != "" {
				fmt.Fprintf(&sb, "    demangled: %s\n", sym)
			}
		}
	}

	if q := m.sess.ActiveQuery(); q != nil {
		fmt.Fprintf(&sb, "%s %q (%d matches)\n", labelStyle.Render("Query:"), q.Text, len(m.sess.Results()))
	}

	sb.WriteString(labelStyle.Render("Context:") + "\n")
	start, ctx := m.sess.Context(e.Index, m.sess.ContextRadius())
	sb.WriteString(colorize.HexDump(contextDump(start, ctx, m.sess.Buffer().RowWidth())))

	return lipgloss.NewStyle().MaxWidth(width).Render(sb.String())
}

// contextDump formats a context slice as aligned hexdump lines starting at
// the row boundary below start.
func contextDump(start int, ctx []byte, width int) string {
	if len(ctx) == 0 {
		return "(empty)\n"
	}
	var sb strings.Builder
	base := start - start%width
	for addr := base; addr < start+len(ctx); addr += width {
		lo := addr
		if lo < start {
			lo = start
		}
		hi := addr + width
		if hi > start+len(ctx) {
			hi = start + len(ctx)
		}
		sb.WriteString(dump.HexLine(lo, ctx[lo-start:hi-start], width))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m model) statusBar() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	sum := m.sess.Summary()
	left := fmt.Sprintf(" Total Entries: %d | Patterns Detected: %d | ASCII Strings Found: %d ",
		sum.EntryCount, sum.PatternMatchCount, sum.AsciiRunCount)
	if m.status != "" {
		left += "| " + m.status
	}
	return style.Render(left)
}

func (m model) menuBar() string {
	var menu string
	switch {
	case m.popup == popupSearchAscii:
		menu = " Search ascii: " + m.input.View() + "  (enter to search, esc to cancel)"
	case m.popup == popupSearchHex:
		menu = " Search hex: " + m.input.View() + "  (enter to search, esc to cancel)"
	case m.popup == popupGoto:
		menu = " Go to address: " + m.input.View() + "  (enter to jump, esc to cancel)"
	case m.mode == viewFindings:
		menu = " Enter: jump to finding • S: summary • Tab: cycle • Q: quit "
	case m.mode == viewSummary:
		menu = " F: findings • Tab: cycle • Q: quit "
	default:
		menu = " ↑↓: navigate • /: search • X: hex search • G: go to • N: next match • F: findings • Q: quit "
	}

	menuStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1).
		Width(m.width)

	return menuStyle.Render(menu)
}
