package tui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
	"github.com/evanschultz/sortboard/internal/app"
	"github.com/evanschultz/sortboard/internal/domain"
)

// Service is the board surface the terminal drives. Calls are made from
// Update so gestures reach the service in the order the terminal saw them.
type Service interface {
	View(context.Context) app.BoardView
	StartDrag(context.Context, string) (app.DragResult, error)
	DragOver(context.Context, string, string) (app.DragResult, error)
	EndDrag(context.Context, string, string) (app.DragResult, error)
	Reset(context.Context) (app.DragResult, error)
	ListDragEvents(context.Context, app.DragEventFilter) ([]domain.DragEvent, error)
}

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// Board geometry shared by rendering and mouse hit testing. Rows are relative
// to the top of the board: border, label, rule, then one row per item.
const (
	boardTop     = 2
	columnGap    = 1
	itemRowStart = 3
)

const journalViewWindow = 12

// inputMode identifies the modal surface currently on top of the board.
type inputMode int

const (
	modeNone inputMode = iota
	modeJournal
)

// dragInput records which device owns the current drag.
type dragInput int

const (
	dragNone dragInput = iota
	dragMouse
	dragKeyboard
)

// loadedMsg carries the initial board view.
type loadedMsg struct {
	view app.BoardView
}

// Model is the bubbletea model for the drag board.
type Model struct {
	svc     Service
	keys    keyMap
	help    help.Model
	display DisplayConfig
	bodies  *cardBodyRenderer

	ready  bool
	width  int
	height int
	status string

	view app.BoardView

	mode         inputMode
	journalLimit int
	journal      []domain.DragEvent
	journalErr   error

	focusContainer int
	focusItem      int

	drag     dragInput
	overID   string
	pointerX int
	pointerY int
}

// NewModel constructs a new value for this package.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		svc:          svc,
		keys:         newKeyMap(),
		help:         h,
		display:      DefaultDisplayConfig(),
		bodies:       &cardBodyRenderer{},
		status:       "loading...",
		journalLimit: app.DefaultEventLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return m.loadBoard
}

// loadBoard reads the current arrangement from the service.
func (m Model) loadBoard() tea.Msg {
	return loadedMsg{view: m.svc.View(context.Background())}
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.view = msg.view
		m.ready = true
		m.status = "ready"
		m.clampFocus()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg)
	}
	return m, nil
}

// handleKey routes one key press by mode.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == modeJournal {
		if key.Matches(msg, m.keys.cancel, m.keys.journal, m.keys.quit) {
			m.mode = modeNone
		}
		return m, nil
	}
	if m.help.ShowAll {
		if key.Matches(msg, m.keys.cancel, m.keys.toggleHelp, m.keys.quit) {
			m.help.ShowAll = false
		}
		return m, nil
	}
	if m.drag != dragNone {
		return m.handleDragKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = true
	case key.Matches(msg, m.keys.moveLeft):
		m.focusContainer--
		m.clampFocus()
	case key.Matches(msg, m.keys.moveRight):
		m.focusContainer++
		m.clampFocus()
	case key.Matches(msg, m.keys.moveUp):
		m.focusItem--
		m.clampFocus()
	case key.Matches(msg, m.keys.moveDown):
		m.focusItem++
		m.clampFocus()
	case key.Matches(msg, m.keys.pickUp):
		m.pickUpFocused()
	case key.Matches(msg, m.keys.journal):
		m.openJournal()
	case key.Matches(msg, m.keys.copyID):
		m.copyFocusedID()
	case key.Matches(msg, m.keys.reset):
		m.resetBoard()
	}
	return m, nil
}

// handleDragKey handles keys while an item is held.
func (m Model) handleDragKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.endDrag("")
		return m, nil
	case key.Matches(msg, m.keys.quit):
		m.endDrag("")
		return m, tea.Quit
	}
	if m.drag != dragKeyboard {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.drop):
		m.endDrag(m.overID)
	case key.Matches(msg, m.keys.moveLeft):
		m.hoverContainer(-1)
	case key.Matches(msg, m.keys.moveRight):
		m.hoverContainer(1)
	case key.Matches(msg, m.keys.moveUp):
		m.hoverItem(-1)
	case key.Matches(msg, m.keys.moveDown):
		m.hoverItem(1)
	}
	return m, nil
}

// handleMouseClick picks up the item under the pointer.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if !m.display.Mouse || m.mode != modeNone || m.help.ShowAll {
		return m, nil
	}
	if msg.Button != tea.MouseLeft || m.drag != dragNone {
		return m, nil
	}
	m.pointerX, m.pointerY = msg.X, msg.Y
	ci, ii, ok := m.hitTest(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	m.focusContainer = ci
	if ii < 0 {
		m.focusItem = 0
		return m, nil
	}
	m.focusItem = ii
	itemID := m.view.Board.Containers[ci].Items[ii].ID
	m.apply(m.svc.StartDrag(context.Background(), itemID))
	m.drag = dragMouse
	m.overID = itemID
	return m, nil
}

// handleMouseMotion sends a drag-over whenever the hovered target changes.
func (m Model) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	if m.drag != dragMouse {
		return m, nil
	}
	m.pointerX, m.pointerY = msg.X, msg.Y
	over := m.overAt(msg.X, msg.Y)
	if over == m.overID {
		return m, nil
	}
	m.overID = over
	if over == "" {
		return m, nil
	}
	m.apply(m.svc.DragOver(context.Background(), m.view.ActiveID, over))
	return m, nil
}

// handleMouseRelease drops the held item on whatever is under the pointer.
func (m Model) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	if m.drag != dragMouse {
		return m, nil
	}
	m.pointerX, m.pointerY = msg.X, msg.Y
	m.endDrag(m.overAt(msg.X, msg.Y))
	return m, nil
}

// pickUpFocused starts a keyboard drag on the focused item.
func (m *Model) pickUpFocused() {
	item, ok := m.focusedItem()
	if !ok {
		m.status = "nothing to pick up"
		return
	}
	m.apply(m.svc.StartDrag(context.Background(), item.ID))
	m.drag = dragKeyboard
	m.overID = item.ID
}

// hoverContainer previews the held item in the neighboring container.
func (m *Model) hoverContainer(delta int) {
	ci, _, ok := m.activeLocation()
	if !ok {
		return
	}
	target := clamp(ci+delta, 0, len(m.view.Board.Containers)-1)
	if target == ci {
		return
	}
	activeID := m.view.ActiveID
	m.apply(m.svc.DragOver(context.Background(), activeID, m.view.Board.Containers[target].ID))
	m.overID = activeID
	m.focusOn(activeID)
}

// hoverItem moves the drop target within the held item's container.
func (m *Model) hoverItem(delta int) {
	ci, ai, ok := m.activeLocation()
	if !ok {
		return
	}
	items := m.view.Board.Containers[ci].Items
	cur := m.view.Board.Containers[ci].IndexOf(m.overID)
	if cur < 0 {
		cur = ai
	}
	next := clamp(cur+delta, 0, len(items)-1)
	overID := items[next].ID
	m.apply(m.svc.DragOver(context.Background(), m.view.ActiveID, overID))
	m.overID = overID
	m.focusContainer = ci
	m.focusItem = next
}

// endDrag commits the gesture. An empty overID drops with no target.
func (m *Model) endDrag(overID string) {
	activeID := m.view.ActiveID
	m.apply(m.svc.EndDrag(context.Background(), activeID, overID))
	m.drag = dragNone
	m.overID = ""
	m.focusOn(activeID)
}

// resetBoard restores the seed arrangement.
func (m *Model) resetBoard() {
	result, err := m.svc.Reset(context.Background())
	m.apply(result, err)
	if err == nil {
		m.status = "board reset"
	}
	m.focusContainer, m.focusItem = 0, 0
	m.clampFocus()
}

// openJournal loads recent drag events into the journal modal.
func (m *Model) openJournal() {
	events, err := m.svc.ListDragEvents(context.Background(), app.DragEventFilter{Limit: m.journalLimit})
	m.journal = events
	m.journalErr = err
	m.mode = modeJournal
}

// copyFocusedID writes the focused item id to the system clipboard.
func (m *Model) copyFocusedID() {
	item, ok := m.focusedItem()
	if !ok {
		m.status = "no item focused"
		return
	}
	if err := writeClipboard(item.ID); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied " + item.ID
}

// apply stores a gesture result. The service applies the board change even
// when journaling fails, so the view is kept in that case too.
func (m *Model) apply(result app.DragResult, err error) {
	if len(result.Board.Containers) > 0 || err == nil {
		m.view = result.BoardView
	}
	if err != nil {
		m.status = "error: " + err.Error()
		return
	}
	m.status = describeOutcome(result.Outcome)
}

// focusedItem returns the item under the keyboard focus.
func (m Model) focusedItem() (domain.CardItem, bool) {
	containers := m.view.Board.Containers
	if m.focusContainer < 0 || m.focusContainer >= len(containers) {
		return domain.CardItem{}, false
	}
	items := containers[m.focusContainer].Items
	if m.focusItem < 0 || m.focusItem >= len(items) {
		return domain.CardItem{}, false
	}
	return items[m.focusItem], true
}

// activeLocation returns the container and item index of the held item.
func (m Model) activeLocation() (int, int, bool) {
	return locate(m.view.Board, m.view.ActiveID)
}

// focusOn moves the keyboard focus to itemID when it is on the board.
func (m *Model) focusOn(itemID string) {
	if ci, ii, ok := locate(m.view.Board, itemID); ok {
		m.focusContainer, m.focusItem = ci, ii
	}
	m.clampFocus()
}

// clampFocus keeps focus inside the board.
func (m *Model) clampFocus() {
	containers := m.view.Board.Containers
	if len(containers) == 0 {
		m.focusContainer, m.focusItem = 0, 0
		return
	}
	m.focusContainer = clamp(m.focusContainer, 0, len(containers)-1)
	m.focusItem = clamp(m.focusItem, 0, len(containers[m.focusContainer].Items)-1)
}

// locate finds itemID by container and item index.
func locate(board domain.CardBoard, itemID string) (int, int, bool) {
	if itemID == "" {
		return -1, -1, false
	}
	for ci, c := range board.Containers {
		if ii := c.IndexOf(itemID); ii >= 0 {
			return ci, ii, true
		}
	}
	return -1, -1, false
}

// columnSpan is the rendered width of one container plus the gap after it.
func (m Model) columnSpan() int {
	return m.display.ColumnWidth + 2 + columnGap
}

// boardRows is the rendered height of the tallest container.
func (m Model) boardRows() int {
	rows := 1
	for _, c := range m.view.Board.Containers {
		rows = max(rows, len(c.Items))
	}
	return itemRowStart + rows + 1
}

// hitTest maps a screen cell to a container index and item index. The item
// index is -1 when the cell is inside a container but not on an item.
func (m Model) hitTest(x, y int) (int, int, bool) {
	row := y - boardTop
	if x < 0 || row < 0 || row >= m.boardRows() {
		return -1, -1, false
	}
	span := m.columnSpan()
	ci := x / span
	if ci >= len(m.view.Board.Containers) || x%span >= span-columnGap {
		return -1, -1, false
	}
	ii := row - itemRowStart
	if ii < 0 || ii >= len(m.view.Board.Containers[ci].Items) {
		ii = -1
	}
	return ci, ii, true
}

// overAt returns the droppable id under a screen cell, or "" for none.
func (m Model) overAt(x, y int) string {
	ci, ii, ok := m.hitTest(x, y)
	if !ok {
		return ""
	}
	c := m.view.Board.Containers[ci]
	if ii < 0 {
		return c.ID
	}
	return c.Items[ii].ID
}

// View renders the board with any modal or dragged card composited on top.
func (m Model) View() tea.View {
	return m.newView(m.renderScreen())
}

// renderScreen renders the full screen as text.
func (m Model) renderScreen() string {
	if !m.ready {
		return "loading..."
	}

	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	header := titleStyle.Render("sortboard") + statusStyle.Render("  ["+m.modeLabel()+"]")
	if m.view.ActiveID != "" {
		header += statusStyle.Render("  holding: " + m.view.ActiveID)
	}
	if m.view.SessionID != "" {
		header += statusStyle.Render("  session: " + shortID(m.view.SessionID))
	}

	content := header + "\n\n" + m.renderBoard(accent, muted, dim) + "\n\n" + statusStyle.Render(m.status)

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))
	if m.height > 0 {
		content = fitLines(content, max(0, m.height-lipgloss.Height(helpLine)))
	}
	full := content + "\n" + helpLine

	overlayHeight := lipgloss.Height(full)
	if m.height > 0 {
		overlayHeight = m.height
	}
	switch {
	case m.mode == modeJournal:
		full = overlayOnContent(full, m.renderJournalOverlay(accent, muted, m.width-8), m.width, overlayHeight)
	case m.help.ShowAll:
		full = overlayOnContent(full, m.renderHelpOverlay(accent, muted, m.width-8), m.width, overlayHeight)
	case m.drag != dragNone:
		x, y := m.dragCardPosition()
		full = overlayAt(full, m.renderDragCard(accent, muted), x, y, m.width, overlayHeight)
	}
	return full
}

// newView wraps rendered content with the program-level view settings.
func (m Model) newView(content string) tea.View {
	v := tea.NewView(content)
	v.AltScreen = true
	if m.display.Mouse {
		v.MouseMode = tea.MouseModeCellMotion
	}
	return v
}

// modeLabel returns the header label for the current interaction.
func (m Model) modeLabel() string {
	switch {
	case m.mode == modeJournal:
		return "journal"
	case m.drag == dragMouse:
		return "drag: mouse"
	case m.drag == dragKeyboard:
		return "drag: keys"
	default:
		return "normal"
	}
}

// renderBoard renders every container side by side.
func (m Model) renderBoard(accent, muted, dim color.Color) string {
	containers := m.view.Board.Containers
	if len(containers) == 0 {
		return lipgloss.NewStyle().Foreground(muted).Render("(no containers)")
	}
	activeCI, _, holding := m.activeLocation()
	innerRows := m.boardRows() - 2
	blocks := make([]string, 0, len(containers)*2)
	for idx, c := range containers {
		if idx > 0 {
			blocks = append(blocks, strings.Repeat(" ", columnGap))
		}
		highlight := idx == m.focusContainer
		if holding {
			highlight = idx == activeCI
		}
		blocks = append(blocks, m.renderContainer(idx, c, innerRows, highlight, accent, muted, dim))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// renderContainer renders one bordered container with one row per item.
func (m Model) renderContainer(idx int, c domain.CardContainer, innerRows int, highlight bool, accent, muted, dim color.Color) string {
	w := m.display.ColumnWidth
	labelStyle := lipgloss.NewStyle().Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(muted)
	count := fmt.Sprintf(" %d", len(c.Items))
	lines := []string{
		padCell(labelStyle.Render(truncate(c.Label, w-len(count)))+countStyle.Render(count), w),
		lipgloss.NewStyle().Foreground(dim).Render(strings.Repeat("─", w)),
	}
	if len(c.Items) == 0 {
		lines = append(lines, padCell(countStyle.Render("  (empty)"), w))
	}
	for i, item := range c.Items {
		lines = append(lines, padCell(m.renderItemLine(idx, i, item, muted), w))
	}
	for len(lines) < innerRows {
		lines = append(lines, strings.Repeat(" ", w))
	}

	border := dim
	if highlight {
		border = accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(strings.Join(lines, "\n"))
}

// renderItemLine renders one item row with its focus or drag marker.
func (m Model) renderItemLine(ci, ii int, item domain.CardItem, muted color.Color) string {
	w := m.display.ColumnWidth
	held := item.ID == m.view.ActiveID
	marker := "  "
	switch {
	case held:
		marker = "┆ "
	case m.drag == dragKeyboard && item.ID == m.overID:
		marker = "▸ "
	case m.drag == dragNone && ci == m.focusContainer && ii == m.focusItem:
		marker = "› "
	}

	text := item.Payload.Title
	if m.display.ShowItemIDs {
		text = item.ID + " " + text
	}
	if m.display.ShowStyleTags && item.StyleTag != "" {
		text += " #" + strings.Join(strings.Fields(item.StyleTag), "+")
	}
	text = truncate(text, w-2)

	style := styleForTag(item.StyleTag)
	if held {
		style = lipgloss.NewStyle().Foreground(muted).Faint(true)
	}
	return marker + style.Render(text)
}

// renderDragCard renders the floating card for the held item.
func (m Model) renderDragCard(accent, muted color.Color) string {
	item, ok := m.view.Board.FindItem(m.view.ActiveID)
	if !ok {
		return ""
	}
	w := m.display.ColumnWidth
	lines := []string{
		styleForTag(item.StyleTag).Bold(true).Render(truncate(item.Payload.Title, w)),
		lipgloss.NewStyle().Foreground(muted).Render(item.ID),
	}
	if body := m.bodies.render(item.Payload.Body, w); body != "" {
		lines = append(lines, body)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// dragCardPosition places the floating card next to the pointer, or next to
// the drop target for keyboard drags.
func (m Model) dragCardPosition() (int, int) {
	if m.drag == dragMouse {
		return m.pointerX + 2, m.pointerY + 1
	}
	ci, ii, ok := locate(m.view.Board, m.overID)
	if !ok {
		return 0, boardTop
	}
	return ci*m.columnSpan() + 4, boardTop + itemRowStart + ii + 1
}

// renderJournalOverlay renders the drag journal modal.
func (m Model) renderJournalOverlay(accent, muted color.Color, maxWidth int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if maxWidth > 0 {
		style = style.Width(clamp(maxWidth, 44, 96))
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)

	lines := []string{titleStyle.Render("Drag Journal")}
	switch {
	case errors.Is(m.journalErr, app.ErrJournalUnavailable):
		lines = append(lines, hintStyle.Render("(journal disabled)"))
	case m.journalErr != nil:
		lines = append(lines, "error: "+m.journalErr.Error())
	case len(m.journal) == 0:
		lines = append(lines, hintStyle.Render("(no drag events yet)"))
	default:
		for idx, ev := range m.journal {
			if idx >= journalViewWindow {
				break
			}
			lines = append(lines, formatDragEvent(ev))
		}
	}
	lines = append(lines, hintStyle.Render("esc close"))
	return style.Render(strings.Join(lines, "\n"))
}

// renderHelpOverlay renders the expanded key help.
func (m Model) renderHelpOverlay(accent, muted color.Color, maxWidth int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	helpBubble := m.help
	helpBubble.ShowAll = true
	if maxWidth > 0 {
		width := clamp(maxWidth, 44, 96)
		style = style.Width(width)
		helpBubble.SetWidth(width - 4)
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accent).Render("sortboard help"),
		helpBubble.View(m.keys),
		lipgloss.NewStyle().Foreground(muted).Render("drag with the mouse, or pick up with space and steer with h/j/k/l"),
	}
	return style.Render(strings.Join(lines, "\n"))
}

// describeOutcome turns a gesture outcome into a status line.
func describeOutcome(o app.Outcome) string {
	switch o.Kind {
	case app.OutcomeStarted:
		return "holding " + o.ItemID
	case app.OutcomePreview:
		return fmt.Sprintf("%s previewing in %s", o.ItemID, o.ToContainerID)
	case app.OutcomeReorder:
		return fmt.Sprintf("reordered %s in %s (%d → %d)", o.ItemID, o.ToContainerID, o.FromIndex, o.ToIndex)
	case app.OutcomeMove:
		return fmt.Sprintf("moved %s to %s", o.ItemID, o.ToContainerID)
	case app.OutcomeDropped:
		if o.Reason != "" {
			return fmt.Sprintf("dropped %s (%s)", o.ItemID, o.Reason)
		}
		return "dropped " + o.ItemID
	default:
		if o.Reason != "" {
			return "no change (" + o.Reason + ")"
		}
		return "ready"
	}
}

// formatDragEvent renders one journal row.
func formatDragEvent(ev domain.DragEvent) string {
	line := fmt.Sprintf("%s  %-7s %s", ev.OccurredAt.UTC().Format("15:04:05"), ev.Operation, ev.ItemID)
	route := ev.FromContainerID
	if ev.ToContainerID != "" && ev.ToContainerID != ev.FromContainerID {
		route += "→" + ev.ToContainerID
	}
	if route != "" {
		line += "  " + route
	}
	if ev.Reason != "" {
		line += "  (" + ev.Reason + ")"
	}
	return line + "  " + shortID(ev.SessionID)
}

// StyleTagToken is one recognized color token of an item style tag.
type StyleTagToken struct {
	Name  string
	Color string
}

var styleTagPalette = []StyleTagToken{
	{Name: "red", Color: "203"},
	{Name: "blue", Color: "69"},
	{Name: "orange", Color: "214"},
	{Name: "green", Color: "78"},
	{Name: "yellow", Color: "221"},
	{Name: "purple", Color: "141"},
}

// StyleTagPalette returns the color tokens styleForTag understands, plus the
// bold and italic modifiers, which carry no color.
func StyleTagPalette() []StyleTagToken {
	out := make([]StyleTagToken, 0, len(styleTagPalette)+2)
	out = append(out, styleTagPalette...)
	return append(out, StyleTagToken{Name: "bold"}, StyleTagToken{Name: "italic"})
}

// styleForTag maps a space-separated style tag to a text style. Unknown
// tokens are ignored.
func styleForTag(tag string) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	for _, tok := range strings.Fields(strings.ToLower(tag)) {
		switch tok {
		case "bold":
			style = style.Bold(true)
		case "italic":
			style = style.Italic(true)
		default:
			for _, entry := range styleTagPalette {
				if entry.Name == tok {
					style = style.Foreground(lipgloss.Color(entry.Color))
					break
				}
			}
		}
	}
	return style
}

// shortID trims a session id for display.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// padCell pads styled text to width cells.
func padCell(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// clamp clamps the requested operation.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// truncate trims s to at most max terminal cells, wide runes counted as two.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if max == 1 {
		return ansi.Truncate(s, 1, "")
	}
	return ansi.Truncate(s, max, "…")
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent overlays on content.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

// overlayAt composes overlay at a cell position, shifted to stay on screen.
func overlayAt(base, overlay string, x, y, width, height int) string {
	if strings.TrimSpace(overlay) == "" {
		return base
	}
	if width <= 0 || height <= 0 {
		return base + "\n\n" + overlay
	}

	base = fitLines(base, height)
	x = clamp(x, 0, width-lipgloss.Width(overlay))
	y = clamp(y, 0, height-lipgloss.Height(overlay))
	canvas := lipgloss.NewCanvas(width, height)
	canvas.Compose(lipgloss.NewLayer(base).X(0).Y(0).Z(0))
	canvas.Compose(lipgloss.NewLayer(overlay).X(x).Y(y).Z(10))
	return canvas.Render()
}
