package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/evanschultz/sortboard/internal/app"
	"github.com/evanschultz/sortboard/internal/domain"
)

type memJournal struct {
	mu     sync.Mutex
	events []domain.DragEvent
}

func (j *memJournal) AppendDragEvent(_ context.Context, ev domain.DragEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	ev.ID = int64(len(j.events) + 1)
	j.events = append(j.events, ev)
	return nil
}

func (j *memJournal) ListDragEvents(_ context.Context, filter app.DragEventFilter) ([]domain.DragEvent, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]domain.DragEvent, 0, len(j.events))
	for idx := len(j.events) - 1; idx >= 0; idx-- {
		out = append(out, j.events[idx])
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// overRecorder records drag-over calls before delegating.
type overRecorder struct {
	*app.Service
	overs []string
}

func (r *overRecorder) DragOver(ctx context.Context, activeID, overID string) (app.DragResult, error) {
	r.overs = append(r.overs, activeID+">"+overID)
	return r.Service.DragOver(ctx, activeID, overID)
}

func newBoardService(journal app.Journal) *app.Service {
	n := 0
	idGen := func() string {
		n++
		return fmt.Sprintf("session-%04d", n)
	}
	clock := func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return app.NewService(journal, idGen, clock, app.ServiceConfig{})
}

func loadReadyModel(t *testing.T, m Model) Model {
	t.Helper()
	return applyMsg(t, applyCmd(t, m, m.Init()), tea.WindowSizeMsg{Width: 120, Height: 40})
}

func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return applyCmd(t, out, cmd)
}

func applyCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	out := m
	currentCmd := cmd
	for i := 0; i < 6 && currentCmd != nil; i++ {
		msg := currentCmd()
		updated, nextCmd := out.Update(msg)
		casted, ok := updated.(Model)
		if !ok {
			t.Fatalf("expected Model, got %T", updated)
		}
		out = casted
		currentCmd = nextCmd
	}
	return out
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func keySpace() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
}

func containerItemIDs(t *testing.T, board domain.CardBoard, containerID string) string {
	t.Helper()
	c, ok := board.FindContainer(containerID)
	if !ok || c.ID != containerID {
		t.Fatalf("container %q not found", containerID)
	}
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ID)
	}
	return strings.Join(ids, ",")
}

func screenText(m Model) string {
	return ansi.Strip(m.renderScreen())
}

// itemCell returns the screen cell at the start of an item row.
func itemCell(m Model, ci, ii int) (int, int) {
	return ci*m.columnSpan() + 2, boardTop + itemRowStart + ii
}

func TestModelLoadsBoard(t *testing.T) {
	m := NewModel(newBoardService(nil))
	if got := m.renderScreen(); got != "loading..." {
		t.Fatalf("expected loading screen, got %q", got)
	}
	m = loadReadyModel(t, m)
	out := screenText(m)
	for _, want := range []string{"sortboard", "Label A", "Label D", "01-01 Text", "(empty)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in screen\n%s", want, out)
		}
	}
	if v := m.View(); v.MouseMode != tea.MouseModeCellMotion || !v.AltScreen {
		t.Fatalf("unexpected view settings %#v", v)
	}
}

func TestModelKeyboardNavigationClamps(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardService(nil)))
	m = applyMsg(t, m, keyRune('h'))
	m = applyMsg(t, m, keyRune('k'))
	if m.focusContainer != 0 || m.focusItem != 0 {
		t.Fatalf("expected focus clamped at origin, got %d/%d", m.focusContainer, m.focusItem)
	}
	for range 5 {
		m = applyMsg(t, m, keyRune('j'))
	}
	if m.focusItem != 2 {
		t.Fatalf("expected focus clamped to last item, got %d", m.focusItem)
	}
	for range 5 {
		m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyRight})
	}
	if m.focusContainer != 3 || m.focusItem != 0 {
		t.Fatalf("expected focus on empty container, got %d/%d", m.focusContainer, m.focusItem)
	}
	m = applyMsg(t, m, keySpace())
	if m.drag != dragNone || m.status != "nothing to pick up" {
		t.Fatalf("expected pick up refused on empty container, drag=%v status=%q", m.drag, m.status)
	}
}

func TestModelKeyboardDragAcrossContainers(t *testing.T) {
	journal := &memJournal{}
	svc := newBoardService(journal)
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keySpace())
	if m.drag != dragKeyboard || m.view.ActiveID != "01-01" {
		t.Fatalf("expected keyboard drag of 01-01, drag=%v active=%q", m.drag, m.view.ActiveID)
	}
	if !strings.Contains(screenText(m), "holding: 01-01") {
		t.Fatal("expected header to show held item")
	}

	m = applyMsg(t, m, keyRune('l'))
	if got := containerItemIDs(t, m.view.Board, "02"); got != "02-01,02-02,02-03,01-01" {
		t.Fatalf("unexpected preview order %q", got)
	}
	if m.overID != "01-01" || m.focusContainer != 1 || m.focusItem != 3 {
		t.Fatalf("unexpected hover after preview over=%q focus=%d/%d", m.overID, m.focusContainer, m.focusItem)
	}

	m = applyMsg(t, m, keyRune('k'))
	if m.overID != "02-03" {
		t.Fatalf("expected hover on 02-03, got %q", m.overID)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.drag != dragNone || m.view.ActiveID != "" || m.view.SessionID != "" {
		t.Fatalf("expected drag closed, got drag=%v view=%#v", m.drag, m.view)
	}
	if got := containerItemIDs(t, m.view.Board, "01"); got != "01-02,01-03" {
		t.Fatalf("unexpected source order %q", got)
	}
	if got := containerItemIDs(t, m.view.Board, "02"); got != "02-01,02-02,01-01,02-03" {
		t.Fatalf("unexpected target order %q", got)
	}
	if m.status != "reordered 01-01 in 02 (3 → 2)" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if m.focusContainer != 1 || m.focusItem != 2 {
		t.Fatalf("expected focus to follow dropped item, got %d/%d", m.focusContainer, m.focusItem)
	}

	events, _ := journal.ListDragEvents(context.Background(), app.DragEventFilter{})
	if len(events) != 3 {
		t.Fatalf("expected start/preview/reorder events, got %#v", events)
	}
	if events[0].Operation != domain.DragOperationReorder || events[2].Operation != domain.DragOperationStart {
		t.Fatalf("unexpected journal operations %#v", events)
	}
	if svcView := svc.View(context.Background()); containerItemIDs(t, svcView.Board, "02") != "02-01,02-02,01-01,02-03" {
		t.Fatal("expected service state to match model view")
	}
}

func TestModelKeyboardCancelKeepsPreview(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardService(nil)))
	m = applyMsg(t, m, keySpace())
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, keyRune('l'))
	if got := containerItemIDs(t, m.view.Board, "03"); got != "03-01,03-02,03-03,01-01" {
		t.Fatalf("unexpected preview order %q", got)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.drag != dragNone || m.view.ActiveID != "" {
		t.Fatalf("expected cancelled drag, got drag=%v active=%q", m.drag, m.view.ActiveID)
	}
	if got := containerItemIDs(t, m.view.Board, "03"); got != "03-01,03-02,03-03,01-01" {
		t.Fatalf("expected preview placement kept after cancel, got %q", got)
	}
	if m.status != "dropped 01-01 (no_target)" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelKeyboardDropOnSelfIsNoop(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardService(nil)))
	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, keySpace())
	m = applyMsg(t, m, keySpace())
	if got := containerItemIDs(t, m.view.Board, "01"); got != "01-01,01-02,01-03" {
		t.Fatalf("expected unchanged order, got %q", got)
	}
	if m.status != "dropped 01-02" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelBoardGeometryMatchesHitTest(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardService(nil)))
	lines := strings.Split(screenText(m), "\n")
	for ci, c := range m.view.Board.Containers {
		for ii, item := range c.Items {
			x, y := itemCell(m, ci, ii)
			row := []rune(lines[y])
			cell := string(row[ci*m.columnSpan() : ci*m.columnSpan()+m.display.ColumnWidth+2])
			if !strings.Contains(cell, item.ID) {
				t.Fatalf("expected %s rendered at row %d, got %q", item.ID, y, cell)
			}
			if got := m.overAt(x, y); got != item.ID {
				t.Fatalf("overAt(%d, %d) = %q, want %q", x, y, got, item.ID)
			}
		}
	}
	if got := m.overAt(3*m.columnSpan()+2, boardTop+itemRowStart); got != "04" {
		t.Fatalf("expected empty container to resolve to itself, got %q", got)
	}
	if got := m.overAt(m.columnSpan()-1, boardTop+itemRowStart); got != "" {
		t.Fatalf("expected gap to resolve to nothing, got %q", got)
	}
	if got := m.overAt(2, 0); got != "" {
		t.Fatalf("expected header to resolve to nothing, got %q", got)
	}
}

func TestModelWideTextKeepsColumnGeometry(t *testing.T) {
	seed := domain.DefaultSeed()
	seed.Containers[0].Label = "ラベルラベルラベルラベルラベル"
	seed.Containers[0].Items[0].Payload.Title = "テキストテキストテキストテキスト"
	svc := app.NewService(nil, func() string { return "session-0001" }, nil, app.ServiceConfig{Seed: seed})
	m := loadReadyModel(t, NewModel(svc))

	lines := strings.Split(screenText(m), "\n")
	span := m.columnSpan()
	maxWidth := len(m.view.Board.Containers) * span
	for ci, c := range m.view.Board.Containers {
		for ii, item := range c.Items {
			x, y := itemCell(m, ci, ii)
			if got := ansi.StringWidth(lines[y]); got > maxWidth {
				t.Fatalf("row %d is %d cells wide, want <= %d\n%s", y, got, maxWidth, lines[y])
			}
			cell := ansi.Cut(lines[y], ci*span, ci*span+m.display.ColumnWidth+2)
			if !strings.Contains(cell, item.ID) {
				t.Fatalf("expected %s rendered in column %d, got %q", item.ID, ci, cell)
			}
			if got := m.overAt(x, y); got != item.ID {
				t.Fatalf("overAt(%d, %d) = %q, want %q", x, y, got, item.ID)
			}
		}
	}
	_, y := itemCell(m, 0, 0)
	if !strings.Contains(lines[y], "…") {
		t.Fatalf("expected wide title truncated, got %q", lines[y])
	}
}

func TestModelKeyboardHoverSendsDragOver(t *testing.T) {
	svc := &overRecorder{Service: newBoardService(nil)}
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keySpace())
	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, keyRune('j'))
	if got := strings.Join(svc.overs, ","); got != "01-01>01-02,01-01>01-03" {
		t.Fatalf("unexpected drag-over calls %q", got)
	}
	if m.overID != "01-03" {
		t.Fatalf("expected hover on 01-03, got %q", m.overID)
	}
	if got := containerItemIDs(t, m.view.Board, "01"); got != "01-01,01-02,01-03" {
		t.Fatalf("expected same-container hover to leave order unchanged, got %q", got)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := containerItemIDs(t, m.view.Board, "01"); got != "01-02,01-03,01-01" {
		t.Fatalf("unexpected order after drop %q", got)
	}
}

func TestModelMouseDragAcrossContainers(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardService(nil)))

	x, y := itemCell(m, 0, 0)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	if m.drag != dragMouse || m.view.ActiveID != "01-01" {
		t.Fatalf("expected mouse drag of 01-01, drag=%v active=%q", m.drag, m.view.ActiveID)
	}

	x, y = itemCell(m, 1, 1)
	m = applyMsg(t, m, tea.MouseMotionMsg{X: x, Y: y, Button: tea.MouseLeft})
	if got := containerItemIDs(t, m.view.Board, "02"); got != "02-01,02-02,02-03,01-01" {
		t.Fatalf("unexpected preview order %q", got)
	}
	if m.status != "01-01 previewing in 02" {
		t.Fatalf("unexpected status %q", m.status)
	}

	x, y = itemCell(m, 1, 0)
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})
	if m.drag != dragNone || m.view.ActiveID != "" {
		t.Fatalf("expected drag closed, got drag=%v active=%q", m.drag, m.view.ActiveID)
	}
	if got := containerItemIDs(t, m.view.Board, "02"); got != "01-01,02-01,02-02,02-03" {
		t.Fatalf("unexpected final order %q", got)
	}
}

func TestModelMouseReleaseOutsideBoard(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardService(nil)))
	x, y := itemCell(m, 2, 1)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	m = applyMsg(t, m, tea.MouseMotionMsg{X: 119, Y: 39, Button: tea.MouseLeft})
	if m.overID != "" {
		t.Fatalf("expected no hover target off the board, got %q", m.overID)
	}
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: 119, Y: 39, Button: tea.MouseLeft})
	if got := containerItemIDs(t, m.view.Board, "03"); got != "03-01,03-02,03-03" {
		t.Fatalf("expected unchanged order, got %q", got)
	}
	if m.status != "dropped 03-02 (no_target)" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelMouseClickOnLabelFocusesContainer(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardService(nil)))
	m = applyMsg(t, m, tea.MouseClickMsg{X: 2*m.columnSpan() + 2, Y: boardTop + 1, Button: tea.MouseLeft})
	if m.drag != dragNone || m.focusContainer != 2 {
		t.Fatalf("expected focus without drag, drag=%v focus=%d", m.drag, m.focusContainer)
	}
	x, y := itemCell(m, 0, 0)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseRight})
	if m.drag != dragNone {
		t.Fatal("expected right click to be ignored")
	}
}

func TestModelMouseDisabled(t *testing.T) {
	cfg := DefaultDisplayConfig()
	cfg.Mouse = false
	m := loadReadyModel(t, NewModel(newBoardService(nil), WithDisplayConfig(cfg)))
	x, y := itemCell(m, 0, 0)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	if m.drag != dragNone || m.view.ActiveID != "" {
		t.Fatal("expected mouse input ignored")
	}
	if v := m.View(); v.MouseMode != tea.MouseModeNone {
		t.Fatalf("expected mouse mode off, got %v", v.MouseMode)
	}
}

func TestModelDisplayConfig(t *testing.T) {
	cfg := DisplayConfig{ShowItemIDs: false, ShowStyleTags: true, ColumnWidth: 3}
	m := loadReadyModel(t, NewModel(newBoardService(nil), WithDisplayConfig(cfg)))
	if m.display.ColumnWidth != minColumnWidth {
		t.Fatalf("expected column width raised to minimum, got %d", m.display.ColumnWidth)
	}
	out := screenText(m)
	if strings.Contains(out, "01-01") {
		t.Fatal("expected item ids hidden")
	}
	if !strings.Contains(out, "#red") {
		t.Fatalf("expected style tags shown\n%s", out)
	}
}

func TestModelJournalModal(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardService(&memJournal{})))
	m = applyMsg(t, m, keySpace())
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = applyMsg(t, m, keyRune('g'))
	if m.mode != modeJournal || len(m.journal) != 3 {
		t.Fatalf("expected journal with 3 events, mode=%v events=%d", m.mode, len(m.journal))
	}
	out := screenText(m)
	for _, want := range []string{"Drag Journal", "preview", "01→02"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in journal\n%s", want, out)
		}
	}
	m = applyMsg(t, m, keySpace())
	if m.mode != modeJournal || m.drag != dragNone {
		t.Fatal("expected journal to swallow board keys")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone {
		t.Fatalf("expected journal closed, got %v", m.mode)
	}
}

func TestModelJournalDisabled(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardService(nil)))
	m = applyMsg(t, m, keyRune('g'))
	if !errors.Is(m.journalErr, app.ErrJournalUnavailable) {
		t.Fatalf("expected journal unavailable, got %v", m.journalErr)
	}
	if !strings.Contains(screenText(m), "(journal disabled)") {
		t.Fatal("expected disabled journal notice")
	}
}

func TestModelCopyFocusedID(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	m := loadReadyModel(t, NewModel(newBoardService(nil)))
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, keyRune('y'))
	if copied != "02-02" || m.status != "copied 02-02" {
		t.Fatalf("unexpected copy result copied=%q status=%q", copied, m.status)
	}

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	m = applyMsg(t, m, keyRune('y'))
	if m.status != "copy failed: no clipboard" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelResetRestoresSeed(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardService(nil)))
	m = applyMsg(t, m, keySpace())
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = applyMsg(t, m, keyRune('r'))
	if got := containerItemIDs(t, m.view.Board, "01"); got != "01-01,01-02,01-03" {
		t.Fatalf("expected seed order after reset, got %q", got)
	}
	if m.status != "board reset" || m.focusContainer != 0 || m.focusItem != 0 {
		t.Fatalf("unexpected reset state status=%q focus=%d/%d", m.status, m.focusContainer, m.focusItem)
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardService(nil)))
	m = applyMsg(t, m, keyRune('?'))
	if !m.help.ShowAll || !strings.Contains(screenText(m), "sortboard help") {
		t.Fatal("expected help overlay")
	}
	m = applyMsg(t, m, keySpace())
	if m.drag != dragNone {
		t.Fatal("expected help to swallow board keys")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.help.ShowAll {
		t.Fatal("expected help closed")
	}
}

func TestModelQuitKey(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardService(nil)))
	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestModelQuitWhileDraggingClosesSession(t *testing.T) {
	svc := newBoardService(nil)
	m := loadReadyModel(t, NewModel(svc))
	m = applyMsg(t, m, keySpace())
	updated, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
	if got := updated.(Model); got.drag != dragNone {
		t.Fatal("expected drag closed before quit")
	}
	if view := svc.View(context.Background()); view.ActiveID != "" {
		t.Fatalf("expected service drag session cleared, got %q", view.ActiveID)
	}
}

func TestModelDragCardOverlay(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardService(nil)))
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, keySpace())
	card := ansi.Strip(m.renderDragCard(lipgloss.Color("62"), lipgloss.Color("241")))
	if !strings.Contains(card, "List") || !strings.Contains(card, "02-03") {
		t.Fatalf("unexpected drag card\n%s", card)
	}
	if lipgloss.Height(card) < 4 {
		t.Fatalf("expected rendered markdown body in card\n%s", card)
	}
}

func TestStyleForTag(t *testing.T) {
	plain := styleForTag("string")
	bold := styleForTag("orange bold")
	if plain.GetBold() {
		t.Fatal("expected unknown token to leave style plain")
	}
	if !bold.GetBold() {
		t.Fatal("expected bold token applied")
	}
	if bold.GetForeground() == plain.GetForeground() {
		t.Fatal("expected color token applied")
	}
}

func TestDescribeOutcome(t *testing.T) {
	cases := []struct {
		name string
		in   app.Outcome
		want string
	}{
		{name: "started", in: app.Outcome{Kind: app.OutcomeStarted, ItemID: "a"}, want: "holding a"},
		{name: "move", in: app.Outcome{Kind: app.OutcomeMove, ItemID: "a", ToContainerID: "c2"}, want: "moved a to c2"},
		{name: "none", in: app.Outcome{Kind: app.OutcomeNone, Reason: app.ReasonSameContainer}, want: "no change (same_container)"},
		{name: "blank", in: app.Outcome{Kind: app.OutcomeNone}, want: "ready"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := describeOutcome(tc.in); got != tc.want {
				t.Fatalf("describeOutcome() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestOverlayHelpers(t *testing.T) {
	if got := fitLines("a\nb\nc", 2); got != "a\n…" {
		t.Fatalf("unexpected fitLines %q", got)
	}
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Fatalf("unexpected truncate %q", got)
	}
	if got := overlayAt("base", "card", 0, 0, 0, 0); got != "base\n\ncard" {
		t.Fatalf("unexpected unsized overlay %q", got)
	}
	out := ansi.Strip(overlayAt("....\n....\n....", "XY", 3, 5, 4, 3))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 || lines[2] != "..XY" {
		t.Fatalf("expected overlay clamped into the bottom-right corner, got %q", out)
	}
}
