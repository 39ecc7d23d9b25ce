package vtcore

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

// PromptMarker is the OSC 133 shell-integration state machine position.
type PromptMarker uint8

const (
	PromptNone PromptMarker = iota
	PromptStart
	PromptCommandStart
	PromptOutputStart
)

// Option configures a Terminal at construction time, mirroring the
// teacher's WithXxx(...) Option / New(opts ...Option) functional-options
// pattern.
type Option func(*Terminal)

// WithListener sets the outward event listener.
func WithListener(l Listener) Option {
	return func(t *Terminal) { t.listener = l }
}

// WithWriter sets the PTY write-back surface used for query replies.
func WithWriter(w PtyWriter) Option {
	return func(t *Terminal) { t.writer = w }
}

// WithBuildVersion sets the string reported in DA2/XTVERSION replies.
func WithBuildVersion(name, version string, build int) Option {
	return func(t *Terminal) {
		t.appName = name
		t.appVersion = version
		t.buildNumber = build
	}
}

// WithSize sets the initial grid geometry and scrollback capacity. Without
// this option a terminal starts at 80x24 with a 1000-line scrollback.
func WithSize(cols, lines, maxScrollback int) Option {
	return func(t *Terminal) {
		if cols < 1 {
			cols = 1
		}
		if lines < 1 {
			lines = 1
		}
		t.primary = NewGrid(lines, cols, maxScrollback)
		t.alternate = NewGrid(lines, cols, 0)
		t.active = t.primary
	}
}

// Terminal is the full VT state machine: two Grids (primary + alternate),
// mode flags, palette, title state, keyboard-mode stack, and a byte
// parser. It implements Perform and is the sole entry point for feeding a
// PTY byte stream (Advance) and observing state.
type Terminal struct {
	primary   *Grid
	alternate *Grid
	active    *Grid
	onAlt     bool

	modes   ModeFlags
	palette *Palette

	title           string
	titleStack      []string
	hasExplicitTitle bool
	cwd             string

	cursorShape    CursorShape
	kitty          kittyKeyboard

	promptMarker PromptMarker

	pendingNotifications []Notification

	appName     string
	appVersion  string
	buildNumber int

	parser   *Parser
	listener Listener
	writer   PtyWriter

	mu fairMutex

	malformedCount uint64

	dcsIntermediates []byte
	dcsFinal         byte
	dcsPayload       []byte
}

// New constructs a Terminal, applying opts over a default 80x24 grid with a
// 1000-line scrollback and no listener/writer (Notify/WritePty are then
// safe no-ops until WithListener/WithWriter are supplied).
func New(opts ...Option) *Terminal {
	t := &Terminal{
		primary:   NewGrid(24, 80, 1000),
		alternate: NewGrid(24, 80, 0),
		modes:     DefaultModes,
		palette:   NewPalette(),
		kitty:     newKittyKeyboard(),
		parser:    NewParser(),
		listener:  discardListener{},
		writer:    discardWriter{},
	}
	t.active = t.primary
	for _, o := range opts {
		o(t)
	}
	return t
}

// Lock acquires exclusive access to terminal state for a renderer/reader
// that needs a consistent snapshot across multiple calls (e.g. walking the
// grid while also reading dirty state). It goes through the fair-mutex
// lease so it cannot be starved by Advance being called in a tight loop.
func (t *Terminal) Lock() { t.mu.LockRenderer() }

// Unlock releases a lock taken with Lock.
func (t *Terminal) Unlock() { t.mu.Unlock() }

func (t *Terminal) Grid() *Grid        { return t.active }
func (t *Terminal) Modes() ModeFlags   { return t.modes }
func (t *Terminal) Palette() *Palette  { return t.palette }
func (t *Terminal) Title() string      { return t.title }
func (t *Terminal) CWD() string        { return t.cwd }
func (t *Terminal) CursorShape() CursorShape { return t.cursorShape }

// MalformedSequenceCount returns how many CSI/ESC dispatches were dropped as
// malformed (parameter overflow) or unrecognized.
func (t *Terminal) MalformedSequenceCount() uint64 { return t.malformedCount }

// PendingNotifications returns the queue of desktop notifications raised by
// OSC 9/99/777 since the last DrainNotifications call.
func (t *Terminal) PendingNotifications() []Notification { return t.pendingNotifications }

// DrainNotifications returns and clears the pending-notification queue.
func (t *Terminal) DrainNotifications() []Notification {
	n := t.pendingNotifications
	t.pendingNotifications = nil
	return n
}

// ReportChildExit passes through the PTY EOF/exit-code a host observed on
// its own process handle; the core has no PTY access and never calls this
// itself.
func (t *Terminal) ReportChildExit(code int) {
	t.notify(Event{Kind: EventChildExit, ExitCode: code})
}

func (t *Terminal) originMode() bool { return t.modes.Has(ModeOrigin) }

func (t *Terminal) notify(e Event) { t.listener.Notify(e) }
func (t *Terminal) wakeup()        { t.notify(Event{Kind: EventWakeup}) }

func (t *Terminal) writePty(p []byte) {
	if _, err := t.writer.WritePty(p); err != nil {
		log.Printf("vtcore: pty write failed: %v", err)
	}
}

// Advance feeds bytes through the parser, dispatching onto this terminal,
// and emits a Wakeup event at the end. It takes the data lock itself: a
// renderer holding Lock() blocks Advance until it releases, and a renderer
// waiting on Lock() while Advance runs repeatedly is guaranteed a turn via
// the fair-mutex lease rather than being starved by a tight read loop.
func (t *Terminal) Advance(data []byte) {
	if !t.mu.TryLockReader() {
		t.mu.LockReaderFair()
	}
	defer t.mu.Unlock()
	t.parser.Advance(data, t)
	t.wakeup()
}

// Resize reflows both grids to the new size, resets scroll regions, and
// marks everything dirty.
func (t *Terminal) Resize(cols, lines int) {
	t.mu.LockReaderFair()
	defer t.mu.Unlock()
	if cols < 1 {
		cols = 1
	}
	if lines < 1 {
		lines = 1
	}
	t.primary.Resize(lines, cols)
	t.alternate.Resize(lines, cols)
}

// ScrollDisplay adjusts the active grid's display offset.
func (t *Terminal) ScrollDisplay(delta int) { t.active.ScrollDisplay(delta) }

// --- Perform: Print/Execute ---------------------------------------------

func (t *Terminal) Print(r rune) {
	cur := &t.active.cursor
	translated := Translate(cur.Charsets.Current(), r)
	w := RuneWidth(translated)
	t.active.PutChar(translated, w)
}

func (t *Terminal) Execute(b byte) {
	g := t.active
	switch b {
	case 0x08: // BS
		g.Backspace()
	case 0x09: // HT
		g.Tab()
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		g.Linefeed()
	case 0x0d: // CR
		g.CarriageReturn()
	case 0x07: // BEL
		t.notify(Event{Kind: EventBell})
	case 0x0e: // SO
		g.cursor.Charsets.SetActive(G1)
	case 0x0f: // SI
		g.cursor.Charsets.SetActive(G0)
	case 0x1a: // SUB
		t.Print(' ')
	}
}

// --- Perform: CSI ---------------------------------------------------------

func param(params []int64, i int, def int64) int64 {
	if i >= len(params) || params[i] == 0 {
		return def
	}
	return params[i]
}

func paramRaw(params []int64, i int, def int64) int64 {
	if i >= len(params) {
		return def
	}
	return params[i]
}

func hasIntermediate(intermediates []byte, b byte) bool {
	for _, x := range intermediates {
		if x == b {
			return true
		}
	}
	return false
}

func (t *Terminal) CsiDispatch(params []int64, intermediates []byte, ignore bool, final byte) {
	if ignore {
		t.malformedCount++
		return
	}
	g := t.active
	priv := hasIntermediate(intermediates, '?')

	switch final {
	case 'A':
		g.MoveUp(int(param(params, 0, 1)))
	case 'B':
		g.MoveDown(int(param(params, 0, 1)))
	case 'C':
		g.MoveForward(int(param(params, 0, 1)))
	case 'D':
		g.MoveBackward(int(param(params, 0, 1)))
	case 'E':
		g.MoveNextLine(int(param(params, 0, 1)))
	case 'F':
		g.MovePrevLine(int(param(params, 0, 1)))
	case 'G', '`':
		g.MoveToColumn(int(param(params, 0, 1)) - 1)
	case 'd':
		g.MoveToLine(int(param(params, 0, 1))-1, t.originMode())
	case 'H', 'f':
		g.MoveTo(int(param(params, 0, 1))-1, int(param(params, 1, 1))-1, t.originMode())
	case 'J':
		switch param(params, 0, 0) {
		case 0:
			g.EraseBelow()
		case 1:
			g.EraseAbove()
		case 2:
			g.EraseAll()
		case 3:
			g.EraseSaved()
		}
	case 'K':
		switch param(params, 0, 0) {
		case 0:
			g.EraseLineRight()
		case 1:
			g.EraseLineLeft()
		case 2:
			g.EraseLineAll()
		}
	case 'X':
		g.EraseChars(int(param(params, 0, 1)))
	case '@':
		g.InsertChars(int(param(params, 0, 1)))
	case 'P':
		g.DeleteChars(int(param(params, 0, 1)))
	case 'L':
		g.InsertLines(int(param(params, 0, 1)))
	case 'M':
		g.DeleteLines(int(param(params, 0, 1)))
	case 'S':
		g.ScrollUp(int(param(params, 0, 1)))
	case 'T':
		g.ScrollDown(int(param(params, 0, 1)))
	case 'r':
		if priv {
			t.decsetReset(params, false)
			return
		}
		g.SetScrollRegion(int(param(params, 0, 0)), int(param(params, 1, 0)), t.originMode())
	case 's':
		if priv {
			t.decsetReset(params, true)
			return
		}
		g.SaveCursor(t.originMode())
	case 'u':
		if hasIntermediate(intermediates, '=') {
			t.kittySet(params)
			return
		}
		if hasIntermediate(intermediates, '>') {
			t.kittyPush(params)
			return
		}
		if hasIntermediate(intermediates, '<') {
			t.kitty.Pop(int(param(params, 0, 1)))
			return
		}
		if hasIntermediate(intermediates, '?') {
			t.writePty([]byte(fmt.Sprintf("\x1b[?%du", kittyBitsForReport(t.kitty.current()))))
			return
		}
		om, _ := g.RestoreCursor()
		t.setMode(ModeOrigin, om)
	case 'm':
		t.sgrDispatch(params)
	case 'h':
		t.modeSet(params, priv, true)
	case 'l':
		t.modeSet(params, priv, false)
	case 'n':
		t.dsrDispatch(params, priv)
	case 'c':
		t.daDispatch(params, hasIntermediate(intermediates, '>'))
	case 'q':
		if hasIntermediate(intermediates, ' ') {
			t.decscusr(int(param(params, 0, 0)))
		}
		if hasIntermediate(intermediates, '>') {
			t.writePty([]byte(fmt.Sprintf("\x1bP>|%s %s\x1b\\", t.appName, t.appVersion)))
		}
	case 'p':
		if priv && hasIntermediate(intermediates, '$') {
			t.decrqm(params)
		}
	case 't':
		// window ops: ignored except for reports this core does not model
		// (no window geometry concept exists at this layer).
	default:
		t.malformedCount++
	}
}

func (t *Terminal) kittySet(params []int64) {
	flags := kittyFlagsFromBits(int(paramRaw(params, 0, 0)))
	mode := int(param(params, 1, 1))
	t.kitty.Set(flags, mode)
}

func (t *Terminal) kittyPush(params []int64) {
	flags := kittyFlagsFromBits(int(paramRaw(params, 0, 0)))
	t.kitty.Push(flags)
}

func (t *Terminal) decsetReset(params []int64, set bool) {
	// CSI ? Ps s / CSI ? Ps r (save/restore private mode) are accepted and
	// ignored: no private-mode save stack is kept, so neither changes any
	// mode, the cursor, or the scroll region.
}

func (t *Terminal) setMode(mask ModeFlags, on bool) {
	before := t.modes
	if on {
		t.modes = t.modes.Set(mask)
	} else {
		t.modes = t.modes.Clear(mask)
	}
	if before&ModeCursorBlinking != t.modes&ModeCursorBlinking {
		t.notify(Event{Kind: EventCursorBlinkingChange, Blinking: t.modes.Has(ModeCursorBlinking)})
	}
	mouseMask := ModeMouseReportClick | ModeMouseDrag | ModeMouseMotion | ModeMouseSgr | ModeMouseUtf8
	if before&mouseMask != t.modes&mouseMask {
		t.notify(Event{Kind: EventMouseCursorDirty})
	}
}

func (t *Terminal) swapAltScreen(enter bool) {
	if enter == t.onAlt {
		return
	}
	if enter {
		t.primary.SaveCursor(t.originMode())
		t.alternate.ClearAll()
		t.alternate.cursor = t.primary.cursor
		t.active = t.alternate
		t.onAlt = true
	} else {
		t.active = t.primary
		t.onAlt = false
		t.primary.RestoreCursor()
	}
	t.active.Dirty().MarkAll()
}

func (t *Terminal) modeSet(params []int64, priv, on bool) {
	for _, pRaw := range params {
		p := int(pRaw)
		if !priv {
			switch p {
			case 4:
				t.setMode(ModeInsert, on)
			case 20:
				// LNM (linefeed/newline mode): not tracked as a distinct
				// flag; CR+LF-on-LF behavior is handled by hosts that want
				// it via their own Execute(CR) call, out of this core's
				// responsibility beyond the LF primitive itself.
			}
			continue
		}
		switch p {
		case 1:
			t.setMode(ModeAppCursor, on)
		case 6:
			t.setMode(ModeOrigin, on)
			if on {
				t.active.cursor.Line, t.active.cursor.Col = t.active.region.Top, 0
			} else {
				t.active.cursor.Line, t.active.cursor.Col = 0, 0
			}
		case 7:
			t.setMode(ModeLineWrap, on)
		case 12:
			t.setMode(ModeCursorBlinking, on)
		case 25:
			t.setMode(ModeShowCursor, on)
		case 66:
			t.setMode(ModeAppKeypad, on)
		case 1000:
			t.setMode(ModeMouseReportClick, on)
		case 1002:
			t.setMode(ModeMouseDrag, on)
		case 1003:
			t.setMode(ModeMouseMotion, on)
		case 1004:
			t.setMode(ModeFocusInOut, on)
		case 1005:
			t.setMode(ModeMouseUtf8, on)
		case 1006:
			t.setMode(ModeMouseSgr, on)
		case 1049:
			t.swapAltScreen(on)
		case 2004:
			t.setMode(ModeBracketedPaste, on)
		case 2026:
			t.setMode(ModeSyncUpdate, on)
		}
	}
}

func (t *Terminal) privModeActive(p int) bool {
	switch p {
	case 1:
		return t.modes.Has(ModeAppCursor)
	case 6:
		return t.modes.Has(ModeOrigin)
	case 7:
		return t.modes.Has(ModeLineWrap)
	case 12:
		return t.modes.Has(ModeCursorBlinking)
	case 25:
		return t.modes.Has(ModeShowCursor)
	case 66:
		return t.modes.Has(ModeAppKeypad)
	case 1000:
		return t.modes.Has(ModeMouseReportClick)
	case 1002:
		return t.modes.Has(ModeMouseDrag)
	case 1003:
		return t.modes.Has(ModeMouseMotion)
	case 1004:
		return t.modes.Has(ModeFocusInOut)
	case 1005:
		return t.modes.Has(ModeMouseUtf8)
	case 1006:
		return t.modes.Has(ModeMouseSgr)
	case 1049:
		return t.onAlt
	case 2004:
		return t.modes.Has(ModeBracketedPaste)
	case 2026:
		return t.modes.Has(ModeSyncUpdate)
	default:
		return false
	}
}

func (t *Terminal) decrqm(params []int64) {
	p := int(param(params, 0, 0))
	pm := 2
	if t.privModeActive(p) {
		pm = 1
	}
	t.writePty([]byte(fmt.Sprintf("\x1b[?%d;%d$y", p, pm)))
}

func (t *Terminal) dsrDispatch(params []int64, priv bool) {
	p := param(params, 0, 0)
	if priv {
		return
	}
	switch p {
	case 5:
		t.writePty([]byte("\x1b[0n"))
	case 6:
		g := t.active
		t.writePty([]byte(fmt.Sprintf("\x1b[%d;%dR", g.cursor.Line+1, g.cursor.Col+1)))
	}
}

func (t *Terminal) daDispatch(params []int64, secondary bool) {
	if secondary {
		t.writePty([]byte(fmt.Sprintf("\x1b[>1;%d;0c", t.buildNumber)))
		return
	}
	t.writePty([]byte("\x1b[?62;22c"))
}

func (t *Terminal) decscusr(p int) {
	switch p {
	case 0, 1:
		t.cursorShape = CursorShapeBlock
		t.setMode(ModeCursorBlinking, true)
	case 2:
		t.cursorShape = CursorShapeBlock
		t.setMode(ModeCursorBlinking, false)
	case 3:
		t.cursorShape = CursorShapeUnderline
		t.setMode(ModeCursorBlinking, true)
	case 4:
		t.cursorShape = CursorShapeUnderline
		t.setMode(ModeCursorBlinking, false)
	case 5:
		t.cursorShape = CursorShapeBar
		t.setMode(ModeCursorBlinking, true)
	case 6:
		t.cursorShape = CursorShapeBar
		t.setMode(ModeCursorBlinking, false)
	}
}

// --- SGR --------------------------------------------------------------

func (t *Terminal) sgrDispatch(params []int64) {
	g := t.active
	tmpl := g.CursorTemplate()
	if len(params) == 0 {
		params = []int64{0}
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch p {
		case 0:
			tmpl = NewCell()
		case 1:
			tmpl.Flags |= CellFlagBold
		case 2:
			tmpl.Flags |= CellFlagDim
		case 3:
			tmpl.Flags |= CellFlagItalic
		case 4:
			tmpl.Flags = tmpl.Flags&^CellFlagAnyUnderline | CellFlagUnderline
		case 5, 6:
			tmpl.Flags |= CellFlagBlink
		case 7:
			tmpl.Flags |= CellFlagInverse
		case 8:
			tmpl.Flags |= CellFlagHidden
		case 9:
			tmpl.Flags |= CellFlagStrikeout
		case 21:
			tmpl.Flags = tmpl.Flags&^CellFlagAnyUnderline | CellFlagDoubleUnderline
		case 22:
			tmpl.Flags &^= CellFlagBold | CellFlagDim
		case 23:
			tmpl.Flags &^= CellFlagItalic
		case 24:
			tmpl.Flags &^= CellFlagAnyUnderline
		case 25:
			tmpl.Flags &^= CellFlagBlink
		case 27:
			tmpl.Flags &^= CellFlagInverse
		case 28:
			tmpl.Flags &^= CellFlagHidden
		case 29:
			tmpl.Flags &^= CellFlagStrikeout
		case 30, 31, 32, 33, 34, 35, 36, 37:
			tmpl.Fg = Named(NamedColorSlot(int(NamedBlack) + int(p-30)))
		case 38:
			n, extended := t.sgrExtendedColor(params, i)
			if extended {
				tmpl.Fg = n
				i += t.sgrExtendedAdvance(params, i)
			}
		case 39:
			tmpl.Fg = DefaultFg
		case 40, 41, 42, 43, 44, 45, 46, 47:
			tmpl.Bg = Named(NamedColorSlot(int(NamedBlack) + int(p-40)))
		case 48:
			n, extended := t.sgrExtendedColor(params, i)
			if extended {
				tmpl.Bg = n
				i += t.sgrExtendedAdvance(params, i)
			}
		case 49:
			tmpl.Bg = DefaultBg
		case 58:
			n, extended := t.sgrExtendedColor(params, i)
			if extended {
				e := tmpl.extraForWrite()
				e.UnderlineColor = &n
				i += t.sgrExtendedAdvance(params, i)
			}
		case 59:
			if tmpl.Extra != nil {
				tmpl.Extra = tmpl.Extra.clone()
				tmpl.Extra.UnderlineColor = nil
			}
		case 90, 91, 92, 93, 94, 95, 96, 97:
			tmpl.Fg = Named(NamedColorSlot(int(NamedBrightBlack) + int(p-90)))
		case 100, 101, 102, 103, 104, 105, 106, 107:
			tmpl.Bg = Named(NamedColorSlot(int(NamedBrightBlack) + int(p-100)))
		}
	}
	g.SetCursorTemplate(tmpl)
}

// sgrExtendedColor parses the 5 (indexed) or 2 (RGB) extended color forms
// following a 38/48/58 selector at params[i+1:]. Returns the resolved
// Color and whether parsing succeeded.
func (t *Terminal) sgrExtendedColor(params []int64, i int) (Color, bool) {
	if i+1 >= len(params) {
		return Color{}, false
	}
	switch params[i+1] {
	case 5:
		if i+2 >= len(params) {
			return Color{}, false
		}
		return Indexed(uint8(params[i+2])), true
	case 2:
		if i+4 >= len(params) {
			return Color{}, false
		}
		return RGB(uint8(params[i+2]), uint8(params[i+3]), uint8(params[i+4])), true
	}
	return Color{}, false
}

func (t *Terminal) sgrExtendedAdvance(params []int64, i int) int {
	if i+1 >= len(params) {
		return 0
	}
	switch params[i+1] {
	case 5:
		return 2
	case 2:
		return 4
	}
	return 0
}

// --- Perform: ESC ----------------------------------------------------

func (t *Terminal) EscDispatch(intermediates []byte, ignore bool, final byte) {
	if ignore {
		t.malformedCount++
		return
	}
	g := t.active
	if len(intermediates) == 1 {
		switch intermediates[0] {
		case '(':
			g.cursor.Charsets.Designate(G0, charsetFromFinal(final))
			return
		case ')':
			g.cursor.Charsets.Designate(G1, charsetFromFinal(final))
			return
		case '*':
			g.cursor.Charsets.Designate(G2, charsetFromFinal(final))
			return
		case '+':
			g.cursor.Charsets.Designate(G3, charsetFromFinal(final))
			return
		}
	}
	switch final {
	case 'D':
		g.Index()
	case 'E':
		g.NextLine()
	case 'H':
		g.SetTabStop()
	case 'M':
		g.ReverseIndex()
	case 'c':
		t.fullReset()
	case '=':
		t.setMode(ModeAppKeypad, true)
	case '>':
		t.setMode(ModeAppKeypad, false)
	case '7':
		g.SaveCursor(t.originMode())
	case '8':
		om, _ := g.RestoreCursor()
		t.setMode(ModeOrigin, om)
	case 'N':
		g.cursor.Charsets.SingleShift(G2)
	case 'O':
		g.cursor.Charsets.SingleShift(G3)
	default:
		t.malformedCount++
	}
}

func charsetFromFinal(final byte) Charset {
	switch final {
	case '0':
		return CharsetDECSpecialGraphics
	case 'A':
		return CharsetUK
	default:
		return CharsetASCII
	}
}

func (t *Terminal) fullReset() {
	t.primary.ClearAll()
	t.alternate.ClearAll()
	t.active = t.primary
	t.onAlt = false
	t.modes = DefaultModes
	t.palette = NewPalette()
	t.kitty = newKittyKeyboard()
	t.title = ""
	t.titleStack = nil
	t.hasExplicitTitle = false
	t.cwd = ""
	t.cursorShape = CursorShapeBlock
	t.pendingNotifications = nil
	t.notify(Event{Kind: EventResetTitle})
}

// --- Perform: OSC -------------------------------------------------------

func oscParamString(params [][]byte, i int) string {
	if i >= len(params) {
		return ""
	}
	return string(params[i])
}

func (t *Terminal) OscDispatch(params [][]byte, bellTerminated bool) {
	if len(params) == 0 {
		return
	}
	switch oscParamString(params, 0) {
	case "0", "2":
		t.setTitle(oscParamString(params, 1), true)
	case "1":
		t.setTitle(oscParamString(params, 1), true)
	case "4":
		t.oscColorIndex(params, bellTerminated)
	case "7":
		t.oscCwd(oscParamString(params, 1))
	case "8":
		t.oscHyperlink(params)
	case "9":
		t.pushNotification("", oscParamString(params, 1))
	case "10":
		t.oscNamedColor(params, NamedForeground, 10, bellTerminated)
	case "11":
		t.oscNamedColor(params, NamedBackground, 11, bellTerminated)
	case "12":
		t.oscNamedColor(params, NamedCursor, 12, bellTerminated)
	case "52":
		t.oscClipboard(params, bellTerminated)
	case "99":
		t.pushNotification("", oscParamString(params, 1))
	case "777":
		if oscParamString(params, 1) == "notify" {
			t.pushNotification(oscParamString(params, 2), oscParamString(params, 3))
		}
	case "104":
		t.oscResetColorIndex(params)
	case "133":
		t.oscPromptMarker(params)
	}
}

func (t *Terminal) setTitle(title string, explicit bool) {
	t.title = title
	if explicit {
		t.hasExplicitTitle = true
	}
	t.notify(Event{Kind: EventTitle, Text: title})
}

// pushNotification queues a desktop notification from OSC 9/99/777 and
// notifies the listener with the same payload.
func (t *Terminal) pushNotification(title, body string) {
	t.pendingNotifications = append(t.pendingNotifications, Notification{Title: title, Body: body})
	t.notify(Event{Kind: EventNotification, Title: title, Text: body})
}

func (t *Terminal) oscCwd(uri string) {
	cwd := uri
	if idx := strings.Index(cwd, "://"); idx >= 0 {
		rest := cwd[idx+3:]
		if slash := strings.IndexByte(rest, '/'); slash >= 0 {
			cwd = rest[slash:]
		} else {
			cwd = ""
		}
	}
	t.cwd = cwd
	t.hasExplicitTitle = false
}

func (t *Terminal) oscHyperlink(params [][]byte) {
	uri := oscParamString(params, len(params)-1)
	id := ""
	if len(params) >= 2 {
		for _, kv := range strings.Split(oscParamString(params, 1), ":") {
			if strings.HasPrefix(kv, "id=") {
				id = strings.TrimPrefix(kv, "id=")
			}
		}
	}
	if uri == "" {
		t.active.cursor.Template.SetHyperlink(nil)
		return
	}
	if id == "" {
		id = uuid.NewString()
	}
	t.active.cursor.Template.SetHyperlink(&Hyperlink{ID: id, URI: uri})
	t.notify(Event{Kind: EventMouseCursorDirty})
}

func (t *Terminal) oscColorIndex(params [][]byte, bellTerminated bool) {
	for i := 1; i+1 < len(params); i += 2 {
		idxStr := oscParamString(params, i)
		spec := oscParamString(params, i+1)
		var idx int
		fmt.Sscanf(idxStr, "%d", &idx)
		if spec == "?" {
			rgb := t.palette.Indexed(uint8(idx))
			term := terminator(bellTerminated)
			t.writePty([]byte(fmt.Sprintf("\x1b]4;%d;%s%s", idx, rgbSpec(rgb), term)))
			continue
		}
		if rgb, ok := parseColorSpec(spec); ok {
			t.palette.SetIndexed(uint8(idx), rgb)
			t.active.Dirty().MarkAll()
		}
	}
}

// rgbSpec renders an RGB8 as the xterm "rgb:RRRR/GGGG/BBBB" color spec,
// duplicating each 8-bit channel into the 16-bit field xterm expects.
func rgbSpec(c RGB8) string {
	return fmt.Sprintf("rgb:%02x%02x/%02x%02x/%02x%02x", c.R, c.R, c.G, c.G, c.B, c.B)
}

func (t *Terminal) oscResetColorIndex(params [][]byte) {
	for i := 1; i < len(params); i++ {
		var idx int
		fmt.Sscanf(oscParamString(params, i), "%d", &idx)
		t.palette.ResetIndexed(uint8(idx))
	}
	t.active.Dirty().MarkAll()
}

func (t *Terminal) oscNamedColor(params [][]byte, slot NamedColorSlot, oscNum int, bellTerminated bool) {
	spec := oscParamString(params, 1)
	if spec == "?" {
		var rgb RGB8
		switch slot {
		case NamedForeground:
			rgb = t.palette.Foreground()
		case NamedBackground:
			rgb = t.palette.Background()
		case NamedCursor:
			rgb = t.palette.Cursor()
		}
		term := terminator(bellTerminated)
		t.writePty([]byte(fmt.Sprintf("\x1b]%d;%s%s", oscNum, rgbSpec(rgb), term)))
		return
	}
	rgb, ok := parseColorSpec(spec)
	if !ok {
		return
	}
	switch slot {
	case NamedForeground:
		t.palette.SetForeground(rgb)
	case NamedBackground:
		t.palette.SetBackground(rgb)
	case NamedCursor:
		t.palette.SetCursor(rgb)
	}
	t.active.Dirty().MarkAll()
}

func (t *Terminal) oscClipboard(params [][]byte, bellTerminated bool) {
	selectorStr := oscParamString(params, 1)
	var selector byte = 'c'
	if len(selectorStr) > 0 {
		selector = selectorStr[0]
	}
	payload := oscParamString(params, 2)
	if payload == "?" {
		t.notify(Event{
			Kind:     EventClipboardLoad,
			Selector: selector,
			Respond: func(text string) {
				term := terminator(bellTerminated)
				encoded := base64.StdEncoding.EncodeToString([]byte(text))
				t.writePty([]byte(fmt.Sprintf("\x1b]52;%c;%s%s", selector, encoded, term)))
			},
		})
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return
	}
	t.notify(Event{Kind: EventClipboardStore, Selector: selector, Text: string(decoded)})
}

func (t *Terminal) oscPromptMarker(params [][]byte) {
	marker := oscParamString(params, 1)
	switch marker {
	case "A":
		t.promptMarker = PromptStart
		t.active.Row(t.active.cursor.Line).SetPromptStart(true)
	case "B":
		t.promptMarker = PromptCommandStart
	case "C":
		t.promptMarker = PromptOutputStart
	case "D":
		t.promptMarker = PromptNone
	}
}

func terminator(bell bool) string {
	if bell {
		return "\x07"
	}
	return "\x1b\\"
}

func parseColorSpec(spec string) (RGB8, bool) {
	spec = strings.TrimPrefix(spec, "rgb:")
	parts := strings.Split(spec, "/")
	if len(parts) != 3 {
		return RGB8{}, false
	}
	vals := make([]uint8, 3)
	for i, part := range parts {
		var v int
		if len(part) >= 2 {
			fmt.Sscanf(part[:2], "%x", &v)
		}
		vals[i] = uint8(v)
	}
	return RGB8{vals[0], vals[1], vals[2]}, true
}

// --- Perform: DCS --------------------------------------------------------
//
// Only XTGETTCAP and DECRQSS are answered; every other DCS sequence is
// buffered and dropped on Unhook, matching "others ignored".

func (t *Terminal) Hook(params []int64, intermediates []byte, ignore bool, final byte) {
	t.dcsIntermediates = append(t.dcsIntermediates[:0], intermediates...)
	t.dcsFinal = final
	t.dcsPayload = t.dcsPayload[:0]
}

func (t *Terminal) Put(b byte) {
	t.dcsPayload = append(t.dcsPayload, b)
}

func (t *Terminal) Unhook() {
	if t.dcsFinal != 'q' {
		return
	}
	switch {
	case hasIntermediate(t.dcsIntermediates, '+'):
		t.xtgettcap(string(t.dcsPayload))
	case hasIntermediate(t.dcsIntermediates, '$'):
		t.decrqss(string(t.dcsPayload))
	}
}

// xtgettcap answers a terminfo capability query (DCS + q Pt ST), Pt a
// semicolon-separated list of hex-encoded capability names. Recognized
// capabilities get DCS 1 + r <hexname>=<hexvalue> ST; everything else gets
// DCS 0 + r ST.
func (t *Terminal) xtgettcap(payload string) {
	for _, hexName := range strings.Split(payload, ";") {
		raw, err := hex.DecodeString(hexName)
		if err != nil {
			t.writePty([]byte("\x1bP0+r\x1b\\"))
			continue
		}
		value, ok := terminfoCaps[string(raw)]
		if !ok {
			t.writePty([]byte("\x1bP0+r\x1b\\"))
			continue
		}
		t.writePty([]byte(fmt.Sprintf("\x1bP1+r%s=%s\x1b\\", hexName, hex.EncodeToString([]byte(value)))))
	}
}

// terminfoCaps is the small set of capabilities this module answers
// XTGETTCAP queries for.
var terminfoCaps = map[string]string{
	"RGB":    "8/8/8",
	"Co":     "256",
	"colors": "256",
}

// decrqss answers a "request status string" query (DCS $ q Pt ST) for the
// two forms this module supports: SGR ("m") and DECSTBM scroll region
// ("r"). Pt is the full valid response string including its final letter;
// an unrecognized Pt gets DCS 0 $ r ST (invalid request).
func (t *Terminal) decrqss(payload string) {
	switch payload {
	case "m":
		t.writePty([]byte(fmt.Sprintf("\x1bP1$r%sm\x1b\\", t.sgrStateString())))
	case "r":
		region := t.active.Region()
		t.writePty([]byte(fmt.Sprintf("\x1bP1$r%d;%dr\x1b\\", region.Top+1, region.Bottom)))
	default:
		t.writePty([]byte("\x1bP0$r\x1b\\"))
	}
}

// sgrStateString renders the active cursor template's attributes as the
// semicolon-separated body of an SGR sequence (without the final "m").
func (t *Terminal) sgrStateString() string {
	tmpl := t.active.cursor.Template
	parts := []string{"0"}
	if tmpl.Flags&CellFlagBold != 0 {
		parts = append(parts, "1")
	}
	if tmpl.Flags&CellFlagDim != 0 {
		parts = append(parts, "2")
	}
	if tmpl.Flags&CellFlagItalic != 0 {
		parts = append(parts, "3")
	}
	if tmpl.Flags&CellFlagUnderline != 0 {
		parts = append(parts, "4")
	}
	if tmpl.Flags&CellFlagBlink != 0 {
		parts = append(parts, "5")
	}
	if tmpl.Flags&CellFlagInverse != 0 {
		parts = append(parts, "7")
	}
	if tmpl.Flags&CellFlagHidden != 0 {
		parts = append(parts, "8")
	}
	if tmpl.Flags&CellFlagStrikeout != 0 {
		parts = append(parts, "9")
	}
	parts = append(parts, sgrColorParts(tmpl.Fg, false)...)
	parts = append(parts, sgrColorParts(tmpl.Bg, true)...)
	return strings.Join(parts, ";")
}

// sgrColorParts renders one color as its SGR parameter sequence (30-37/
// 90-97 or 40-47/100-107 for named ANSI slots, 38/48;5;n for indexed,
// 38/48;2;r;g;b for true color); default colors contribute nothing.
func sgrColorParts(c Color, bg bool) []string {
	base := 30
	if bg {
		base = 40
	}
	switch c.Kind {
	case ColorKindNamed:
		switch {
		case c.Named == NamedForeground && !bg, c.Named == NamedBackground && bg:
			return nil
		case c.Named >= NamedBlack && c.Named <= NamedWhite:
			return []string{fmt.Sprintf("%d", base+int(c.Named)-int(NamedBlack))}
		case c.Named >= NamedBrightBlack && c.Named <= NamedBrightWhite:
			return []string{fmt.Sprintf("%d", base+60+int(c.Named)-int(NamedBrightBlack))}
		}
		return nil
	case ColorKindIndexed:
		ext := 38
		if bg {
			ext = 48
		}
		return []string{fmt.Sprintf("%d", ext), "5", fmt.Sprintf("%d", c.Index)}
	case ColorKindRGB:
		ext := 38
		if bg {
			ext = 48
		}
		return []string{fmt.Sprintf("%d", ext), "2", fmt.Sprintf("%d", c.R), fmt.Sprintf("%d", c.G), fmt.Sprintf("%d", c.B)}
	}
	return nil
}
