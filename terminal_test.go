package vtcore

import "testing"

type captureWriter struct {
	writes [][]byte
}

func (w *captureWriter) WritePty(p []byte) (int, error) {
	w.writes = append(w.writes, append([]byte(nil), p...))
	return len(p), nil
}

type captureListener struct {
	events []Event
}

func (l *captureListener) Notify(e Event) { l.events = append(l.events, e) }

func rowText(g *Grid, line int, n int) string {
	row := g.Row(line)
	out := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, row.Index(i).Char)
	}
	return string(out)
}

func TestTerminalPrintsPlainText(t *testing.T) {
	term := New(WithSize(10, 3, 100))
	term.Advance([]byte("hi"))
	if got := rowText(term.Grid(), 0, 2); got != "hi" {
		t.Errorf("expected \"hi\" on row 0, got %q", got)
	}
}

func TestTerminalSGRBoldAndReset(t *testing.T) {
	term := New(WithSize(10, 3, 100))
	term.Advance([]byte("\x1b[1mA\x1b[0mB"))
	row := term.Grid().Row(0)
	if row.Index(0).Flags&CellFlagBold == 0 {
		t.Error("expected 'A' to carry bold")
	}
	if row.Index(1).Flags&CellFlagBold != 0 {
		t.Error("expected SGR reset to clear bold before 'B'")
	}
}

func TestTerminalSGRTrueColor(t *testing.T) {
	term := New(WithSize(10, 3, 100))
	term.Advance([]byte("\x1b[38;2;10;20;30mX"))
	fg := term.Grid().Row(0).Index(0).Fg
	if fg.Kind != ColorKindRGB || fg.R != 10 || fg.G != 20 || fg.B != 30 {
		t.Errorf("expected true-color foreground, got %+v", fg)
	}
}

func TestTerminalCursorMotionCSI(t *testing.T) {
	term := New(WithSize(10, 5, 100))
	term.Advance([]byte("\x1b[3;4H"))
	cur := term.Grid().Cursor()
	if cur.Line != 2 || cur.Col != 3 {
		t.Errorf("expected cursor at (2,3) zero-based, got (%d,%d)", cur.Line, cur.Col)
	}
}

func TestTerminalAltScreenSwap(t *testing.T) {
	term := New(WithSize(10, 3, 100))
	term.Advance([]byte("primary"))
	term.Advance([]byte("\x1b[?1049h"))
	if term.Grid() != term.alternate {
		t.Fatal("expected alternate grid active after CSI ?1049h")
	}
	term.Advance([]byte("\x1b[?1049l"))
	if term.Grid() != term.primary {
		t.Fatal("expected primary grid restored after CSI ?1049l")
	}
	if got := rowText(term.Grid(), 0, 7); got != "primary" {
		t.Errorf("expected primary content preserved across alt-screen swap, got %q", got)
	}
}

func TestTerminalOscTitle(t *testing.T) {
	listener := &captureListener{}
	term := New(WithSize(10, 3, 100), WithListener(listener))
	term.Advance([]byte("\x1b]0;hello\x07"))
	if term.Title() != "hello" {
		t.Errorf("expected title \"hello\", got %q", term.Title())
	}

	found := false
	for _, e := range listener.events {
		if e.Kind == EventTitle && e.Text == "hello" {
			found = true
		}
	}
	if !found {
		t.Error("expected a Title event to be emitted")
	}
}

func TestTerminalDSRCursorPositionReport(t *testing.T) {
	writer := &captureWriter{}
	term := New(WithSize(10, 5, 100), WithWriter(writer))
	term.Advance([]byte("\x1b[3;4H\x1b[6n"))
	if len(writer.writes) == 0 {
		t.Fatal("expected a DSR reply written to the pty")
	}
	if string(writer.writes[len(writer.writes)-1]) != "\x1b[3;4R" {
		t.Errorf("expected cursor position report, got %q", writer.writes[len(writer.writes)-1])
	}
}

func TestTerminalDA1Report(t *testing.T) {
	writer := &captureWriter{}
	term := New(WithSize(10, 5, 100), WithWriter(writer))
	term.Advance([]byte("\x1b[c"))
	if len(writer.writes) != 1 || string(writer.writes[0]) != "\x1b[?62;22c" {
		t.Errorf("unexpected DA1 reply: %v", writer.writes)
	}
}

func TestTerminalModesSetAndClear(t *testing.T) {
	term := New(WithSize(10, 5, 100))
	term.Advance([]byte("\x1b[?25l"))
	if term.Modes().Has(ModeShowCursor) {
		t.Error("expected cursor hidden after CSI ?25l")
	}
	term.Advance([]byte("\x1b[?25h"))
	if !term.Modes().Has(ModeShowCursor) {
		t.Error("expected cursor shown again after CSI ?25h")
	}
}

func TestTerminalKittyKeyboardReport(t *testing.T) {
	writer := &captureWriter{}
	term := New(WithSize(10, 5, 100), WithWriter(writer))
	term.Advance([]byte("\x1b[>1u"))
	term.Advance([]byte("\x1b[?u"))
	if len(writer.writes) != 1 || string(writer.writes[0]) != "\x1b[?1u" {
		t.Errorf("expected kitty report of flags=1, got %v", writer.writes)
	}
}

func TestTerminalOSC9QueuesNotification(t *testing.T) {
	listener := &captureListener{}
	term := New(WithSize(10, 3, 100), WithListener(listener))
	term.Advance([]byte("\x1b]9;disk full\x07"))

	pending := term.PendingNotifications()
	if len(pending) != 1 || pending[0].Body != "disk full" || pending[0].Title != "" {
		t.Fatalf("expected one title-less notification, got %+v", pending)
	}

	found := false
	for _, e := range listener.events {
		if e.Kind == EventNotification && e.Text == "disk full" {
			found = true
		}
	}
	if !found {
		t.Error("expected a Notification event to be emitted")
	}

	if drained := term.DrainNotifications(); len(drained) != 1 {
		t.Fatalf("expected DrainNotifications to return the queued notification, got %v", drained)
	}
	if len(term.PendingNotifications()) != 0 {
		t.Error("expected the queue empty after Drain")
	}
}

func TestTerminalOSC777NotifyCarriesTitleAndBody(t *testing.T) {
	term := New(WithSize(10, 3, 100))
	term.Advance([]byte("\x1b]777;notify;Build;passed\x07"))
	pending := term.PendingNotifications()
	if len(pending) != 1 || pending[0].Title != "Build" || pending[0].Body != "passed" {
		t.Fatalf("expected title+body notification, got %+v", pending)
	}
}

func TestTerminalOSC133DDoesNotFabricateChildExit(t *testing.T) {
	listener := &captureListener{}
	term := New(WithSize(10, 3, 100), WithListener(listener))
	term.Advance([]byte("\x1b]133;D;0\x07"))
	for _, e := range listener.events {
		if e.Kind == EventChildExit {
			t.Error("OSC 133;D must not synthesize a ChildExit event")
		}
	}
}

func TestTerminalReportChildExitPassesThrough(t *testing.T) {
	listener := &captureListener{}
	term := New(WithSize(10, 3, 100), WithListener(listener))
	term.ReportChildExit(7)
	found := false
	for _, e := range listener.events {
		if e.Kind == EventChildExit && e.ExitCode == 7 {
			found = true
		}
	}
	if !found {
		t.Error("expected ReportChildExit to emit EventChildExit with the given code")
	}
}

func TestTerminalDECRQSSReportsSGRState(t *testing.T) {
	writer := &captureWriter{}
	term := New(WithSize(10, 3, 100), WithWriter(writer))
	term.Advance([]byte("\x1b[1;4m\x1bP$qm\x1b\\"))
	if len(writer.writes) == 0 {
		t.Fatal("expected a DECRQSS reply")
	}
	got := string(writer.writes[len(writer.writes)-1])
	if got != "\x1bP1$r0;1;4m\x1b\\" {
		t.Errorf("unexpected DECRQSS SGR reply: %q", got)
	}
}

func TestTerminalDECRQSSReportsScrollRegion(t *testing.T) {
	writer := &captureWriter{}
	term := New(WithSize(10, 24, 100), WithWriter(writer))
	term.Advance([]byte("\x1b[5;20r\x1bP$qr\x1b\\"))
	got := string(writer.writes[len(writer.writes)-1])
	if got != "\x1bP1$r5;20r\x1b\\" {
		t.Errorf("unexpected DECRQSS region reply: %q", got)
	}
}

func TestTerminalXTGETTCAPReportsRGB(t *testing.T) {
	writer := &captureWriter{}
	term := New(WithSize(10, 3, 100), WithWriter(writer))
	term.Advance([]byte("\x1bP+q524742\x1b\\"))
	if len(writer.writes) != 1 || string(writer.writes[0]) != "\x1bP1+r524742=382f382f38\x1b\\" {
		t.Errorf("unexpected XTGETTCAP reply: %v", writer.writes)
	}
}

func TestTerminalXTGETTCAPUnknownCapability(t *testing.T) {
	writer := &captureWriter{}
	term := New(WithSize(10, 3, 100), WithWriter(writer))
	term.Advance([]byte("\x1bP+q000000\x1b\\"))
	if len(writer.writes) != 1 || string(writer.writes[0]) != "\x1bP0+r\x1b\\" {
		t.Errorf("unexpected XTGETTCAP reply for unknown capability: %v", writer.writes)
	}
}

func TestTerminalFullResetClearsTitleAndModes(t *testing.T) {
	term := New(WithSize(10, 5, 100))
	term.Advance([]byte("\x1b]0;keep\x07\x1b[?25l"))
	term.Advance([]byte("\x1bc"))
	if term.Title() != "" {
		t.Error("expected title cleared after RIS")
	}
	if !term.Modes().Has(ModeShowCursor) {
		t.Error("expected modes reset to defaults after RIS")
	}
}
