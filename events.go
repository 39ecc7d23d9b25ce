package vtcore

// EventKind discriminates the outward Event union. The terminal core never
// performs I/O itself (no PTY access, no clipboard, no window system): every
// side effect the VT stream requests is surfaced as an Event for the host
// to act on, and host replies for query-style sequences are written back
// through the PtyWriter this terminal was constructed with. This collapses
// the teacher's seven separate per-concern Provider interfaces (providers.go)
// into one outward contract, per the unified Listener shape this module
// uses instead.
type EventKind uint8

const (
	// EventWakeup asks the host to redraw/flush; emitted at the end of every
	// Terminal.Advance call, whether or not the bytes changed any state.
	EventWakeup EventKind = iota
	// EventBell is BEL (0x07).
	EventBell
	// EventTitle carries a new window title (OSC 0/2).
	EventTitle
	// EventResetTitle asks the host to restore whatever title preceded the
	// terminal's customization.
	EventResetTitle
	// EventClipboardStore asks the host to store Text on the clipboard
	// identified by Selector (OSC 52 set).
	EventClipboardStore
	// EventClipboardLoad asks the host to read the clipboard identified by
	// Selector and invoke Respond with its contents (OSC 52 query).
	EventClipboardLoad
	// EventColorRequest asks the host to resolve a named/dynamic color and
	// invoke Respond with it. The Terminal never emits it: its OSC 4/10/11/12
	// query handlers answer from the Palette and write the reply straight
	// to the PtyWriter.
	EventColorRequest
	// EventPtyWrite asks the host to write Bytes to the pseudo-terminal
	// (used for DSR/DA/DECRPM replies and other synthetic input).
	EventPtyWrite
	// EventCursorBlinkingChange reports a DECSCUSR-driven change to the
	// cursor's blink enable bit.
	EventCursorBlinkingChange
	// EventMouseCursorDirty asks the host to re-evaluate which mouse cursor
	// icon should be shown (mouse-reporting mode changed).
	EventMouseCursorDirty
	// EventChildExit reports that the PTY the host is reading from hit EOF,
	// carrying the child's exit code in ExitCode. The core never observes
	// this itself (it has no PTY handle); a host calls
	// Terminal.ReportChildExit to pass it through.
	EventChildExit
	// EventNotification reports a desktop notification requested via OSC
	// 9/99/777, carrying a title (when the sequence supplied one) in Title
	// and a body in Text. The same notification is also appended to the
	// terminal's pending-notification queue (see Terminal.DrainNotifications).
	EventNotification
)

// Notification is a desktop notification queued by OSC 9 (iTerm2-style,
// body only), OSC 99 (kitty notification protocol, body only), or OSC 777
// (rxvt-unicode "notify" action, title+body).
type Notification struct {
	Title string
	Body  string
}

// Event is a single outward notification. Only the fields relevant to Kind
// are populated.
type Event struct {
	Kind EventKind

	Title    string // EventNotification only; empty when the sequence supplied none
	Text     string
	Selector byte // clipboard selector: 'c', 'p', 'q', 's', '0'-'7'
	Bytes    []byte
	ExitCode int
	Blinking bool

	// Respond is set for query-style events (EventClipboardLoad,
	// EventColorRequest) and must be invoked by the host with the resolved
	// payload once available, producing the bytes this terminal writes back
	// through its PtyWriter.
	Respond func(payload string)
}

// Listener receives outward Events. Implementations must not block for long
// inside Notify since it is typically called from within the data-lock
// critical section (see fairmutex.go).
type Listener interface {
	Notify(Event)
}

// PtyWriter is the narrow write-back surface a terminal uses to answer
// query sequences (DSR, DA1/DA2, DECRPM, XTVERSION, OSC color/clipboard
// replies). It is not used for forwarding user keystrokes; that belongs to
// the host's own input path, out of this module's scope.
type PtyWriter interface {
	WritePty(p []byte) (int, error)
}

// ListenerFunc adapts a plain function to a Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) Notify(e Event) { f(e) }

// discardListener is used when a terminal is constructed without an
// explicit listener, so Notify calls are always safe to make
// unconditionally.
type discardListener struct{}

func (discardListener) Notify(Event) {}

// discardWriter is used when a terminal is constructed without an explicit
// PtyWriter.
type discardWriter struct{}

func (discardWriter) WritePty(p []byte) (int, error) { return len(p), nil }
