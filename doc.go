// Package vtcore provides a headless VT100/xterm-compatible terminal core.
//
// This package emulates a terminal's internal state without any rendering,
// making it suitable for:
//   - Terminal multiplexers and session recorders
//   - Headless automation and screen scraping of CLI tools
//   - Building custom renderers (GUI, web, TUI) over a shared emulation core
//   - Testing terminal applications without a real PTY/GUI
//
// # Quick Start
//
// Create a terminal and feed it a byte stream containing ANSI sequences:
//
//	term := vtcore.New(vtcore.WithSize(80, 24, 1000))
//	term.Advance([]byte("\x1b[31mHello \x1b[32mWorld\x1b[0m!"))
//
//	g := term.Grid()
//	row := g.Row(0)
//	for col := 0; col < row.Len(); col++ {
//	    cell := row.Index(col)
//	    fmt.Printf("%c", cell.Char)
//	}
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Terminal]: the VT state machine; implements [Perform] and is the sole
//     entry point for a PTY byte stream via Advance
//   - [Parser]: a byte-level ECMA-48/xterm state machine that classifies
//     bytes and invokes Perform callbacks; holds no terminal semantics itself
//   - [Grid]: one screen buffer (primary or alternate): viewport, scrollback,
//     cursor, scroll region, dirty tracking, and reflow-on-resize
//   - [Row] / [Cell]: a line of cells; a cell is a rune plus colors, SGR
//     flags, and an optional extras sidecar (combining marks, hyperlink,
//     underline color)
//   - [Palette]: the 256-color indexed table plus foreground/background/
//     cursor named colors, resolving a [Color] to concrete RGB
//
// # Dual Grids
//
// Terminal maintains two Grids:
//
//   - Primary: normal mode, with scrollback
//   - Alternate: used by full-screen applications (vim, less, htop); no
//     scrollback, entered/left via CSI ?1049h/l
//
// Terminal.Grid returns whichever is currently active.
//
// # Concurrency
//
// Terminal state is guarded by a fair-mutex pair rather than a plain
// sync.RWMutex: Advance (the PTY-reader producer) tries a non-blocking
// acquire first and only falls back to a fair acquire under contention, so
// a renderer calling Lock/Unlock to walk the grid is guaranteed a turn
// instead of being starved by a tight read loop.
//
//	term.Lock()
//	snapshot := term.Grid().Row(0).CloneCells()
//	term.Unlock()
//
// # Events
//
// Side effects that reach outside the emulated screen — bell, title
// changes, clipboard access, color queries — are surfaced through the
// [Listener] interface passed via WithListener, rather than returned from
// Advance. Replies that must go back down the PTY (DSR, DA, OSC query
// replies) are written directly through the [PtyWriter] passed via
// WithWriter.
package vtcore
