package vtcore

// ModeFlags is a bitset of terminal modes toggled by SM/RM and DECSET/DECRST,
// generalized from the teacher's scattered bool fields into one set per
// spec §3.
type ModeFlags uint32

const (
	ModeShowCursor ModeFlags = 1 << iota
	ModeAppCursor
	ModeAppKeypad
	ModeLineWrap
	ModeOrigin
	ModeInsert
	ModeAltScreen
	ModeMouseReportClick
	ModeMouseDrag
	ModeMouseMotion
	ModeMouseSgr
	ModeMouseUtf8
	ModeFocusInOut
	ModeBracketedPaste
	ModeSyncUpdate
	ModeUrgencyHints
	ModeCursorBlinking

	// Kitty progressive-enhancement keyboard flags (CSI u), one bit each so
	// they can be queried/pushed/popped independently per spec's kitty
	// keyboard protocol scope.
	ModeKittyDisambiguate
	ModeKittyReportEvents
	ModeKittyAlternateKeys
	ModeKittyAllKeysAsEscapes
	ModeKittyAssociatedText
)

// DefaultModes is the mode set a freshly constructed terminal starts with.
const DefaultModes = ModeShowCursor | ModeLineWrap

// Has reports whether every bit in mask is set.
func (m ModeFlags) Has(mask ModeFlags) bool { return m&mask == mask }

// Any reports whether any bit in mask is set.
func (m ModeFlags) Any(mask ModeFlags) bool { return m&mask != 0 }

// Set returns m with mask's bits set.
func (m ModeFlags) Set(mask ModeFlags) ModeFlags { return m | mask }

// Clear returns m with mask's bits cleared.
func (m ModeFlags) Clear(mask ModeFlags) ModeFlags { return m &^ mask }

// KittyFlagsMask isolates the five kitty keyboard enhancement bits for CSI u
// query/push/pop reporting.
const KittyFlagsMask = ModeKittyDisambiguate | ModeKittyReportEvents | ModeKittyAlternateKeys |
	ModeKittyAllKeysAsEscapes | ModeKittyAssociatedText
