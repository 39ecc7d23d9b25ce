package vtcore

import "unicode/utf8"

const (
	maxCsiParams  = 32
	maxOscBytes   = 4096
	maxDcsPayload = 4096
)

type parserState uint8

const (
	stateGround parserState = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateOscString
	stateDcsEntry
	stateDcsParam
	stateDcsIntermediate
	stateDcsPassthrough
	stateDcsIgnore
	stateSosPmApcString
)

// Perform receives parser output events, patterned on the standard
// vte-style "one method per dispatch kind" handler contract (spec §9): the
// parser itself stays agnostic to what the terminal does with each event.
type Perform interface {
	Print(r rune)
	Execute(b byte)
	CsiDispatch(params []int64, intermediates []byte, ignore bool, final byte)
	EscDispatch(intermediates []byte, ignore bool, final byte)
	OscDispatch(params [][]byte, bellTerminated bool)
	Hook(params []int64, intermediates []byte, ignore bool, final byte)
	Put(b byte)
	Unhook()
}

// Parser is a byte-level ECMA-48/xterm state machine. It holds no
// knowledge of terminal semantics; it only classifies bytes and invokes
// Perform methods at the right moments. UTF-8 decoding happens here, with
// partial multi-byte sequences held across Advance calls.
type Parser struct {
	state parserState

	params     []int64
	paramsIdx  int
	currentVal int64
	hasParam   bool
	ignore     bool

	intermediates []byte

	oscBuf      []byte
	oscParamBuf [][]byte
	oscStart    int

	dcsBuf []byte

	// utf8Pending holds bytes of a multi-byte UTF-8 sequence observed at
	// the end of a chunk, to be completed by the next Advance call.
	utf8Pending []byte
}

// NewParser returns a parser in the Ground state.
func NewParser() *Parser {
	return &Parser{}
}

// Advance feeds bytes to the parser, invoking perform's methods for every
// event produced. Safe to call repeatedly with successive chunks of a
// byte stream; incomplete UTF-8 sequences at a chunk boundary are held
// and completed by the next call.
func (p *Parser) Advance(data []byte, perform Perform) {
	if len(p.utf8Pending) > 0 {
		data = append(append([]byte(nil), p.utf8Pending...), data...)
		p.utf8Pending = nil
	}

	i := 0
	for i < len(data) {
		b := data[i]

		if p.state == stateGround && b >= 0x80 {
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && size <= 1 {
				if !utf8.FullRune(data[i:]) {
					p.utf8Pending = append([]byte(nil), data[i:]...)
					return
				}
				perform.Print(utf8.RuneError)
				i++
				continue
			}
			perform.Print(r)
			i += size
			continue
		}

		p.step(b, perform)
		i++
	}
}

func (p *Parser) step(b byte, perform Perform) {
	switch p.state {
	case stateGround:
		p.stepGround(b, perform)
	case stateEscape:
		p.stepEscape(b, perform)
	case stateEscapeIntermediate:
		p.stepEscapeIntermediate(b, perform)
	case stateCsiEntry:
		p.stepCsiEntry(b, perform)
	case stateCsiParam:
		p.stepCsiParam(b, perform)
	case stateCsiIntermediate:
		p.stepCsiIntermediate(b, perform)
	case stateCsiIgnore:
		p.stepCsiIgnore(b)
	case stateOscString:
		p.stepOscString(b, perform)
	case stateDcsEntry:
		p.stepDcsEntry(b, perform)
	case stateDcsParam:
		p.stepDcsParam(b, perform)
	case stateDcsIntermediate:
		p.stepDcsIntermediate(b, perform)
	case stateDcsPassthrough:
		p.stepDcsPassthrough(b, perform)
	case stateDcsIgnore:
		p.stepDcsIgnore(b)
	case stateSosPmApcString:
		p.stepSosPmApcString(b)
	}
}

func (p *Parser) toGround() {
	p.state = stateGround
	p.params = p.params[:0]
	p.paramsIdx = 0
	p.currentVal = 0
	p.hasParam = false
	p.ignore = false
	p.intermediates = p.intermediates[:0]
}

func (p *Parser) stepGround(b byte, perform Perform) {
	switch {
	case b == 0x1b:
		p.state = stateEscape
		p.intermediates = p.intermediates[:0]
	case b < 0x20 || b == 0x7f:
		perform.Execute(b)
	default:
		perform.Print(rune(b))
	}
}

func (p *Parser) stepEscape(b byte, perform Perform) {
	switch {
	case b < 0x20:
		perform.Execute(b)
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
		p.state = stateEscapeIntermediate
	case b == '[':
		p.beginCsi()
	case b == ']':
		p.beginOsc()
	case b == 'P':
		p.beginDcs()
	case b == 'X' || b == '^' || b == '_':
		p.state = stateSosPmApcString
	case b >= 0x30 && b <= 0x7e:
		perform.EscDispatch(p.intermediates, false, b)
		p.toGround()
	default:
		p.toGround()
	}
}

func (p *Parser) stepEscapeIntermediate(b byte, perform Perform) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
	case b >= 0x30 && b <= 0x7e:
		perform.EscDispatch(p.intermediates, false, b)
		p.toGround()
	default:
		p.toGround()
	}
}

func (p *Parser) beginCsi() {
	p.state = stateCsiEntry
	p.params = p.params[:0]
	p.paramsIdx = 0
	p.currentVal = 0
	p.hasParam = false
	p.ignore = false
	p.intermediates = p.intermediates[:0]
}

func (p *Parser) pushParam() {
	if len(p.params) >= maxCsiParams {
		p.ignore = true
		return
	}
	p.params = append(p.params, p.currentVal)
	p.currentVal = 0
	p.hasParam = false
}

func (p *Parser) stepCsiEntry(b byte, perform Perform) {
	switch {
	case b >= '0' && b <= '9':
		p.currentVal = p.currentVal*10 + int64(b-'0')
		p.hasParam = true
		p.state = stateCsiParam
	case b == ';':
		p.pushParam()
		p.state = stateCsiParam
	case b == ':':
		p.state = stateCsiParam
	case b >= 0x3c && b <= 0x3f:
		p.intermediates = append(p.intermediates, b)
		p.state = stateCsiParam
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.finishCsiParam()
		perform.CsiDispatch(p.params, p.intermediates, p.ignore, b)
		p.toGround()
	case b < 0x20:
		perform.Execute(b)
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) finishCsiParam() {
	if p.hasParam || len(p.params) == 0 {
		p.pushParam()
	}
}

func (p *Parser) stepCsiParam(b byte, perform Perform) {
	switch {
	case b >= '0' && b <= '9':
		p.currentVal = p.currentVal*10 + int64(b-'0')
		p.hasParam = true
	case b == ';':
		p.pushParam()
	case b == ':':
		// sub-parameter separator: treated as a plain separator here since
		// this terminal has no sequence that needs the finer distinction.
		p.pushParam()
	case b >= 0x3c && b <= 0x3f:
		p.intermediates = append(p.intermediates, b)
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.finishCsiParam()
		perform.CsiDispatch(p.params, p.intermediates, p.ignore, b)
		p.toGround()
	case b < 0x20:
		perform.Execute(b)
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) stepCsiIntermediate(b byte, perform Perform) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
	case b >= 0x40 && b <= 0x7e:
		p.finishCsiParam()
		perform.CsiDispatch(p.params, p.intermediates, p.ignore, b)
		p.toGround()
	case b < 0x20:
		perform.Execute(b)
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) stepCsiIgnore(b byte) {
	if b >= 0x40 && b <= 0x7e {
		p.toGround()
	}
}

func (p *Parser) beginOsc() {
	p.state = stateOscString
	p.oscBuf = p.oscBuf[:0]
	p.oscParamBuf = p.oscParamBuf[:0]
	p.oscStart = 0
}

func (p *Parser) stepOscString(b byte, perform Perform) {
	switch b {
	case 0x07: // BEL terminator
		p.flushOscParam()
		perform.OscDispatch(p.oscParamBuf, true)
		p.toGround()
	case 0x1b:
		// ESC ends the string: the OSC is dispatched at once (not marked
		// bell-terminated) and the parser moves to Escape state, where the
		// '\\' of an ST arrives as an ordinary ESC dispatch and any other
		// byte starts a new escape sequence.
		p.flushOscParam()
		perform.OscDispatch(p.oscParamBuf, false)
		p.state = stateEscape
	case ';':
		p.flushOscParam()
	default:
		if len(p.oscBuf) < maxOscBytes {
			p.oscBuf = append(p.oscBuf, b)
		}
	}
}

func (p *Parser) flushOscParam() {
	p.oscParamBuf = append(p.oscParamBuf, append([]byte(nil), p.oscBuf...))
	p.oscBuf = p.oscBuf[:0]
}

func (p *Parser) beginDcs() {
	p.state = stateDcsEntry
	p.params = p.params[:0]
	p.paramsIdx = 0
	p.currentVal = 0
	p.hasParam = false
	p.ignore = false
	p.intermediates = p.intermediates[:0]
	p.dcsBuf = p.dcsBuf[:0]
}

func (p *Parser) stepDcsEntry(b byte, perform Perform) {
	switch {
	case b >= '0' && b <= '9':
		p.currentVal = p.currentVal*10 + int64(b-'0')
		p.hasParam = true
		p.state = stateDcsParam
	case b == ';':
		p.pushParam()
		p.state = stateDcsParam
	case b >= 0x3c && b <= 0x3f:
		p.intermediates = append(p.intermediates, b)
		p.state = stateDcsParam
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
		p.state = stateDcsIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.finishCsiParam()
		perform.Hook(p.params, p.intermediates, p.ignore, b)
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) stepDcsParam(b byte, perform Perform) {
	switch {
	case b >= '0' && b <= '9':
		p.currentVal = p.currentVal*10 + int64(b-'0')
		p.hasParam = true
	case b == ';':
		p.pushParam()
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
		p.state = stateDcsIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.finishCsiParam()
		perform.Hook(p.params, p.intermediates, p.ignore, b)
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) stepDcsIntermediate(b byte, perform Perform) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		p.intermediates = append(p.intermediates, b)
	case b >= 0x40 && b <= 0x7e:
		p.finishCsiParam()
		perform.Hook(p.params, p.intermediates, p.ignore, b)
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) stepDcsPassthrough(b byte, perform Perform) {
	switch b {
	case 0x1b:
		perform.Unhook()
		p.state = stateEscape
	default:
		if len(p.dcsBuf) < maxDcsPayload {
			p.dcsBuf = append(p.dcsBuf, b)
			perform.Put(b)
		}
	}
}

func (p *Parser) stepDcsIgnore(b byte) {
	if b == 0x1b {
		p.state = stateEscape
	}
}

func (p *Parser) stepSosPmApcString(b byte) {
	if b == 0x1b {
		p.state = stateEscape
	}
}
