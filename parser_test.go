package vtcore

import "testing"

type recordingPerform struct {
	printed  []rune
	executed []byte
	csi      []csiCall
	esc      []escCall
	osc      [][]string
	oscBell  []bool
}

type csiCall struct {
	params        []int64
	intermediates []byte
	ignore        bool
	final         byte
}

type escCall struct {
	intermediates []byte
	final         byte
}

func (r *recordingPerform) Print(c rune)   { r.printed = append(r.printed, c) }
func (r *recordingPerform) Execute(b byte) { r.executed = append(r.executed, b) }

func (r *recordingPerform) CsiDispatch(params []int64, intermediates []byte, ignore bool, final byte) {
	r.csi = append(r.csi, csiCall{
		params:        append([]int64(nil), params...),
		intermediates: append([]byte(nil), intermediates...),
		ignore:        ignore,
		final:         final,
	})
}

func (r *recordingPerform) EscDispatch(intermediates []byte, ignore bool, final byte) {
	r.esc = append(r.esc, escCall{intermediates: append([]byte(nil), intermediates...), final: final})
}

func (r *recordingPerform) OscDispatch(params [][]byte, bellTerminated bool) {
	strs := make([]string, len(params))
	for i, p := range params {
		strs[i] = string(p)
	}
	r.osc = append(r.osc, strs)
	r.oscBell = append(r.oscBell, bellTerminated)
}

func (r *recordingPerform) Hook(params []int64, intermediates []byte, ignore bool, final byte) {}
func (r *recordingPerform) Put(b byte)                                                         {}
func (r *recordingPerform) Unhook()                                                            {}

func TestParserPrintsPlainText(t *testing.T) {
	p := NewParser()
	r := &recordingPerform{}
	p.Advance([]byte("hi"), r)
	if string(r.printed) != "hi" {
		t.Errorf("expected \"hi\", got %q", string(r.printed))
	}
}

func TestParserCsiCursorPosition(t *testing.T) {
	p := NewParser()
	r := &recordingPerform{}
	p.Advance([]byte("\x1b[3;4H"), r)
	if len(r.csi) != 1 {
		t.Fatalf("expected one CSI dispatch, got %d", len(r.csi))
	}
	call := r.csi[0]
	if call.final != 'H' || len(call.params) != 2 || call.params[0] != 3 || call.params[1] != 4 {
		t.Errorf("unexpected CSI dispatch: %+v", call)
	}
}

func TestParserCsiPrivateMode(t *testing.T) {
	p := NewParser()
	r := &recordingPerform{}
	p.Advance([]byte("\x1b[?1049h"), r)
	if len(r.csi) != 1 || r.csi[0].final != 'h' || len(r.csi[0].intermediates) == 0 || r.csi[0].intermediates[0] != '?' {
		t.Errorf("expected private-mode CSI dispatch, got %+v", r.csi)
	}
	if r.csi[0].params[0] != 1049 {
		t.Errorf("expected param 1049, got %v", r.csi[0].params)
	}
}

func TestParserOscBellTerminated(t *testing.T) {
	p := NewParser()
	r := &recordingPerform{}
	p.Advance([]byte("\x1b]0;my title\x07"), r)
	if len(r.osc) != 1 || r.osc[0][0] != "0" || r.osc[0][1] != "my title" {
		t.Errorf("unexpected OSC dispatch: %+v", r.osc)
	}
	if !r.oscBell[0] {
		t.Error("expected bell-terminated flag set")
	}
}

func TestParserEscDispatchWithIntermediate(t *testing.T) {
	p := NewParser()
	r := &recordingPerform{}
	p.Advance([]byte("\x1b(0"), r)
	if len(r.esc) != 1 || r.esc[0].final != '0' || len(r.esc[0].intermediates) != 1 || r.esc[0].intermediates[0] != '(' {
		t.Errorf("unexpected ESC dispatch: %+v", r.esc)
	}
}

func TestParserUTF8SplitAcrossChunks(t *testing.T) {
	p := NewParser()
	r := &recordingPerform{}
	full := []byte("世")
	p.Advance(full[:1], r)
	if len(r.printed) != 0 {
		t.Fatalf("expected no Print yet with a partial rune, got %v", r.printed)
	}
	p.Advance(full[1:], r)
	if len(r.printed) != 1 || r.printed[0] != '世' {
		t.Errorf("expected the multibyte rune completed across chunks, got %v", r.printed)
	}
}

func TestParserExecuteControlCode(t *testing.T) {
	p := NewParser()
	r := &recordingPerform{}
	p.Advance([]byte("\r\n"), r)
	if len(r.executed) != 2 || r.executed[0] != '\r' || r.executed[1] != '\n' {
		t.Errorf("expected CR and LF executed, got %v", r.executed)
	}
}

func TestParserCsiParamOverflowSetsIgnore(t *testing.T) {
	p := NewParser()
	r := &recordingPerform{}
	seq := "\x1b["
	for i := 0; i < maxCsiParams+5; i++ {
		seq += "1;"
	}
	seq += "m"
	p.Advance([]byte(seq), r)
	if len(r.csi) != 1 || !r.csi[0].ignore {
		t.Errorf("expected overflow to set ignore, got %+v", r.csi)
	}
}
