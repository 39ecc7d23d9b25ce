package vtcore

import "testing"

func TestRuneWidthBasic(t *testing.T) {
	if RuneWidth('a') != 1 {
		t.Errorf("expected ASCII width 1, got %d", RuneWidth('a'))
	}
	if RuneWidth('世') != 2 {
		t.Errorf("expected CJK wide char width 2, got %d", RuneWidth('世'))
	}
}

func TestIsZeroWidthCombiningMark(t *testing.T) {
	if !IsZeroWidth(0x0301) {
		t.Error("expected combining acute accent to be zero width")
	}
	if IsZeroWidth('a') {
		t.Error("ordinary ASCII should not be zero width")
	}
}

func TestGraphemeJoinsZWJSequence(t *testing.T) {
	if !GraphemeJoins(0x200D, '\U0001F468') {
		t.Error("expected ZWJ to join with the following rune")
	}
}

func TestGraphemeJoinsUnrelatedRunes(t *testing.T) {
	if GraphemeJoins('a', 'b') {
		t.Error("unrelated ASCII letters should not join into one cluster")
	}
}
