package privacy

import (
	"strings"
	"testing"
)

func TestStripInvisibleChars(t *testing.T) {
	in := "pay\u200Bpal.com \uFEFFhello &#8203;x &#x200B;y &zwnj;z &ZeroWidthSpace;w &#xFEFF;v"
	out := StripInvisibleChars(in)

	if out != "paypal.com hello x y z w v" {
		t.Errorf("got %q", out)
	}
}

func TestStripInvisibleCharsLeavesVisibleEntities(t *testing.T) {
	in := "5 &lt; 6 &amp; 7 &#65; &nbsp;"
	if out := StripInvisibleChars(in); out != in {
		t.Errorf("visible entities altered: %q", out)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if !s.BlockRemoteImages || !s.BlockTrackingPixels || !s.StripTrackingParams {
		t.Errorf("defaults should block everything: %+v", s)
	}

	// Settings is a comparable value type; snapshots compare by value.
	if s != DefaultSettings() {
		t.Error("equal snapshots should compare equal")
	}
	if (Settings{}) == s {
		t.Error("zero value should differ from defaults")
	}
}

func TestStripInvisibleCharsIdempotent(t *testing.T) {
	in := "a\u200D&#8204;b"
	once := StripInvisibleChars(in)
	if twice := StripInvisibleChars(once); once != twice {
		t.Errorf("not idempotent: %q vs %q", once, twice)
	}
	if strings.ContainsAny(once, "\u200B\u200C\u200D\uFEFF") {
		t.Errorf("invisible rune survived: %q", once)
	}
}
