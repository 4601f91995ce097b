package sanitize

import (
	"strings"
	"testing"
)

func TestRemovesScriptBlocks(t *testing.T) {
	in := `<p>before</p><script type="text/javascript">steal(document.cookie)</script><p>after</p>`
	out := Sanitize(in)

	if strings.Contains(strings.ToLower(out), "<script") {
		t.Errorf("script tag survived: %q", out)
	}
	if strings.Contains(out, "steal(") {
		t.Errorf("script body survived: %q", out)
	}
	if !strings.Contains(out, "<p>before</p>") || !strings.Contains(out, "<p>after</p>") {
		t.Errorf("surrounding content damaged: %q", out)
	}
}

func TestRemovesStrayScriptTags(t *testing.T) {
	out := Sanitize(`<div><script src="https://evil.example/x.js"></div>`)
	if strings.Contains(strings.ToLower(out), "<script") {
		t.Errorf("unclosed script tag survived: %q", out)
	}
}

func TestRemovesEventHandlers(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"double quoted", `<p onclick="steal()">Click</p>`},
		{"single quoted", `<p onclick='steal()'>Click</p>`},
		{"unquoted", `<p onclick=steal()>Click</p>`},
		{"mixed case", `<p OnClick="steal()">Click</p>`},
		{"other handler", `<img src="a.png" onerror="pwn()">`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Sanitize(tc.in)
			if strings.Contains(strings.ToLower(out), "onclick") || strings.Contains(strings.ToLower(out), "onerror") {
				t.Errorf("event handler survived: %q", out)
			}
			if !strings.Contains(out, "Click") && !strings.Contains(out, "a.png") {
				t.Errorf("element content destroyed: %q", out)
			}
		})
	}
}

func TestEventHandlerRemovalPreservesElement(t *testing.T) {
	out := Sanitize(`<p onclick="steal()">Click</p>`)
	if out != `<p>Click</p>` {
		t.Errorf("got %q, want %q", out, `<p>Click</p>`)
	}
}

func TestNeutralizesJavascriptURIs(t *testing.T) {
	cases := []string{
		`<a href="javascript:alert(1)">x</a>`,
		`<a href='JAVASCRIPT:alert(1)'>x</a>`,
		`<a href=javascript:alert(1)>x</a>`,
		`<a href=" javascript:alert(1)">x</a>`,
	}

	for _, in := range cases {
		out := Sanitize(in)
		if strings.Contains(strings.ToLower(out), "javascript:") {
			t.Errorf("javascript: URI survived in %q", out)
		}
		if !strings.Contains(strings.ToLower(out), "blocked:") {
			t.Errorf("scheme not rewritten to inert value in %q", out)
		}
		// The anchor itself stays so layout is preserved.
		if !strings.Contains(out, "<a ") {
			t.Errorf("anchor destroyed: %q", out)
		}
	}
}

func TestRemovesIframes(t *testing.T) {
	paired := Sanitize(`<iframe src="https://evil.example"><p>fallback</p></iframe>`)
	if strings.Contains(strings.ToLower(paired), "iframe") {
		t.Errorf("paired iframe survived: %q", paired)
	}

	selfClosing := Sanitize(`<iframe src="https://evil.example"/>`)
	if strings.Contains(strings.ToLower(selfClosing), "iframe") {
		t.Errorf("self-closing iframe survived: %q", selfClosing)
	}
}

func TestRemovesMetaRefreshAndBase(t *testing.T) {
	out := Sanitize(`<meta http-equiv="refresh" content="0;url=https://evil.example"><base href="https://evil.example/">`)
	if strings.Contains(strings.ToLower(out), "refresh") || strings.Contains(strings.ToLower(out), "<base") {
		t.Errorf("navigation hijack tags survived: %q", out)
	}

	// Other meta tags stay.
	keep := Sanitize(`<meta charset="utf-8">`)
	if !strings.Contains(keep, "charset") {
		t.Errorf("harmless meta removed: %q", keep)
	}
}

func TestRemovesObjectAndEmbed(t *testing.T) {
	out := Sanitize(`<object data="x.swf"><param name="a" value="b"></object><embed src="x.swf">`)
	for _, bad := range []string{"<object", "<embed"} {
		if strings.Contains(strings.ToLower(out), bad) {
			t.Errorf("%s survived: %q", bad, out)
		}
	}
}

func TestNeutralizesForms(t *testing.T) {
	out := Sanitize(`<form action="https://evil.example/phish" method="post"><input name="pw">submit me</form>`)
	if strings.Contains(strings.ToLower(out), "<form") || strings.Contains(strings.ToLower(out), "</form") {
		t.Errorf("form survived: %q", out)
	}
	if !strings.Contains(out, `<div class="`+FormClass+`">`) || !strings.Contains(out, "</div>") {
		t.Errorf("form not rewritten to div pair: %q", out)
	}
	if !strings.Contains(out, "submit me") {
		t.Errorf("form content destroyed: %q", out)
	}
}

// Sanitize must be idempotent: a second pass over already-clean output is a
// no-op.
func TestIdempotence(t *testing.T) {
	inputs := []string{
		"",
		"plain text, no markup at all",
		`<p>simple</p>`,
		`<script>a</script><p onclick="x">y</p><a href="javascript:z">w</a>`,
		`<iframe src="a"></iframe><object data="b"></object><embed src="c">`,
		`<form><input></form><meta http-equiv="refresh" content="0"><base href="x">`,
		`<div class="form-neutralized">already neutralized</div>`,
		`<<>><p onclick=><script`,
		`<a href="https://ok.example/?q=1">fine</a>`,
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestMalformedInputPassesThrough(t *testing.T) {
	in := `<p>unclosed <b>bold <i>italic`
	if out := Sanitize(in); out != in {
		t.Errorf("harmless malformed markup altered: %q", out)
	}
}
