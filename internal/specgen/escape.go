package specgen

import "strings"

// DefaultAbsent is the C literal emitted for a field that was not given.
const DefaultAbsent = "NULL"

// literalEscapes run in order; the backslash rule must come first so the
// escapes added by later rules are not escaped again.
var literalEscapes = []struct {
	from string
	to   string
}{
	{`\`, `\\`},
	{"\n", `\n`},
	{"\r", `\r`},
	{"\t", `\t`},
	{`"`, `\"`},
}

// QuoteC returns s as a double-quoted C string literal.
func QuoteC(s string) string {
	for _, esc := range literalEscapes {
		s = strings.ReplaceAll(s, esc.from, esc.to)
	}
	return `"` + s + `"`
}

// EscapeText quotes a present value or returns the absent literal.
func EscapeText(text Option[string], absent string) string {
	s, ok := text.Get()
	if !ok {
		return absent
	}
	return QuoteC(s)
}
