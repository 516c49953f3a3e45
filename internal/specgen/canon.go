package specgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// numberMark is a private-use rune JCS copies through unescaped. Numbers
// are swapped for strings built from it so the canonicalizer never parses
// them as float64.
const numberMark = '\uE000'

// Canonicalize serialises v with the key order and string escaping of the
// JSON Canonicalization Scheme (RFC 8785). Numbers keep their source text
// and separators are written as ", " and ": ".
func Canonicalize(v Value) (string, error) {
	enc := &canonEncoder{mark: strings.Repeat(string(numberMark), longestMarkRun(v)+1)}
	var buf bytes.Buffer
	if err := enc.write(&buf, v); err != nil {
		return "", err
	}
	out, err := jsoncanonicalizer.Transform(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("canonicalize: %w", err)
	}
	return spaceSeparators(enc.restore(string(out))), nil
}

// CanonicalText canonicalises a present value; absence stays absence.
func CanonicalText(v Option[Value]) (Option[string], error) {
	value, ok := v.Get()
	if !ok {
		return None[string](), nil
	}
	text, err := Canonicalize(value)
	if err != nil {
		return None[string](), err
	}
	return Some(text), nil
}

// NormalizeDesc lower-cases a description and drops one trailing period.
func NormalizeDesc(desc Option[string]) Option[string] {
	return Map(desc, func(s string) string {
		s = cases.Lower(language.Und).String(s)
		return strings.TrimSuffix(s, ".")
	})
}

type canonEncoder struct {
	mark    string
	numbers []string
}

func (e *canonEncoder) write(buf *bytes.Buffer, v Value) error {
	switch v.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if !isJSONNumber(v.Number) {
			return fmt.Errorf("invalid number %q", v.Number)
		}
		placeholder := e.mark + strconv.Itoa(len(e.numbers))
		e.numbers = append(e.numbers, v.Number)
		return writeJSONString(buf, placeholder)
	case KindString:
		return writeJSONString(buf, v.Text)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.write(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := e.write(buf, m.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown value kind %d", int(v.Kind))
	}
	return nil
}

// restore puts the source number text back in place of each placeholder.
// No input string holds a run of marks as long as e.mark, so a quoted
// placeholder cannot match anything else.
func (e *canonEncoder) restore(s string) string {
	if len(e.numbers) == 0 {
		return s
	}
	pairs := make([]string, 0, 2*len(e.numbers))
	for i, n := range e.numbers {
		pairs = append(pairs, `"`+e.mark+strconv.Itoa(i)+`"`, n)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

func longestMarkRun(v Value) int {
	longest := 0
	scan := func(s string) {
		run := 0
		for _, r := range s {
			if r == numberMark {
				run++
				longest = max(longest, run)
			} else {
				run = 0
			}
		}
	}
	var walk func(Value)
	walk = func(v Value) {
		switch v.Kind {
		case KindString:
			scan(v.Text)
		case KindArray:
			for _, item := range v.Items {
				walk(item)
			}
		case KindObject:
			for _, m := range v.Members {
				scan(m.Key)
				walk(m.Value)
			}
		}
	}
	walk(v)
	return longest
}

// spaceSeparators adds a space after every ',' and ':' outside strings.
func spaceSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	inString, escaped := false, false
	for _, r := range s {
		b.WriteRune(r)
		switch {
		case escaped:
			escaped = false
		case inString && r == '\\':
			escaped = true
		case r == '"':
			inString = !inString
		case !inString && (r == ',' || r == ':'):
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func isJSONNumber(s string) bool {
	if s == "" {
		return false
	}
	c, _ := utf8.DecodeRuneInString(s)
	if c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(s))
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(raw)
	return nil
}
