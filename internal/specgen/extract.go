package specgen

import (
	"fmt"
	"strings"
)

// Extract validates a spec document and returns its test entries in file
// order with ordinals starting at 1.
func Extract(file *SpecFile) ([]GeneratedTest, error) {
	if file.Doc.Kind != KindObject {
		return nil, SchemaErrorf(file.Path, 0, "document is a %s, want a mapping with a \"tests\" key", file.Doc.Kind)
	}
	tests, ok := file.Doc.Field("tests")
	if !ok {
		return nil, SchemaErrorf(file.Path, 0, "missing \"tests\" key")
	}
	if tests.Kind != KindArray {
		return nil, SchemaErrorf(file.Path, 0, "\"tests\" is a %s, want a sequence", tests.Kind)
	}

	for idx, entry := range tests.Items {
		ordinal := idx + 1
		if entry.Kind != KindObject {
			return nil, SchemaErrorf(file.Path, ordinal, "entry is a %s, want a mapping", entry.Kind)
		}
		for _, field := range []string{"template", "expected"} {
			if _, ok := entry.Field(field); !ok {
				return nil, MissingField(file.Path, ordinal, field)
			}
		}
	}
	if err := ValidateSpecDocument(file.Doc); err != nil {
		return nil, &Error{Kind: KindSchema, File: file.Path, Message: "invalid spec document", Cause: err}
	}

	out := make([]GeneratedTest, 0, len(tests.Items))
	for idx, entry := range tests.Items {
		ordinal := idx + 1
		tc, err := normalizeEntry(entry)
		if err != nil {
			return nil, &Error{Kind: KindParse, File: file.Path, Ordinal: ordinal, Message: "normalize entry", Cause: err}
		}
		out = append(out, GeneratedTest{
			File:    file.Path,
			Ordinal: ordinal,
			Name:    TestName(file.Stem, ordinal),
			Ident:   TestIdent(file.Stem, ordinal),
			Case:    tc,
		})
	}
	return out, nil
}

func TestName(stem string, ordinal int) string {
	return fmt.Sprintf("%s-%d", stem, ordinal)
}

// TestIdent derives the C function name for an entry. Characters that
// cannot appear in a C identifier (the "~" of optional suite modules,
// dashes, dots) become underscores.
func TestIdent(stem string, ordinal int) string {
	return fmt.Sprintf("test_%s_%d", identPart(stem), ordinal)
}

func identPart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

func normalizeEntry(entry Value) (TestCase, error) {
	tc := TestCase{}
	if desc, ok := entry.Field("desc"); ok {
		tc.Desc = NormalizeDesc(Some(desc.Text))
	}
	template, _ := entry.Field("template")
	expected, _ := entry.Field("expected")
	tc.Template = template.Text
	tc.Expected = expected.Text

	var err error
	if tc.Data, err = CanonicalText(optionalField(entry, "data")); err != nil {
		return TestCase{}, fmt.Errorf("data: %w", err)
	}
	if tc.Partials, err = CanonicalText(optionalField(entry, "partials")); err != nil {
		return TestCase{}, fmt.Errorf("partials: %w", err)
	}
	return tc, nil
}

func optionalField(entry Value, key string) Option[Value] {
	v, ok := entry.Field(key)
	if !ok {
		return None[Value]()
	}
	return Some(v)
}
