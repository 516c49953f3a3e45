package specgen

// SpecFile is one decoded specification document.
type SpecFile struct {
	Path string
	Stem string
	Doc  Value
}

// TestCase is a normalized test entry: desc is lower-cased without its
// trailing period, data and partials are canonical JSON text.
type TestCase struct {
	Desc     Option[string]
	Template string
	Data     Option[string]
	Partials Option[string]
	Expected string
}

type GeneratedTest struct {
	File    string
	Ordinal int
	Name    string
	Ident   string
	Case    TestCase
}

type RegistryEntry struct {
	Name    string `json:"name"`
	Ident   string `json:"ident"`
	File    string `json:"file"`
	Ordinal int    `json:"ordinal"`
}
