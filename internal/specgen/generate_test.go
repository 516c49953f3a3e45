package specgen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSpec(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestGenerateBasic(t *testing.T) {
	dir := t.TempDir()
	path := writeSpec(t, dir, "basic.json", `{"tests":[{"desc":"Basic.","template":"{{x}}","data":{"x":"y"},"expected":"y"}]}`)

	out, registry, err := Generate([]string{path}, DefaultConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := `static void
test_basic_1(void)
{
    run("basic", "{{x}}", "{\"x\": \"y\"}", NULL, "y");
}

TEST_LIST = {
    { "basic-1", test_basic_1 },
    { 0 }
};
`
	if string(out) != want {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if registry.Len() != 1 {
		t.Fatalf("expected 1 registry entry, got %d", registry.Len())
	}
}

func TestGenerateNoFiles(t *testing.T) {
	out, registry, err := Generate(nil, DefaultConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "TEST_LIST = {\n    { 0 }\n};\n" {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if registry.Len() != 0 {
		t.Fatalf("expected empty registry")
	}
}

func TestGenerateKeepsFileOrder(t *testing.T) {
	dir := t.TempDir()
	b := writeSpec(t, dir, "b.json", `{"tests":[{"template":"1","expected":"1"},{"template":"2","expected":"2"}]}`)
	a := writeSpec(t, dir, "a.json", `{"tests":[{"template":"x","expected":"x"}]}`)

	out, registry, err := Generate([]string{a, b}, DefaultConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var names []string
	for _, entry := range registry.Entries() {
		names = append(names, entry.Name)
	}
	if strings.Join(names, ",") != "a-1,b-1,b-2" {
		t.Fatalf("unexpected registry order: %v", names)
	}

	text := string(out)
	last := -1
	for _, row := range []string{`{ "a-1", test_a_1 }`, `{ "b-1", test_b_1 }`, `{ "b-2", test_b_2 }`, `{ 0 }`} {
		idx := strings.Index(text, row)
		if idx <= last {
			t.Fatalf("row %s missing or out of order in:\n%s", row, text)
		}
		last = idx
	}
	if !strings.HasSuffix(text, "    { 0 }\n};\n") {
		t.Fatalf("table must end with the sentinel row:\n%s", text)
	}
	if strings.Index(text, "test_a_1(void)") > strings.Index(text, "test_b_1(void)") {
		t.Fatalf("functions out of order:\n%s", text)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := writeSpec(t, dir, "sections.json", `{"tests":[
		{"desc":"Nested.","template":"{{#a}}{{b}}{{/a}}","data":{"z":1,"a":{"b":"c"},"m":[1,2]},"partials":{"q":"r","p":"\t"},"expected":"c"},
		{"template":"\"quoted\"\\","expected":"\n"}
	]}`)

	first, _, err := Generate([]string{path}, DefaultConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, _, err := Generate([]string{path}, DefaultConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("outputs differ:\n%s\n---\n%s", first, second)
	}
	if !strings.Contains(string(first), `"{\"p\": \"\\t\", \"q\": \"r\"}"`) {
		t.Fatalf("partials not canonical:\n%s", first)
	}
}

func TestGenerateAbortsOnSchemaError(t *testing.T) {
	dir := t.TempDir()
	good := writeSpec(t, dir, "good.json", `{"tests":[{"template":"x","expected":"x"}]}`)
	bad := writeSpec(t, dir, "bad.json", `{"tests":[{"template":"x"}]}`)

	out, registry, err := Generate([]string{good, bad}, DefaultConfig())
	if !IsKind(err, KindSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if out != nil || registry != nil {
		t.Fatalf("no output expected on failure")
	}
}

func TestGenerateAbortsOnParseError(t *testing.T) {
	dir := t.TempDir()
	bad := writeSpec(t, dir, "bad.json", `{"tests": [`)
	good := writeSpec(t, dir, "good.json", `{"tests":[{"template":"x","expected":"x"}]}`)

	out, _, err := Generate([]string{bad, good}, DefaultConfig())
	if !IsKind(err, KindParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if out != nil {
		t.Fatalf("no output expected on failure")
	}
}

func TestGenerateYAMLMatchesJSON(t *testing.T) {
	jsonDir := t.TempDir()
	yamlDir := t.TempDir()
	jsonPath := writeSpec(t, jsonDir, "comments.json", `{"overview":"o","tests":[{"name":"Inline","desc":"Comment blocks should be removed.","data":{},"template":"12345{{! Comment }}67890","expected":"1234567890"}]}`)
	yamlPath := writeSpec(t, yamlDir, "comments.yml", `overview: o
tests:
  - name: Inline
    desc: Comment blocks should be removed.
    data: { }
    template: '12345{{! Comment }}67890'
    expected: '1234567890'
`)

	fromJSON, _, err := Generate([]string{jsonPath}, DefaultConfig())
	if err != nil {
		t.Fatalf("generate json: %v", err)
	}
	fromYAML, _, err := Generate([]string{yamlPath}, DefaultConfig())
	if err != nil {
		t.Fatalf("generate yaml: %v", err)
	}
	if !bytes.Equal(fromJSON, fromYAML) {
		t.Fatalf("outputs differ:\n%s\n---\n%s", fromJSON, fromYAML)
	}
	if !strings.Contains(string(fromJSON), `run("comment blocks should be removed", "12345{{! Comment }}67890", "{}", NULL, "1234567890");`) {
		t.Fatalf("unexpected call:\n%s", fromJSON)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	path := writeSpec(t, dir, "inverted.json", `{"tests":[{"template":"a","expected":"a"},{"template":"b","expected":"b"}]}`)

	registry, err := Check([]string{path})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if registry.Len() != 2 {
		t.Fatalf("expected 2 tests, got %d", registry.Len())
	}

	if _, err := Check([]string{filepath.Join(dir, "missing.json")}); !IsKind(err, KindParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}
