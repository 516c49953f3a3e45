package specgen

import (
	"bytes"

	"github.com/charmbracelet/log"
)

// Generate compiles the spec files in order into C source: one function per
// test followed by the registration table. Any error aborts the whole pass
// and no output is returned.
func Generate(paths []string, cfg Config) ([]byte, *Registry, error) {
	emitter, err := NewEmitter(cfg)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := emitter.EmitHeader(&buf); err != nil {
		return nil, nil, err
	}
	registry := NewRegistry()
	for _, path := range paths {
		tests, err := loadTests(path)
		if err != nil {
			return nil, nil, err
		}
		for _, test := range tests {
			if err := registry.Add(test); err != nil {
				return nil, nil, err
			}
			if err := emitter.EmitTest(&buf, test); err != nil {
				return nil, nil, err
			}
		}
	}
	if err := emitter.EmitRegistry(&buf, registry); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), registry, nil
}

// Check runs the same validation as Generate without rendering anything.
func Check(paths []string) (*Registry, error) {
	registry := NewRegistry()
	for _, path := range paths {
		tests, err := loadTests(path)
		if err != nil {
			return nil, err
		}
		for _, test := range tests {
			if err := registry.Add(test); err != nil {
				return nil, err
			}
		}
	}
	return registry, nil
}

func loadTests(path string) ([]GeneratedTest, error) {
	file, err := LoadSpecFile(path)
	if err != nil {
		return nil, err
	}
	tests, err := Extract(file)
	if err != nil {
		return nil, err
	}
	log.Debug("spec file loaded", "path", path, "tests", len(tests))
	return tests, nil
}
