package specgen

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1

# Harness function every generated test calls.
entry: run
# Name of the registration table.
table: TEST_LIST
# Literal passed for desc, data or partials when a test omits them.
absent: "NULL"
# Optional header to #include at the top of the output.
# header: acutest.h
indent: 4
`

func Init(path string, force bool) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
