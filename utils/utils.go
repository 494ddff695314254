// Package utils holds helpers shared by the test suites.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// TestData is one case of testdata/testcase.yaml.
// Expected is keyed by stage: "parser", "eval", "error".
type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

// ReadTestData decodes a yaml list of test cases and drops the disabled ones.
func ReadTestData(path string) ([]TestData, error) {
	s, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data, nil
}

// FindSourceFiles returns the .lox files directly under dir, sorted by name.
func FindSourceFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.lox"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	return files, nil
}
