package schemeregistry

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bonus-tax-engine/internal/bracket"
	"bonus-tax-engine/internal/model"
)

//go:embed schemes/*.yaml
var builtinFS embed.FS

type schemeFile struct {
	Schemes []model.TaxScheme `yaml:"schemes"`
}

// Parse decodes a YAML scheme document and validates every table in it.
func Parse(data []byte) ([]model.TaxScheme, error) {
	var f schemeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scheme YAML: %w", err)
	}
	if len(f.Schemes) == 0 {
		return nil, fmt.Errorf("scheme document defines no schemes")
	}
	for _, s := range f.Schemes {
		if err := validateScheme(s); err != nil {
			return nil, err
		}
	}
	return f.Schemes, nil
}

// LoadFile reads and parses a scheme file.
func LoadFile(path string) ([]model.TaxScheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scheme file %s: %w", path, err)
	}
	schemes, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schemes, nil
}

// Builtin returns the schemes bundled with the binary.
func Builtin() []model.TaxScheme {
	entries, err := builtinFS.ReadDir("schemes")
	if err != nil {
		panic(fmt.Sprintf("read embedded schemes: %v", err))
	}
	var out []model.TaxScheme
	for _, e := range entries {
		data, err := builtinFS.ReadFile("schemes/" + e.Name())
		if err != nil {
			panic(fmt.Sprintf("read embedded scheme %s: %v", e.Name(), err))
		}
		schemes, err := Parse(data)
		if err != nil {
			panic(fmt.Sprintf("embedded scheme %s: %v", e.Name(), err))
		}
		out = append(out, schemes...)
	}
	return out
}

func validateScheme(s model.TaxScheme) error {
	if s.ID == "" {
		return fmt.Errorf("scheme without id")
	}
	if s.MonthlyStartPoint < 0 {
		return fmt.Errorf("scheme %s: negative monthly_start_point", s.ID)
	}
	if err := bracket.Check(s.Brackets); err != nil {
		return fmt.Errorf("scheme %s: %w", s.ID, err)
	}
	return nil
}
