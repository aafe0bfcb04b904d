package project

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"go.yaml.in/yaml/v3"

	"github.com/Cyclip/pyproj/internal/imports"
)

// Default values applied when the user leaves a prompt empty.
const (
	DefaultLicense       = "MIT"
	DefaultPythonVersion = "3"
)

// Metadata describes a project about to be generated.
type Metadata struct {
	Name          string `yaml:"name" json:"name"`
	Description   string `yaml:"description,omitempty" json:"description,omitempty"`
	Author        string `yaml:"author,omitempty" json:"author,omitempty"`
	License       string `yaml:"license,omitempty" json:"license,omitempty"`
	PythonVersion string `yaml:"python_version,omitempty" json:"python_version,omitempty"`
}

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reserved names cannot be used as a project (and therefore package) name:
// Python keywords plus the directories of the generated layout.
var reserved = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	"docs": true, "examples": true, "src": true, "test": true, "tests": true,
}

// ValidateName checks that name can be imported as a top-level package and
// will not shadow a builtin module.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("project name must not be empty")
	case !namePattern.MatchString(name):
		return fmt.Errorf("invalid project name %q: use letters, digits and underscores, not starting with a digit", name)
	case reserved[name]:
		return fmt.Errorf("invalid project name %q: reserved word", name)
	case imports.IsBuiltin(name):
		return fmt.Errorf("invalid project name %q: shadows the builtin module %s", name, name)
	}
	return nil
}

// Validate checks the name rules and the metadata schema.
func (m *Metadata) Validate() error {
	if err := ValidateName(m.Name); err != nil {
		return err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	result, err := validateJSON(data)
	if err != nil {
		return err
	}
	return result.Err()
}

// ApplyDefaults fills empty license and python version fields.
func (m *Metadata) ApplyDefaults() {
	if m.License == "" {
		m.License = DefaultLicense
	}
	if m.PythonVersion == "" {
		m.PythonVersion = DefaultPythonVersion
	}
}

// LoadMetadata reads a metadata document (as used by "create --from"),
// validates it against the schema and decodes it.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}
