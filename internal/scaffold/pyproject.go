package scaffold

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// PyprojectFile is the PEP 621 metadata file written next to setup.cfg.
const PyprojectFile = "pyproject.toml"

type pyproject struct {
	BuildSystem buildSystem  `toml:"build-system"`
	Project     projectTable `toml:"project"`
}

type buildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
}

type projectTable struct {
	Name           string        `toml:"name"`
	Version        string        `toml:"version"`
	Description    string        `toml:"description,omitempty"`
	Readme         string        `toml:"readme"`
	RequiresPython string        `toml:"requires-python,omitempty"`
	Dependencies   []string      `toml:"dependencies"`
	License        *licenseTable `toml:"license,omitempty"`
	Authors        []authorTable `toml:"authors,omitempty"`
}

type licenseTable struct {
	Text string `toml:"text"`
}

type authorTable struct {
	Name string `toml:"name"`
}

func renderPyproject(d *Data) ([]byte, error) {
	doc := pyproject{
		BuildSystem: buildSystem{
			Requires:     []string{"setuptools>=61.0"},
			BuildBackend: "setuptools.build_meta",
		},
		Project: projectTable{
			Name:         d.Name,
			Version:      d.Version,
			Description:  d.Description,
			Readme:       "README.md",
			Dependencies: []string{},
		},
	}
	if d.PythonShort != "" && strings.Contains(d.PythonShort, ".") {
		doc.Project.RequiresPython = ">=" + d.PythonShort
	}
	if d.License != "" {
		doc.Project.License = &licenseTable{Text: d.License}
	}
	if d.Author != "" {
		doc.Project.Authors = []authorTable{{Name: d.Author}}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", PyprojectFile, err)
	}
	return buf.Bytes(), nil
}
