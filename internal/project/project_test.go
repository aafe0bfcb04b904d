package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	valid := []string{"myapp", "MyApp", "_private", "app2", "data_tools"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "2fast", "my-app", "my app", "class", "None", "os", "json", "tests", "café"}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q) = nil, want error", name)
		}
	}
}

func TestValidate_Document(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		valid   bool
		keyword string
	}{
		{"minimal", "name: myapp\n", true, ""},
		{"full", "name: myapp\ndescription: A tool\nauthor: Jane\nlicense: MIT\npython_version: \"3.11\"\n", true, ""},
		{"missing name", "description: nothing\n", false, "required"},
		{"empty name", "name: \"\"\n", false, "minLength"},
		{"bad pattern", "name: my-app\n", false, "pattern"},
		{"unknown field", "name: myapp\nhomepage: x\n", false, "additionalProperties"},
		{"bad python version", "name: myapp\npython_version: latest\n", false, "pattern"},
		{"wrong type", "name: 42\n", false, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if result.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (issues: %v)", result.Valid, tt.valid, result.Issues)
			}
			if tt.valid {
				if result.Err() != nil {
					t.Errorf("Err() = %v, want nil", result.Err())
				}
				return
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword {
					found = true
				}
			}
			if !found {
				t.Errorf("no %q issue in %v", tt.keyword, result.Issues)
			}
			if result.Err() == nil {
				t.Error("Err() = nil for invalid result")
			}
		})
	}
}

func TestValidate_MalformedYAML(t *testing.T) {
	if _, err := Validate([]byte("name: [unterminated\n")); err == nil {
		t.Error("expected parse error")
	}
}

func TestMetadataValidate(t *testing.T) {
	m := &Metadata{Name: "myapp", Description: "demo"}
	m.ApplyDefaults()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if m.License != DefaultLicense || m.PythonVersion != DefaultPythonVersion {
		t.Errorf("defaults not applied: %+v", m)
	}

	bad := &Metadata{Name: "myapp", PythonVersion: "three"}
	err := bad.Validate()
	if err == nil || !strings.Contains(err.Error(), "/python_version") {
		t.Errorf("Validate() = %v, want python_version issue", err)
	}

	if err := (&Metadata{Name: "sys"}).Validate(); err == nil {
		t.Error("expected builtin name to be rejected")
	}
}

func TestLoadMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")
	doc := "name: webapp\ndescription: Small web service\nauthor: Sam\nlicense: Apache-2.0\npython_version: \"3.12\"\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMetadata(path)
	if err != nil {
		t.Fatalf("LoadMetadata() error: %v", err)
	}
	want := Metadata{Name: "webapp", Description: "Small web service", Author: "Sam", License: "Apache-2.0", PythonVersion: "3.12"}
	if *m != want {
		t.Errorf("LoadMetadata() = %+v, want %+v", *m, want)
	}
}

func TestLoadMetadata_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := os.WriteFile(path, []byte("name: 1bad\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadMetadata(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q should name the file", err)
	}
}

func TestLoadMetadata_Missing(t *testing.T) {
	if _, err := LoadMetadata(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
