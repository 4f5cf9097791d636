package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"typeprobe/internal/diagnostic"
)

// CurrentVersion is the script schema version.
const CurrentVersion = "1"

// LoadFile loads and parses a YAML script from the given path.
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Script.
func Parse(data []byte) (*Script, error) {
	var sc Script

	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse script YAML: %w", err)
	}

	applyDefaults(&sc)

	return &sc, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(sc *Script) {
	if sc.Version == "" {
		sc.Version = CurrentVersion
	}

	for i := range sc.Steps {
		st := &sc.Steps[i]
		if st.Name == "" && !st.Reset {
			st.Name = st.Type + "." + st.Member
		}
	}
}

// Marshal serializes a Script to YAML.
func Marshal(sc *Script) ([]byte, error) {
	return yaml.Marshal(sc)
}

// WriteFile writes a Script to the given path.
func WriteFile(sc *Script, path string) error {
	data, err := Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal script: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write script %s: %w", path, err)
	}

	return nil
}

// Validate checks the structure of a script before anything is loaded.
func Validate(sc *Script) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if sc == nil {
		res.AddError(&ScriptError{Kind: Invalid, Msg: "script is nil"})
		return res
	}

	if sc.Version != CurrentVersion {
		res.AddError(&ScriptError{Kind: Invalid, Msg: fmt.Sprintf("unsupported version %q", sc.Version)})
	}

	if sc.Modules.IsEmpty() {
		res.AddError(&ScriptError{Kind: Invalid, Msg: "no modules to load"})
	}

	for i, st := range sc.Steps {
		pos := i + 1

		switch {
		case st.Reset && (st.Type != "" || st.Member != "" || st.Expect != nil):
			res.AddWarning("script", Invalid.String(), fmt.Sprintf("step %d: reset step ignores its other fields", pos))
		case st.Reset:
		case st.Type == "" || st.Member == "":
			res.AddError(&ScriptError{Kind: Invalid, Step: pos, Msg: "type and member are required"})
		case st.Expect != nil && st.Expect.Result != nil && st.Expect.Error != "":
			res.AddError(&ScriptError{Kind: Invalid, Step: pos, Msg: "expect either a result or an error"})
		}
	}

	return res
}
