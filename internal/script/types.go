package script

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"typeprobe/internal/common"
)

// Script is a parsed session script.
type Script struct {
	Version string        `yaml:"version"`
	Modules StringOrArray `yaml:"modules"`
	Marker  string        `yaml:"marker,omitempty"`
	Steps   []Step        `yaml:"steps"`
}

// Step is one invocation or a reset.
type Step struct {
	Name   string        `yaml:"name,omitempty"`
	Type   string        `yaml:"type,omitempty"`
	Member string        `yaml:"member,omitempty"`
	Params StringOrArray `yaml:"params,omitempty"`
	Reset  bool          `yaml:"reset,omitempty"`
	Expect *Expect       `yaml:"expect,omitempty"`
}

// RawParams joins the parameters into the comma separated form the session
// expects.
func (s Step) RawParams() string {
	return strings.Join(s.Params, ",")
}

// Expect describes the expected outcome of a step.
type Expect struct {
	// Result is the exact result text, "void" for no result.
	Result *string `yaml:"result,omitempty"`
	// Error is the expected diagnostic code, e.g. "CoercionError.BadFormat".
	Error string `yaml:"error,omitempty"`
	// Instance must be contained in the instance text after the call.
	Instance string `yaml:"instance,omitempty"`
}

// StringOrArray is a list that may be written as a single string.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}
