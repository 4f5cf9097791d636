package diagnostic

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stagedErr struct {
	msg   string
	hints []string
}

func (e *stagedErr) Error() string         { return "TestError.Broken: " + e.msg }
func (e *stagedErr) Stage() string         { return "test" }
func (e *stagedErr) Code() string          { return "TestError.Broken" }
func (e *stagedErr) Message() string       { return e.msg }
func (e *stagedErr) Suggestions() []string { return e.hints }

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), "engine: Error: boom"},
		{"staged", &stagedErr{msg: "it broke"}, "test: TestError.Broken: it broke"},
		{"wrapped", fmt.Errorf("outer: %w", &stagedErr{msg: "inner"}), "test: TestError.Broken: inner"},
		{
			"suggestions",
			&stagedErr{msg: "no member Renmae", hints: []string{"Rename", "Resize"}},
			"test: TestError.Broken: no member Renmae (did you mean Rename, Resize?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromError(tt.err).String())
		})
	}
}

func TestDiagnostics(t *testing.T) {
	var d Diagnostics

	assert.False(t, d.HasErrors())
	assert.NoError(t, d.Error())

	d.AddWarning("coerce", "ExtraToken", "ignored 1 token")
	assert.False(t, d.HasErrors())
	assert.Equal(t, "warning", d.Warnings[0].Severity.String())

	var other Diagnostics
	other.AddError(&stagedErr{msg: "a"})
	other.AddError(errors.New("b"))
	d.Merge(other)

	assert.True(t, d.HasErrors())
	assert.EqualError(t, d.Error(), "test: TestError.Broken: a; engine: Error: b")
	assert.Equal(t, "unknown", Severity(0).String())
}
