package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantOut []string
	}{
		{
			name:    "default version",
			version: "0.1.0",
			wantOut: []string{"typeprobe v0.1.0", "Go type explorer"},
		},
		{
			name:    "dev version",
			version: "dev",
			wantOut: []string{"typeprobe vdev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.version)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)

			assert.NoError(t, cmd.Execute())

			for _, want := range tt.wantOut {
				assert.True(t, strings.Contains(buf.String(), want), "output should contain %q, got: %s", want, buf.String())
			}
		})
	}
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{cmd: NewTypesCommand(), use: "types"},
		{cmd: NewMembersCommand(), use: "members <type>"},
		{cmd: NewInvokeCommand(), use: "invoke <type> <member> [params]"},
		{cmd: NewShellCommand(), use: "shell"},
		{cmd: NewRunCommand(), use: "run <script.yaml>", flags: []string{"fail-fast", "record"}},
		{cmd: NewDescribeCommand(), use: "describe <package>...", flags: []string{"dir"}},
		{cmd: NewGenCommand(), use: "gen <package>...", flags: []string{"dir", "out", "name", "func", "register", "plugin", "dry-run"}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Long, "Long should not be empty")
			assert.NotEmpty(t, tt.cmd.Example, "Example should not be empty")

			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}
