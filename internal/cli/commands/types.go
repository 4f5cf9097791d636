package commands

import (
	"github.com/spf13/cobra"
)

// NewTypesCommand creates the types command.
func NewTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the discoverable types of the loaded modules",
		Long: `Load the configured modules and list every concrete type that implements
the module's marker interface, in declaration order. Modules without a
marker list all of their concrete types.`,
		Example: `  # Types of the linked demo module
  typeprobe types -m fsmodel

  # Types of a plugin, selected by another interface
  typeprobe types -m ./notes.so --marker Card -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			types, err := cc.Session.Types()
			if err != nil {
				return err
			}

			return cc.Renderer.Types(types)
		},
	}
}
