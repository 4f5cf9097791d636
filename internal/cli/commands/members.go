package commands

import (
	"github.com/spf13/cobra"
)

// NewMembersCommand creates the members command.
func NewMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "members <type>",
		Short: "List the properties and methods of a type",
		Long: `List the invocable members of a discovered type: exported fields as
properties, then exported methods of the pointer type. Type names match
exactly, then case-insensitively.`,
		Example: `  typeprobe members Folder -m fsmodel
  typeprobe members typeprobe/fsmodel.File -m fsmodel -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			td, err := cc.Session.ResolveType(args[0])
			if err != nil {
				return err
			}

			members, err := cc.Session.Members(td)
			if err != nil {
				return err
			}

			return cc.Renderer.Members(td, members)
		},
	}
}
