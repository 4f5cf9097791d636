package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

var errInvocationFailed = errors.New("invocation failed")

// NewInvokeCommand creates the invoke command.
func NewInvokeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "invoke <type> <member> [params]",
		Short: "Call a method or read a property once",
		Long: `Construct the instance of a type, coerce the comma separated parameters
and invoke the member. Missing parameters take their default value, extra
ones are ignored with a warning. The command fails when the invocation does.`,
		Example: `  typeprobe invoke Folder Rename Reports -m fsmodel
  typeprobe invoke File Resize 2048 -m fsmodel --dump`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			raw := ""
			if len(args) == 3 {
				raw = args[2]
			}

			report := cc.Session.InvokeByName(args[0], args[1], raw)
			if err := cc.Renderer.Report(report); err != nil {
				return err
			}

			if !report.OK() {
				return errInvocationFailed
			}

			return nil
		},
	}
}
