package commands

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"typeprobe/internal/config"
	"typeprobe/internal/render"
	"typeprobe/internal/source"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "describe <package>...",
		Short: "Describe the types of Go packages from source",
		Long: `Analyze Go packages without running their code and list their exported
types in declaration order with fields, methods and constructor functions.
With --marker, types implementing that interface are flagged.`,
		Example: `  typeprobe describe ./fsmodel
  typeprobe describe typeprobe/fsmodel --marker Entry -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())

			graph, err := source.NewAnalyzer(source.WithMarker(cfg.Marker), source.WithDir(dir)).LoadPackages(args...)
			if err != nil {
				return err
			}

			var types []*source.TypeInfo
			for _, path := range slices.Sorted(maps.Keys(graph.Packages)) {
				types = append(types, graph.Ordered(path)...)
			}

			return render.New(cmd.OutOrStdout(), cfg.Output).Source(types)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory package patterns are resolved in")

	return cmd
}
