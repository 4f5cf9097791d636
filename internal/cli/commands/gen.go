package commands

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"typeprobe/internal/config"
	"typeprobe/internal/gen"
	"typeprobe/internal/source"
)

// GenOptions holds options for the gen command.
type GenOptions struct {
	Dir      string
	Out      string
	Name     string
	FuncName string
	Register bool
	Plugin   bool
	DryRun   bool
}

// NewGenCommand creates the gen command.
func NewGenCommand() *cobra.Command {
	opts := &GenOptions{}

	cmd := &cobra.Command{
		Use:   "gen <package>...",
		Short: "Generate module manifests from package sources",
		Long: `Analyze Go packages and write a manifest file into each of them. The
manifest lists the marker interface (--marker) and its implementations, or
every concrete type without a marker, with constructors and parameter
names taken from the source.

--register adds an init function linking the module into binaries that
import the package. --plugin adds the Manifest symbol plugins export.`,
		Example: `  typeprobe gen ./fsmodel --marker Entry --register
  typeprobe gen ./examples/notes --marker Card --plugin
  typeprobe gen ./fsmodel --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Directory package patterns are resolved in")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Output directory (default: the package directory)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Module name (default: the package name)")
	cmd.Flags().StringVar(&opts.FuncName, "func", gen.DefaultGeneratorConfig().FuncName, "Name of the generated manifest function")
	cmd.Flags().BoolVar(&opts.Register, "register", false, "Register the module as linked module in init")
	cmd.Flags().BoolVar(&opts.Plugin, "plugin", false, "Export the Manifest symbol for plugin builds")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the generated code instead of writing it")

	return cmd
}

func runGen(cmd *cobra.Command, patterns []string, opts *GenOptions) error {
	cfg := config.FromContext(cmd.Context())
	log := config.GetLogger(cmd.Context())

	graph, err := source.NewAnalyzer(source.WithMarker(cfg.Marker), source.WithDir(opts.Dir)).LoadPackages(patterns...)
	if err != nil {
		return err
	}

	for _, path := range slices.Sorted(maps.Keys(graph.Packages)) {
		pkg := graph.Packages[path]

		outDir := opts.Out
		if outDir == "" {
			outDir = pkg.Dir
		}

		genCfg := gen.DefaultGeneratorConfig()
		genCfg.ModuleName = opts.Name
		genCfg.FuncName = opts.FuncName
		genCfg.OutputDir = outDir
		genCfg.Register = opts.Register
		genCfg.Plugin = opts.Plugin

		file, err := gen.NewGenerator(genCfg).Generate(graph, path)
		if err != nil {
			return err
		}

		if opts.DryRun {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s", file.Filename, file.Content)
			continue
		}

		if err := gen.WriteFiles([]gen.GeneratedFile{*file}, outDir); err != nil {
			return err
		}

		log.Info("manifest generated", "package", path, "file", file.Filename)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", filepath.Join(outDir, file.Filename))
	}

	return nil
}
