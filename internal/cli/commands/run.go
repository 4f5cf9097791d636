package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"typeprobe/internal/script"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	FailFast bool
	Record   string
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Run a session script",
		Long: `Run the steps of a YAML session script against one session and check
their expectations. The script names its modules; --module adds more.

With --record the script is written back with the observed results as
expectations, turning an exploratory script into a regression check.`,
		Example: `  typeprobe run session.yaml
  typeprobe run session.yaml --fail-fast
  typeprobe run session.yaml --record golden.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "Stop at the first failed step")
	cmd.Flags().StringVar(&opts.Record, "record", "", "Write the script with observed expectations to this file")

	return cmd
}

func runScript(cmd *cobra.Command, path string, opts *RunOptions) error {
	sc, err := script.LoadFile(path)
	if err != nil {
		return err
	}

	cc := NewCommandContextWithoutModules(cmd, sc.Marker)

	for _, m := range cc.Cfg.Modules {
		if !sc.Modules.Contains(m) {
			sc.Modules = append(sc.Modules, m)
		}
	}

	runnerOpts := []script.RunnerOption{script.WithLogger(cc.Logger)}
	if opts.FailFast {
		runnerOpts = append(runnerOpts, script.WithFailFast())
	}

	run, runErr := script.NewRunner(cc.Session, runnerOpts...).Run(cmd.Context(), sc)

	if err := cc.Renderer.Run(run); err != nil {
		return err
	}

	if opts.Record != "" && len(run.Outcomes) > 0 {
		if err := script.WriteFile(script.Record(sc, run), opts.Record); err != nil {
			return fmt.Errorf("failed to record script: %w", err)
		}

		cc.Renderer.Note("recorded %d steps to %s", len(run.Outcomes), opts.Record)

		return nil
	}

	return runErr
}
