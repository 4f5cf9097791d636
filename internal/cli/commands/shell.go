package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"typeprobe/internal/catalog"
	"typeprobe/internal/engine"
	"typeprobe/internal/render"
)

const shellPrompt = "typeprobe> "

// NewShellCommand creates the interactive shell command.
func NewShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Explore types interactively",
		Long: `Start an interactive session. Instances live for the whole session, so
successive calls see each other's effects.

Select a type with .use and call its members by name, or call
Type.Member directly. Parameters follow the member name and are comma
separated. Type .help for all commands.`,
		Example: `  typeprobe shell -m fsmodel
  typeprobe> .use Folder
  typeprobe(Folder)> Rename Reports
  typeprobe(Folder)> Name`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd)
		},
	}
}

func runShell(cmd *cobra.Command) error {
	cc := NewCommandContextWithoutModules(cmd, "")
	sh := newShell(cc.Session, cc.Renderer, cmd.OutOrStdout(), cmd.ErrOrStderr())

	ctx := cmd.Context()
	for _, path := range cc.Cfg.Modules {
		sh.load(ctx, path)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sh.prompt(),
		HistoryFile:     cc.Cfg.HistoryFile,
		AutoComplete:    sh.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(sh.out, "typeprobe shell (session %s)\n", cc.Session.ID)
	_, _ = fmt.Fprintln(sh.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(sh.out)

	return sh.loop(ctx, rl)
}

// lineReader is the part of *readline.Instance the shell loop uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// loop runs lines from rl until .quit, EOF or a read failure.
func (sh *shell) loop(ctx context.Context, rl lineReader) error {
	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		if quit := sh.exec(ctx, line); quit {
			return nil
		}

		rl.SetPrompt(sh.prompt())
	}
}

// shell interprets REPL lines against one session.
type shell struct {
	session  *engine.Session
	renderer *render.Renderer
	out      io.Writer
	errOut   io.Writer

	current catalog.TypeDescriptor
}

func newShell(session *engine.Session, r *render.Renderer, out, errOut io.Writer) *shell {
	return &shell{session: session, renderer: r, out: out, errOut: errOut}
}

func (sh *shell) prompt() string {
	if sh.current.IsZero() {
		return shellPrompt
	}

	return "typeprobe(" + sh.current.ShortName() + ")> "
}

// exec runs one line and reports whether the shell should exit.
func (sh *shell) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, ".") {
		return sh.dot(ctx, line)
	}

	head, params, _ := strings.Cut(line, " ")
	params = strings.TrimSpace(params)

	typeName, member := "", head
	if i := strings.LastIndex(head, "."); i > 0 {
		typeName, member = head[:i], head[i+1:]
	} else if !sh.current.IsZero() {
		typeName = sh.current.Name
	} else {
		sh.errorf("no type selected, use .use <type> or call Type.Member")
		return false
	}

	if err := sh.renderer.Report(sh.session.InvokeByName(typeName, member, params)); err != nil {
		sh.errorf("%v", err)
	}

	return false
}

func (sh *shell) dot(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	arg := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printShellHelp(sh.out)

	case ".load":
		if arg == "" {
			sh.errorf("Usage: .load <module>")
			break
		}
		sh.load(ctx, arg)

	case ".modules":
		for _, h := range sh.session.Modules() {
			_, _ = fmt.Fprintf(sh.out, "%s\t%s\n", h.Name(), h.Path)
		}

	case ".types":
		types, err := sh.session.Types()
		if err != nil {
			sh.errorf("%v", err)
			break
		}
		sh.check(sh.renderer.Types(types))

	case ".use":
		if arg == "" {
			sh.errorf("Usage: .use <type>")
			break
		}
		td, err := sh.session.ResolveType(arg)
		if err != nil {
			sh.errorf("%v", err)
			break
		}
		sh.current = td
		if note := sh.session.Select(td); note != "" {
			sh.renderer.Note("%s", note)
		}

	case ".members":
		td := sh.current
		if arg != "" {
			var err error
			if td, err = sh.session.ResolveType(arg); err != nil {
				sh.errorf("%v", err)
				break
			}
		}
		if td.IsZero() {
			sh.errorf("Usage: .members <type>")
			break
		}
		members, err := sh.session.Members(td)
		if err != nil {
			sh.errorf("%v", err)
			break
		}
		sh.check(sh.renderer.Members(td, members))

	case ".reset":
		sh.session.Reset()
		sh.renderer.Note("all instances discarded")

	default:
		sh.errorf("Unknown command: %s (type .help for commands)", command)
	}

	return false
}

func (sh *shell) load(ctx context.Context, path string) {
	handles, err := sh.session.Load(ctx, path)
	if err != nil {
		sh.errorf("%v", err)
		return
	}

	for _, h := range handles {
		sh.renderer.Note("loaded %s", h.Name())
	}
}

func (sh *shell) typeNames(string) []string {
	types, err := sh.session.Types()
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(types))
	for _, td := range types {
		names = append(names, td.ShortName())
	}

	return names
}

func (sh *shell) completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".load"),
		readline.PcItem(".modules"),
		readline.PcItem(".types"),
		readline.PcItem(".use", readline.PcItemDynamic(sh.typeNames)),
		readline.PcItem(".members", readline.PcItemDynamic(sh.typeNames)),
		readline.PcItem(".reset"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

func (sh *shell) check(err error) {
	if err != nil {
		sh.errorf("%v", err)
	}
}

func (sh *shell) errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(sh.errOut, "Error: "+format+"\n", args...)
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  .help              Show this help message
  .load <module>     Load a linked module or plugin file
  .modules           List loaded modules
  .types             List discovered types
  .use <type>        Select a type for member calls
  .members [type]    List members of a type (default: the selected one)
  .reset             Discard all instances
  .quit / .exit      Exit the shell

Calls:
  <member> [a,b,...]         Call a member of the selected type
  <Type>.<member> [a,b,...]  Call a member of any type

Tips:
  - Missing parameters take their default value
  - Tab completion works for commands and type names
`
	_, _ = fmt.Fprintln(w, help)
}
