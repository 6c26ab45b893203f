package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/emblem/internal/ui/pretty"
	"github.com/yaklabco/emblem/pkg/config"
	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/dump"
	"github.com/yaklabco/emblem/pkg/frontend"
)

// stdinName is the argument that reads a document from standard input.
const stdinName = "-"

type astFlags struct {
	format string
	output string
	force  bool
}

func newASTCommand() *cobra.Command {
	flags := &astFlags{}

	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Dump the resolved tree of a document",
		Long: `Parse and resolve one document and write its tree.

Every node is written with its kind, literal text and source span. Pass "-"
to read the document from standard input. The msgpack format is binary and
is not written to a terminal unless --force is given.

Examples:
  em ast intro.em
  em ast --format json intro.em
  em ast --format msgpack -o intro.mp intro.em`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAST(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", string(dump.FormatYAML), "dump format: yaml, json, msgpack")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the dump to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.force, "force", false, "write binary formats to a terminal")

	return cmd
}

func runAST(cmd *cobra.Command, path string, flags *astFlags) error {
	format, err := dump.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	out := cmd.OutOrStdout()
	if flags.output == "" && format.IsBinary() && !flags.force && isTerminal(out) {
		return fmt.Errorf("%w: refusing to write %s to a terminal; use --output or --force", ErrInvalidUsage, format)
	}

	sess, err := loadSession(cmd, &config.Config{})
	if err != nil {
		return err
	}

	compiler := frontend.NewCompiler(frontend.Options{Config: sess.cfg, NoLint: true})
	res, err := compileOne(sess.ctx, compiler, cmd.InOrStdin(), path)
	if err != nil {
		if d, file, ok := diag.FromError(err); ok {
			styles := pretty.NewStyles(pretty.IsColorEnabled(sess.color, cmd.ErrOrStderr()))
			fmt.Fprint(cmd.ErrOrStderr(), styles.FormatDiagnostic(file.Name, file, &d))
			return ErrLintIssuesFound
		}
		return err
	}

	if flags.output == "" {
		return dump.Write(out, res.Document, format)
	}

	f, err := os.Create(flags.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := dump.Write(f, res.Document, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

// compileOne compiles path, or standard input when path is "-".
func compileOne(ctx context.Context, compiler *frontend.Compiler, stdin io.Reader, path string) (*frontend.Result, error) {
	if path != stdinName {
		res, err := compiler.CompileFile(ctx, path)
		if err != nil {
			return nil, err
		}
		return res.Result, nil
	}

	text, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return compiler.Compile(ctx, "<stdin>", string(text))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
