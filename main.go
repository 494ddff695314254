package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/takoeight0821/lox/config"
	"github.com/takoeight0821/lox/driver"
	"github.com/takoeight0821/lox/eval"
	"github.com/takoeight0821/lox/logging"
)

// Exit statuses follow sysexits.h.
const (
	exitDataErr  = 65
	exitNoInput  = 66
	exitSoftware = 70
)

var (
	Version = "0.1.0"

	cfgFile   string
	inputPath string
	logLevel  string
	noColor   bool
	source    string
)

var rootCmd = &cobra.Command{
	Use:   "lox [script]",
	Short: "Evaluate lox expressions",
	Long: `lox evaluates expressions of a small dynamically typed language.

Without a script it starts an interactive prompt; an empty line or /q quits.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

var tokensCmd = &cobra.Command{
	Use:   "tokens [script]",
	Short: "Print the tokens of a script",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokens,
}

var astCmd = &cobra.Command{
	Use:   "ast [script]",
	Short: "Print the syntax tree of a script in prefix form",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAst,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lox v%s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	const inputUsage = "input file path"

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", inputUsage)

	for _, cmd := range []*cobra.Command{tokensCmd, astCmd} {
		cmd.Flags().StringVarP(&source, "eval", "e", "", "source text instead of a script")
	}

	rootCmd.AddCommand(tokensCmd, astCmd, versionCmd)
}

// exitError carries the process exit status out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session is the configuration and logger shared by every command.
type session struct {
	cfg    config.Config
	logger *slog.Logger
	close  func() error
}

func newSession() (*session, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if noColor {
		cfg.Color = false
	}

	logger, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", "path", cfgFile, "extension", cfg.Extension, "history", cfg.HistoryFile)

	return &session{cfg: cfg, logger: logger, close: closer}, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	path := inputPath
	if len(args) == 1 {
		path = args[0]
	}

	if path == "" {
		return RunPrompt(s, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	return RunFile(s, path, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// RunFile runs the script at path.
func RunFile(s *session, path string, stdout, stderr io.Writer) error {
	if s.cfg.Extension != "" && filepath.Ext(path) != s.cfg.Extension {
		fmt.Fprintf(stderr, "invalid file extension: expected %s\n", s.cfg.Extension)
		return &exitError{code: exitNoInput, err: fmt.Errorf("invalid file extension: %s", path)}
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(stderr, "file %s not found\n", path)
			return &exitError{code: exitNoInput, err: err}
		}
		return err
	}

	r := driver.NewRunner(stdout, s.logger)
	if err := r.Run(string(bytes)); err != nil {
		report(stderr, err, s.cfg.Color)
		var fatal *eval.FatalError
		if errors.As(err, &fatal) {
			return &exitError{code: exitSoftware, err: err}
		}
		return &exitError{code: exitDataErr, err: err}
	}

	return nil
}

// report prints every pipeline error on its own line.
func report(w io.Writer, err error, colored bool) {
	prefix := color.New(color.FgRed, color.Bold)
	if !colored {
		prefix.DisableColor()
	}

	var fatal *eval.FatalError
	if errors.As(err, &fatal) {
		prefix.Fprint(w, "Fatal:")
		fmt.Fprintf(w, " [line %d] %s\n", fatal.Line, fatal.Message)
		return
	}

	errs := driver.Errors(err)
	if len(errs) == 0 {
		prefix.Fprint(w, "Error:")
		fmt.Fprintf(w, " %v\n", err)
		return
	}
	for _, e := range errs {
		prefix.Fprint(w, "Error:")
		fmt.Fprintf(w, " %v\n", e)
	}
}

// readSource returns the -e text, or the content of the script argument.
func readSource(args []string) (string, error) {
	if source != "" {
		return source, nil
	}
	if len(args) == 0 {
		return "", errors.New("either a script or -e is required")
	}
	bytes, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func runTokens(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	src, err := readSource(args)
	if err != nil {
		return err
	}

	tokens, err := driver.NewRunner(cmd.OutOrStdout(), s.logger).Lex(src)
	if err != nil {
		report(cmd.ErrOrStderr(), err, s.cfg.Color)
		return &exitError{code: exitDataErr, err: err}
	}
	for _, tok := range tokens {
		fmt.Fprintln(cmd.OutOrStdout(), tok)
	}

	return nil
}

func runAst(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	src, err := readSource(args)
	if err != nil {
		return err
	}

	r := driver.NewRunner(cmd.OutOrStdout(), s.logger)
	tokens, err := r.Lex(src)
	if err != nil {
		report(cmd.ErrOrStderr(), err, s.cfg.Color)
		return &exitError{code: exitDataErr, err: err}
	}

	program, err := r.Parse(tokens)
	if err != nil {
		report(cmd.ErrOrStderr(), err, s.cfg.Color)
		return &exitError{code: exitDataErr, err: err}
	}
	fmt.Fprintln(cmd.OutOrStdout(), program)

	return nil
}
