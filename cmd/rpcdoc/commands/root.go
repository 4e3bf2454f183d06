package commands

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/erraggy/rpcdoc"
	"github.com/erraggy/rpcdoc/internal/config"
	"github.com/erraggy/rpcdoc/openrpc"
)

// app carries what every subcommand needs once the root command has loaded
// the configuration.
type app struct {
	stdin io.Reader

	configFile string
	logLevel   string
	logFormat  string
	debug      bool

	cfg    *config.Config
	logger *logrus.Logger
	log    openrpc.Logger
}

// NewRootCommand builds the rpcdoc command tree. Diagnostics are written to
// stderr; command output goes to stdout.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, cfg: config.Default(), log: openrpc.NopLogger{}}

	root := &cobra.Command{
		Use:   "rpcdoc",
		Short: "Browse OpenRPC API descriptions",
		Long: `rpcdoc loads an OpenRPC document, validates it, resolves its same-document
$ref pointers and arranges its methods into a namespace tree. It can print
what it finds, serve it as a JSON HTTP API or expose it as an MCP server.

Settings are read from rpcdoc.yaml (in the working directory or
$XDG_CONFIG_HOME/rpcdoc) and RPCDOC_* environment variables.`,
		Version:      rpcdoc.Version(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, stderr)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: rpcdoc.yaml in . or $XDG_CONFIG_HOME/rpcdoc)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	root.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "enable debug logging")

	root.AddCommand(
		newValidateCommand(a),
		newMethodsCommand(a),
		newTreeCommand(a),
		newResolveCommand(a),
		newDescribeCommand(a),
		newServeCommand(a),
		newMCPCommand(a),
		newVersionCommand(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, stderr io.Writer) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if a.debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.log = NewLogrusAdapter(logger)
	a.log.Debug("configuration loaded", "log_level", cfg.Log.Level, "max_depth", cfg.Expand.MaxDepth)
	return nil
}
