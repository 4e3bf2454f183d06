package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/erraggy/rpcdoc/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve <file|->",
		Short: "Serve a document over a read-only JSON HTTP API",
		Long: `Serve loads the document once and answers:

  GET /health                      {"status":"healthy"}
  GET /api/document                the raw document
  GET /api/stats                   cache and method counts
  GET /api/methods?q=              searchable method list
  GET /api/methods/{name}          one method, fully resolved
  GET /api/tree?open=a&open=a/b    namespace tree (all=true opens everything)
  GET /api/resolve?ref=#/...       value at a pointer (expand=true for schemas)

The listen address defaults to serve.addr (RPCDOC_SERVE_ADDR). The server
stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadStore(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				a.cfg.Serve.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(s,
				server.WithLogger(a.log),
				server.WithShutdownTimeout(a.cfg.Serve.ShutdownTimeout),
			)
			return srv.ListenAndRun(ctx, a.cfg.Serve.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides serve.addr)")
	return cmd
}
