package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadtower/internal/server"
)

// serveCommand runs the render view as an HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered roadmaps over HTTP",
		Long: `Serve rendered roadmaps over HTTP.

  GET /roadmap/{userId}          SVG diagram (format=json|html for other forms)
  GET /roadmap?user_id={userId}  same, addressed by query parameter
  GET /healthz                   liveness probe

Failures are answered with the inline error the render view shows, as SVG,
HTML or JSON depending on the requested format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if addr == "" {
				addr = c.Config.Server.Addr
			}
			cl, err := c.newClient()
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				Addr:       addr,
				Backend:    cl,
				Logger:     logger,
				SVGOptions: c.svgOptions(nil, &renderOpts{}),
			})
			logger.Info("Serving roadmaps", "addr", addr, "backend", cl.BaseURL())
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
