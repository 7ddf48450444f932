package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/logbook/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command, v *viper.Viper) {
	var (
		transport   string
		httpHost    string
		httpPort    int
		httpPath    string
		httpTLSCert string
		httpTLSKey  string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes the archive months, daylines, messages
and rendered index fragments through the Model Context Protocol.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, persistence, err := load(v)
			if err != nil {
				return err
			}

			path := strings.TrimSpace(httpPath)
			if path == "" {
				path = "/mcp"
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			runner := mcp.Runner{
				Persistence:      persistence,
				Name:             "logbook",
				Version:          version,
				PerPage:          cfg.PerPage,
				NewOnTop:         cfg.NewOnTop,
				HTTPEndpointPath: path,
				HTTPServerCert:   strings.TrimSpace(httpTLSCert),
				HTTPServerKey:    strings.TrimSpace(httpTLSKey),
			}

			switch strings.ToLower(strings.TrimSpace(transport)) {
			case "", string(mcp.TransportHTTP):
				host := strings.TrimSpace(httpHost)
				if host == "" {
					host = "127.0.0.1"
				}
				if httpPort < 0 || httpPort > 65535 {
					return fmt.Errorf("invalid http-port %d", httpPort)
				}

				runner.Transport = mcp.TransportHTTP
				runner.HTTPListenAddr = net.JoinHostPort(host, strconv.Itoa(httpPort))
				runner.OnHTTPListening = func(a net.Addr) {
					scheme := "http"
					if runner.HTTPServerCert != "" && runner.HTTPServerKey != "" {
						scheme = "https"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s://%s%s\n", scheme, a, path)
				}
			case string(mcp.TransportStdio):
				runner.Transport = mcp.TransportStdio
			default:
				return fmt.Errorf("unsupported transport %q (expected http or stdio)", transport)
			}

			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&httpPath, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&httpTLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&httpTLSKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}
