package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/cmdline/internal/server"
	coregrpc "github.com/msto63/cmdline/pkg/core/grpc"
	"github.com/msto63/cmdline/pkg/core/version"
)

var (
	serveHost     string
	servePort     int
	serveGRPCPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startet den HTTP/WebSocket- und gRPC-Server",
	Long: `Startet den Tokenizer-Server.

Endpunkte:
  GET  /health       - Status, Version, Laufzeit
  POST /v1/tokenize  - {"command_line": "...", "extended_arguments": false, "discard_first_token": false}
  GET  /v1/ws        - WebSocket mit {"type": "tokenize", "payload": {...}} und {"type": "ping"}

gRPC (eigener Port, --grpc-port -1 schaltet ab):
  cmdline.v1.Tokenizer/Tokenize - gleiche Nachrichten wie REST, Codec "json"
  grpc.health.v1.Health/Check   - Gesamtstatus oder einzelne Prüfung

Beenden mit Ctrl+C (SIGINT) oder SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host (default aus Konfiguration: 127.0.0.1)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port (default aus Konfiguration: 8370)")
	serveCmd.Flags().IntVar(&serveGRPCPort, "grpc-port", 0, "gRPC-Port, negativ schaltet gRPC ab (default aus Konfiguration: 8371)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("host") {
		appConfig.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		appConfig.Server.Port = servePort
	}
	if cmd.Flags().Changed("grpc-port") {
		appConfig.Server.GRPCPort = serveGRPCPort
	}
	if err := appConfig.Validate(); err != nil {
		return err
	}

	recorder, closeHistory := openRecorder()
	defer closeHistory()

	srv := server.New(server.Config{
		Host:         appConfig.Server.Host,
		Port:         appConfig.Server.Port,
		ReadTimeout:  appConfig.Server.ReadTimeout.Duration,
		WriteTimeout: appConfig.Server.WriteTimeout.Duration,
		PingInterval: appConfig.Server.PingInterval.Duration,
		Version:      version.Server,
	}, recorder, appLogger.With("component", "server"))

	if err := srv.StartAsync(); err != nil {
		return err
	}

	var grpcSrv *coregrpc.Server
	if appConfig.GRPCEnabled() {
		grpcCfg := coregrpc.DefaultServerConfig()
		grpcCfg.Host = appConfig.Server.Host
		grpcCfg.Port = appConfig.Server.GRPCPort
		grpcSrv = coregrpc.NewServer(grpcCfg, appLogger.With("component", "grpc"))
		srv.RegisterGRPC(grpcSrv.GRPCServer())

		if err := grpcSrv.StartAsync(); err != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "cmdline Server v%s\n", version.Server)
	fmt.Fprintf(out, "  Tokenize:  http://%s/v1/tokenize\n", srv.Address())
	fmt.Fprintf(out, "  WebSocket: ws://%s/v1/ws\n", srv.Address())
	fmt.Fprintf(out, "  Health:    http://%s/health\n", srv.Address())
	if grpcSrv != nil {
		fmt.Fprintf(out, "  gRPC:      %s\n", grpcSrv.Address())
	}
	fmt.Fprintln(out, "Drücke Ctrl+C zum Beenden")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	appLogger.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if grpcSrv != nil {
		grpcSrv.StopWithTimeout(ctx)
	}
	return srv.Shutdown(ctx)
}
