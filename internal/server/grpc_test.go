package server

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/msto63/cmdline/internal/history/store"
	coregrpc "github.com/msto63/cmdline/pkg/core/grpc"
)

// startGRPC serves s over gRPC on a free loopback port
func startGRPC(t *testing.T, s *Server) *grpc.ClientConn {
	t.Helper()

	cfg := coregrpc.DefaultServerConfig()
	cfg.Port = 0
	gs := coregrpc.NewServer(cfg, quietLogger())
	s.RegisterGRPC(gs.GRPCServer())
	if err := gs.StartAsync(); err != nil {
		t.Fatalf("StartAsync() error = %v", err)
	}
	t.Cleanup(gs.Stop)

	conn, err := coregrpc.Dial(coregrpc.DefaultClientConfig(gs.Address()), quietLogger())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestGRPC_Tokenize(t *testing.T) {
	s, history, _ := newTestServer(t)
	client := NewTokenizerClient(startGRPC(t, s))

	tests := []struct {
		name      string
		req       TokenizeRequest
		requestID string
		want      []string
	}{
		{
			name:      "plain",
			req:       TokenizeRequest{CommandLine: `copy "a b" /q`},
			requestID: "grpc-1",
			want:      []string{"copy", "a b", "q"},
		},
		{
			name: "discard first token",
			req:  TokenizeRequest{CommandLine: `copy "a b" /q`, DiscardFirstToken: true},
			want: []string{"a b", "q"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if tt.requestID != "" {
				ctx = coregrpc.WithRequestID(ctx, tt.requestID)
			}

			req := tt.req
			resp, err := client.Tokenize(ctx, &req)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}

			if tt.requestID != "" && resp.RequestID != tt.requestID {
				t.Errorf("RequestID = %q, want %q", resp.RequestID, tt.requestID)
			}
			if resp.RequestID == "" {
				t.Error("RequestID is empty")
			}
			if resp.HistoryID == "" {
				t.Error("HistoryID is empty")
			}
			if len(resp.Arguments) != len(tt.want) {
				t.Fatalf("got %d arguments, want %d", len(resp.Arguments), len(tt.want))
			}
			for i, want := range tt.want {
				if got := resp.Arguments[i].Value(); got != want {
					t.Errorf("argument %d = %q, want %q", i, got, want)
				}
			}
		})
	}

	entries, err := history.List(context.Background(), store.Filter{Source: store.SourceGRPC})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != len(tests) {
		t.Errorf("grpc history entries = %d, want %d", len(entries), len(tests))
	}
}

func TestGRPC_Health(t *testing.T) {
	s, _, _ := newTestServer(t)
	client := healthpb.NewHealthClient(startGRPC(t, s))

	tests := []struct {
		service string
		want    healthpb.HealthCheckResponse_ServingStatus
	}{
		{"", healthpb.HealthCheckResponse_SERVING},
		{"tokenizer", healthpb.HealthCheckResponse_SERVING},
		{"cache", healthpb.HealthCheckResponse_SERVING},
		{"history", healthpb.HealthCheckResponse_SERVING},
	}

	for _, tt := range tests {
		t.Run("service="+tt.service, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: tt.service})
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if resp.GetStatus() != tt.want {
				t.Errorf("Check() status = %v, want %v", resp.GetStatus(), tt.want)
			}
		})
	}
}
