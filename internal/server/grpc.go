// ============================================================================
// cmdline - Command Line Tokenizer Toolkit
// ============================================================================
//
// Package:     server
// Description: gRPC tokenizer service using a JSON codec
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/msto63/cmdline/internal/history/store"
	coregrpc "github.com/msto63/cmdline/pkg/core/grpc"
)

// TokenizeMethod is the full gRPC method name of Tokenize
const TokenizeMethod = "/cmdline.v1.Tokenizer/Tokenize"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec carries the REST request and response types over gRPC.
// Clients select it with the content subtype "json".
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "json"
}

// TokenizerServer is the server API of cmdline.v1.Tokenizer
type TokenizerServer interface {
	Tokenize(ctx context.Context, req *TokenizeRequest) (*TokenizeResponse, error)
}

var tokenizerServiceDesc = grpc.ServiceDesc{
	ServiceName: "cmdline.v1.Tokenizer",
	HandlerType: (*TokenizerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Tokenize",
			Handler:    tokenizeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cmdline/v1/tokenizer",
}

func tokenizeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(TokenizeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TokenizerServer).Tokenize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TokenizeMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TokenizerServer).Tokenize(ctx, req.(*TokenizeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// tokenizerService serves Tokenize from the shared cache and recorder
type tokenizerService struct {
	server *Server
}

func (t *tokenizerService) Tokenize(ctx context.Context, req *TokenizeRequest) (*TokenizeResponse, error) {
	resp := t.server.tokenize(ctx, coregrpc.GetRequestID(ctx), store.SourceGRPC, *req)
	t.server.logger.WithRequestID(resp.RequestID).Debug("Tokenized command line",
		"arguments", len(resp.Arguments),
		"transport", "grpc",
	)
	return resp, nil
}

// RegisterGRPC registers the tokenizer and the health service on gs.
// Health reports the same registry as GET /health.
func (s *Server) RegisterGRPC(gs *grpc.Server) {
	gs.RegisterService(&tokenizerServiceDesc, &tokenizerService{server: s})
	coregrpc.NewHealthService(s.health).Register(gs)
}

// TokenizerClient calls cmdline.v1.Tokenizer
type TokenizerClient struct {
	cc grpc.ClientConnInterface
}

// NewTokenizerClient creates a client on cc
func NewTokenizerClient(cc grpc.ClientConnInterface) *TokenizerClient {
	return &TokenizerClient{cc: cc}
}

// Tokenize sends one command line
func (c *TokenizerClient) Tokenize(ctx context.Context, req *TokenizeRequest, opts ...grpc.CallOption) (*TokenizeResponse, error) {
	out := new(TokenizeResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(jsonCodec{}.Name())}, opts...)
	if err := c.cc.Invoke(ctx, TokenizeMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
