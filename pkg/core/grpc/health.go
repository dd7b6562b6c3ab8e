// ============================================================================
// cmdline - Command Line Tokenizer Toolkit
// ============================================================================
//
// Package:     grpc
// Description: grpc.health.v1 service backed by a health.Registry
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/msto63/cmdline/pkg/core/health"
)

// HealthService answers grpc.health.v1 checks from a registry. The empty
// service name reports the overall status, any other name one check.
type HealthService struct {
	healthpb.UnimplementedHealthServer
	registry *health.Registry
}

// NewHealthService creates a health service for registry
func NewHealthService(registry *health.Registry) *HealthService {
	return &HealthService{registry: registry}
}

// Register adds the service to server
func (h *HealthService) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h)
}

// Check implements grpc.health.v1.Health/Check
func (h *HealthService) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	report := h.registry.Check(ctx)

	if req.GetService() == "" {
		return &healthpb.HealthCheckResponse{Status: servingStatus(report.Status)}, nil
	}

	for _, check := range report.Checks {
		if check.Name == req.GetService() {
			return &healthpb.HealthCheckResponse{Status: servingStatus(check.Status)}, nil
		}
	}
	return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
}

// servingStatus maps registry states; degraded still serves
func servingStatus(s health.Status) healthpb.HealthCheckResponse_ServingStatus {
	switch s {
	case health.StatusHealthy, health.StatusDegraded:
		return healthpb.HealthCheckResponse_SERVING
	case health.StatusUnhealthy:
		return healthpb.HealthCheckResponse_NOT_SERVING
	default:
		return healthpb.HealthCheckResponse_UNKNOWN
	}
}
