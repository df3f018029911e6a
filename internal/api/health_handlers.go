package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Health check",
		Description: "Reports the health of the server and its components",
		Tags:        []string{"System"},
	}, s.handleHealthCheck)
}

// HealthComponent describes one dependency's health.
type HealthComponent struct {
	Status string `json:"status" enum:"up,down" doc:"Component status"`
	Detail string `json:"detail,omitempty" doc:"Failure detail when down"`
}

// HealthOutput wraps the health report for Huma.
type HealthOutput struct {
	Body struct {
		Status     string                     `json:"status" enum:"ok,degraded" doc:"Overall status"`
		Components map[string]HealthComponent `json:"components" doc:"Per-component health"`
	}
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{}
	out.Body.Status = "ok"
	out.Body.Components = make(map[string]HealthComponent)

	database := HealthComponent{Status: "up"}
	if err := s.store.Ping(ctx); err != nil {
		database = HealthComponent{Status: "down", Detail: err.Error()}
		out.Body.Status = "degraded"
	}
	out.Body.Components["database"] = database

	searchComponent := HealthComponent{Status: "up"}
	if _, err := s.services.Search.IndexedMovies(); err != nil {
		searchComponent = HealthComponent{Status: "down", Detail: err.Error()}
		out.Body.Status = "degraded"
	}
	out.Body.Components["search"] = searchComponent

	return out, nil
}
