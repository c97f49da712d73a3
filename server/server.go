// Package server exposes the mapping engine over HTTP. The engine itself is
// transport-agnostic; this layer only shapes requests and responses and maps
// error classes to status codes.
package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	recmap "github.com/reoring/recmap"
	"github.com/reoring/recmap/generate"
	"github.com/reoring/recmap/i18n"
	"github.com/reoring/recmap/schema"
	"github.com/reoring/recmap/source"
)

// Server wires the registry and the config generator into an echo instance.
type Server struct {
	reg  *schema.Registry
	gen  generate.Generator
	echo *echo.Echo
}

// New builds a Server. gen may be nil; the generate endpoint then reports the
// dependency as unavailable.
func New(reg *schema.Registry, gen generate.Generator) *Server {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = goJSONSerializer{}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	s := &Server{reg: reg, gen: gen, echo: e}
	e.POST("/api/generate-config", s.handleGenerate)
	e.POST("/api/execute-config", s.handleExecute)
	e.GET("/api/repositories", s.handleRepositories)
	e.GET("/health", s.handleHealth)
	return s
}

// Handler exposes the underlying handler for tests and embedding.
func (s *Server) Handler() http.Handler { return s.echo }

// Start serves until the listener fails.
func (s *Server) Start(addr string) error { return s.echo.Start(addr) }

type generateRequest struct {
	SourceSample     string `json:"sourceSample"`
	SourceType       string `json:"sourceType"`
	TargetRepository string `json:"targetRepository"`
}

type executeRequest struct {
	Config     any    `json:"config"`
	SourceData string `json:"sourceData"`
}

func (s *Server) handleGenerate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, recmap.Issue{
			Path:    "",
			Code:    recmap.CodeParseError,
			Message: i18n.T(recmap.CodeParseError, nil),
			Hint:    err.Error(),
		})
	}
	if strings.TrimSpace(req.SourceSample) == "" {
		return s.badRequest(c, recmap.Issue{
			Path:    "sourceSample",
			Code:    recmap.CodeRequired,
			Message: i18n.T(recmap.CodeRequired, nil),
		})
	}
	st, ok := source.ParseType(req.SourceType)
	if !ok {
		return s.badRequest(c, recmap.Issue{
			Path:    "sourceType",
			Code:    recmap.CodeInvalidEnum,
			Message: i18n.T(recmap.CodeInvalidEnum, map[string]string{"allowed": strings.Join(source.TypeNames(), ", ")}),
		})
	}
	if s.gen == nil {
		return s.unavailable(c, nil)
	}

	candidate, err := s.gen.GenerateConfig(c.Request().Context(), generate.Request{
		SourceSample:     req.SourceSample,
		SourceType:       st,
		TargetRepository: req.TargetRepository,
	})
	if err != nil {
		var ue *generate.UnavailableError
		if errors.As(err, &ue) {
			return s.unavailable(c, err)
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error": "config generation failed",
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"config": candidate})
}

// handleExecute runs validation and, when source data is present, the import.
// A structurally invalid configuration is a domain outcome, not a transport
// failure: it still answers 200 with valid:false and the full issue list.
func (s *Server) handleExecute(c echo.Context) error {
	var req executeRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, recmap.Issue{
			Path:    "",
			Code:    recmap.CodeParseError,
			Message: i18n.T(recmap.CodeParseError, nil),
			Hint:    err.Error(),
		})
	}
	if req.Config == nil {
		return s.badRequest(c, recmap.Issue{
			Path:    "config",
			Code:    recmap.CodeRequired,
			Message: i18n.T(recmap.CodeRequired, nil),
		})
	}
	return c.JSON(http.StatusOK, recmap.Execute(req.Config, req.SourceData, s.reg))
}

func (s *Server) handleRepositories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"repositories": s.reg.Names(),
		"schemas":      s.reg.Schemas(),
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) badRequest(c echo.Context, iss ...recmap.Issue) error {
	return c.JSON(http.StatusBadRequest, map[string]any{"errors": recmap.Issues(iss)})
}

func (s *Server) unavailable(c echo.Context, cause error) error {
	iss := recmap.Issue{
		Path:    "",
		Code:    recmap.CodeDependencyUnavailable,
		Message: i18n.T(recmap.CodeDependencyUnavailable, nil),
	}
	if cause != nil {
		iss.Hint = cause.Error()
	}
	return c.JSON(http.StatusBadGateway, map[string]any{"errors": recmap.Issues{iss}})
}
