package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulsedesk/pulse/internal/config"
	"github.com/pulsedesk/pulse/internal/llm"
	"github.com/pulsedesk/pulse/internal/metrics"
	"github.com/pulsedesk/pulse/internal/pulse"
	"github.com/pulsedesk/pulse/internal/pulse/classify"
	"github.com/pulsedesk/pulse/internal/pulse/collector"
	"github.com/pulsedesk/pulse/internal/pulse/model"
)

type Server struct {
	Pulse *pulse.Pulse
}

// NewServer builds the pipeline from config. Missing source credentials are
// fine (those sources degrade at fetch time); a missing LLM credential is
// fine too (briefing requests fail fast with an explanatory body). Only an
// unknown LLM provider string is an operator error.
func NewServer(cfg *config.Config) *Server {
	llmClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	if llmClient == nil {
		log.Println("Warning: no LLM credential configured, briefing endpoint will return a degraded response")
	}

	p := pulse.New(BuildCollectors(cfg), llmClient, cfg.Pipeline.CollectorTimeout())
	return &Server{Pulse: p}
}

// BuildCollectors constructs all eight collector instances around one shared
// classifier rule table.
func BuildCollectors(cfg *config.Config) []collector.Collector {
	cls := classify.New()
	return []collector.Collector{
		collector.NewGitHub(cfg.GitHub, cls),
		collector.NewSlack(cfg.Slack, cls),
		collector.NewCalendar(model.SourceCalendarPrimary, cfg.CalendarPrimary, cls),
		collector.NewCalendar(model.SourceCalendarTeam, cfg.CalendarTeam, cls),
		collector.NewMail(model.SourceMailPersonal, cfg.MailPersonal, cls),
		collector.NewMail(model.SourceMailWork, cfg.MailWork, cls),
		collector.NewStripe(cfg.Stripe, cls),
		collector.NewVercel(cfg.Vercel, cls),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.GET("/pulse", s.GetPulse)
	api.GET("/collect/:source", s.GetSource)

	return r
}

// GetPulse runs the full pipeline. Handled outcomes (healthy, degraded,
// zero-activity) are 200; only the catch-all unexpected-failure path is 500,
// and even then the body is still a PulseSummary.
func (s *Server) GetPulse(c *gin.Context) {
	summary, err := s.Pulse.Brief(c.Request.Context())
	if err != nil {
		slog.Error("briefing failed", "error", err)
		c.JSON(http.StatusInternalServerError, summary)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type CollectResponse struct {
	Source      model.Source       `json:"source"`
	Events      []model.PulseEvent `json:"events"`
	TotalEvents int                `json:"totalEvents"`
	Error       string             `json:"error,omitempty"`
}

// GetSource runs a single collector by source tag.
func (s *Server) GetSource(c *gin.Context) {
	src := model.Source(c.Param("source"))

	result, ok := s.Pulse.Collect(c.Request.Context(), src)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown source"})
		return
	}

	c.JSON(http.StatusOK, CollectResponse{
		Source:      result.Source,
		Events:      result.Events,
		TotalEvents: len(result.Events),
		Error:       result.Err,
	})
}
