package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/duotext/duotext/internal/config"
	"github.com/duotext/duotext/internal/core"
	"github.com/duotext/duotext/internal/core/color"
	"github.com/duotext/duotext/internal/core/highlight"
	"github.com/duotext/duotext/internal/logger"
	"github.com/duotext/duotext/internal/provider"
)

type Server struct {
	Pipeline *core.Pipeline
	cfg      *config.Config
}

// NewServer loads configuration, applies env overrides, and wires the
// providers into a pipeline.
func NewServer() *Server {
	log := logger.Get()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.WithError(err).Warnf("could not load %s, using defaults", cfgPath)
		cfg = config.Default()
	}
	applyEnvOverrides(cfg)

	ctx := context.Background()
	translator, err := provider.NewTranslator(ctx, cfg.Translator, cfg.Prompts)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize translator")
	}
	extractor, err := provider.NewExtractor(ctx, cfg.Extractor, cfg.Prompts)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize extractor")
	}

	breaker := provider.BreakerSettings{
		MaxFailures: cfg.Breaker.MaxFailures,
		Timeout:     time.Duration(cfg.Breaker.TimeoutSeconds) * time.Second,
	}
	translator = provider.NewBreakerTranslator(translator, breaker)
	if extractor != nil {
		extractor = provider.NewBreakerExtractor(extractor, breaker)
	}

	pipeline := core.NewPipeline(translator, extractor, core.Options{
		ColorMode:            color.Mode(cfg.Pipeline.ColorMode),
		UniformColor:         cfg.Pipeline.UniformColor,
		HighlightPolicy:      highlight.Policy(cfg.Pipeline.HighlightPolicy),
		ReextractTranslation: cfg.Pipeline.ReextractTranslation,
		SegmentSentences:     cfg.Pipeline.SegmentSentences,
		UnsupportedLanguages: cfg.Pipeline.UnsupportedLanguages,
	})

	return &Server{Pipeline: pipeline, cfg: cfg}
}

// NewServerWith builds a server around an existing pipeline. Used by tests
// and embedders that wire their own providers.
func NewServerWith(pipeline *core.Pipeline, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Server{Pipeline: pipeline, cfg: cfg}
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("TRANSLATOR_PROVIDER"); v != "" {
		cfg.Translator.Provider = v
	}
	if v := os.Getenv("TRANSLATOR_API_KEY"); v != "" {
		cfg.Translator.APIKey = v
	}
	if v := os.Getenv("EXTRACTOR_PROVIDER"); v != "" {
		cfg.Extractor.Provider = v
	}
	if v := os.Getenv("EXTRACTOR_API_KEY"); v != "" {
		cfg.Extractor.APIKey = v
	}
	if v := os.Getenv("API_TOKEN"); v != "" {
		cfg.Server.APIToken = v
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLog())

	// The template dir is absent when embedded as an API-only service.
	if matches, _ := filepath.Glob("web/templates/*"); len(matches) > 0 {
		r.LoadHTMLGlob("web/templates/*")
		r.GET("/", s.Home)
	}
	r.GET("/healthz", s.Health)

	api := r.Group("/")
	api.Use(RequireToken(s.cfg.Server.APIToken), RateLimit(s.cfg.Server.RateLimitRPS, s.cfg.Server.RateLimitBurst))
	api.POST("/process", s.Process)
	api.POST("/interim", s.Interim)

	return r
}

func (s *Server) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ProcessRequest is the transcript payload shared by both endpoints.
type ProcessRequest struct {
	Text           string `json:"text" binding:"required"`
	SourceLanguage string `json:"sourceLanguage" binding:"required"`
	TargetLanguage string `json:"targetLanguage" binding:"required"`
}

func (s *Server) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text, sourceLanguage and targetLanguage are required"})
		return
	}

	result, err := s.Pipeline.Process(c.Request.Context(), core.Request{
		Text:           req.Text,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sentencePairs":  result.Pairs,
		"sourceText":     result.SourceText,
		"translatedText": result.TranslatedText,
		"entities":       result.Entities,
	})
}

func (s *Server) Interim(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text, sourceLanguage and targetLanguage are required"})
		return
	}

	result, err := s.Pipeline.Interim(c.Request.Context(), core.Request{
		Text:           req.Text,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sentencePairs": result.Pairs})
}

func (s *Server) renderError(c *gin.Context, err error) {
	var terr *provider.TranslationError
	switch {
	case errors.Is(err, core.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &terr):
		logger.Get().WithError(err).Error("translation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "translation failed"})
	default:
		logger.Get().WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
