// README: API gateway; builds the gin engine, CORS policy, and routes.
package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/n3utr7no/Kaze-AI/internal/http/handlers"
	"github.com/n3utr7no/Kaze-AI/internal/http/middleware"
	"github.com/n3utr7no/Kaze-AI/internal/service"
)

type ServerDeps struct {
	Planner        *service.Planner
	Transcriber    *service.Transcriber
	AllowedOrigins []string
}

type Server struct {
	planner        *service.Planner
	transcriber    *service.Transcriber
	allowedOrigins []string
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		planner:        deps.Planner,
		transcriber:    deps.Transcriber,
		allowedOrigins: deps.AllowedOrigins,
	}
}

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(cors.New(s.corsConfig()))

	planHandler := handlers.NewPlanHandler(s.planner)
	transcribeHandler := handlers.NewTranscribeHandler(s.transcriber)

	r.POST("/generate_plan", planHandler.Generate)
	r.POST("/transcribe", transcribeHandler.Transcribe)

	health := func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) }
	r.GET("/health", health)
	r.HEAD("/health", health)

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	// Development posture: the browser client runs on whatever port it
	// likes, so "*" is the default and deployments narrow it via config.
	if len(s.allowedOrigins) == 1 && s.allowedOrigins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.allowedOrigins
	}
	cfg.AllowMethods = []string{"GET", "POST", "HEAD", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
