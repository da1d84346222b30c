// Package web provides the HTTP server of the storyforge API: routing,
// middleware and lifecycle. The session registry is constructed once here and
// injected into the services; it is never ambient state.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/moohomor/storyforge/config"
	"github.com/moohomor/storyforge/logger"
	"github.com/moohomor/storyforge/storage"
	"github.com/moohomor/storyforge/web/controller"
	"github.com/moohomor/storyforge/web/middleware"
	"github.com/moohomor/storyforge/web/service"
	"github.com/moohomor/storyforge/web/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Server is the storyforge web server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	registry *session.Registry
	blob     storage.Store

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a server on top of an opened blob store.
func NewServer(blob storage.Store) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		registry: session.NewRegistry(),
		blob:     blob,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// initRouter initializes gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
	}))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	authService := service.NewAuthService(s.registry)
	storyService := service.NewStoryService(authService, s.blob)
	reviewService := service.NewReviewService(authService)
	userService := service.NewUserService()

	controller.NewAuthController(engine.Group("/auth"), authService)

	storageGroup := engine.Group("/storage")
	controller.NewStoryController(storageGroup, storyService)
	controller.NewReviewController(storageGroup, reviewService)
	controller.NewAssetController(storageGroup, storyService)
	controller.NewUserController(storageGroup, userService)

	return engine, nil
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort("", config.GetPort())
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler: engine,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("serve error:", err)
		}
	}()

	logger.Infof("%v %v listening on %v", config.GetName(), config.GetVersion(), listener.Addr())
	return nil
}

// Stop shuts the server down, waiting briefly for in-flight requests.
func (s *Server) Stop() error {
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
