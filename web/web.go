// Package web provides the HTTP server of the todo API: routing, middleware
// and the background job scheduler.
package web

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/todoapp/todo-api/config"
	"github.com/todoapp/todo-api/database"
	"github.com/todoapp/todo-api/logger"
	"github.com/todoapp/todo-api/web/controller"
	"github.com/todoapp/todo-api/web/job"
	"github.com/todoapp/todo-api/web/middleware"
	"github.com/todoapp/todo-api/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

// Server is the todo API web server together with its cron scheduler.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// NewEngine builds the gin engine with every route wired to services backed
// by db.
func NewEngine(db *gorm.DB, authService *service.AuthService) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestId())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	controller.NewUserController(engine.Group("/users"), authService)

	protected := engine.Group("/", middleware.TokenAuth(authService))
	controller.NewTodoController(protected, service.NewTodoService(db))
	controller.NewCategoryController(protected.Group("/category"), service.NewCategoryService(db))

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine
}

// initRouter sets the gin mode and builds the engine from configuration.
func (s *Server) initRouter() *gin.Engine {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	if config.IsDevTokenSecret() {
		logger.Warning("TOKEN_SECRET is not set, signing tokens with the development key")
	}
	authService := service.NewAuthService(database.GetDB(), []byte(config.GetTokenSecret()), config.GetTokenTTL())

	return NewEngine(database.GetDB(), authService)
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	if _, err := s.cron.AddJob("@hourly", job.NewCheckpointJob()); err != nil {
		logger.Warning("add checkpoint job failed:", err)
	}
}

// Start binds the listener and serves in the background.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine := s.initRouter()

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return s.ctx },
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("web server stopped:", err)
		}
	}()

	s.startTask()

	return nil
}

// Stop drains in-flight requests and stops the scheduler.
func (s *Server) Stop() error {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}

	var err error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	} else if s.listener != nil {
		err = s.listener.Close()
	}
	s.cancel()
	return err
}
