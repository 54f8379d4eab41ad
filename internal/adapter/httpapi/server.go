package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"

	"scriptgen/config"
	"scriptgen/internal/adapter/httpapi/handlers"
	"scriptgen/internal/adapter/httpapi/middleware"
	"scriptgen/internal/stats"
	"scriptgen/logger"

	"github.com/gin-gonic/gin"
)

type Options struct {
	Port            string
	GinMode         string
	AllowedOrigins  []string
	MaxPromptLength int
	Provider        string
	Generator       handlers.Generator
	Stats           *stats.Collector
}

type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	opts       Options
}

func New(opts Options) (*Server, error) {
	if opts.Generator == nil {
		return nil, errors.New("Generator 未初始化")
	}
	if opts.Port == "" {
		opts.Port = "8080"
	}
	if opts.GinMode == "" {
		opts.GinMode = gin.ReleaseMode
	}
	gin.SetMode(opts.GinMode)

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.CORSMiddleware(opts.AllowedOrigins))

	handler, err := handlers.New(handlers.Options{
		Generator:       opts.Generator,
		Stats:           opts.Stats,
		Provider:        opts.Provider,
		MaxPromptLength: opts.MaxPromptLength,
	})
	if err != nil {
		return nil, err
	}
	handler.Register(engine)

	httpSrv := &http.Server{
		Addr:              ":" + opts.Port,
		Handler:           engine,
		ReadHeaderTimeout: config.HTTPServerReadHeaderTimeout,
	}

	return &Server{
		engine:     engine,
		httpServer: httpSrv,
		opts:       opts,
	}, nil
}

// Start 阻塞运行直到 ctx 取消或监听失败，取消后优雅关闭
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve 在给定的 listener 上提供服务
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("启动HTTP服务器", logger.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logger.Info("正在关闭HTTP服务器")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

func (s *Server) Port() string {
	return s.opts.Port
}

// Handler 底层 gin 引擎，测试时直接驱动
func (s *Server) Handler() http.Handler {
	return s.engine
}
