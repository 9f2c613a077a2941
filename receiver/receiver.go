package receiver

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/pevans/cfprep/problem"
	"go.uber.org/zap"
)

// SuccessToken is the body of every accepted /receive request.
const SuccessToken = "OK"

// Creator builds a workspace from page markup.
type Creator interface {
	CreateFromHTML(html, url string) (*problem.Record, bool, error)
	Create(rec *problem.Record) (bool, error)
}

// Fetcher downloads a problem page directly.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*problem.Record, error)
}

// Reloader re-reads templates from disk.
type Reloader interface {
	Reload() error
}

// Options configures the receiver.
type Options struct {
	Address string

	// SaveLastHTML is where the markup of the latest request is written.
	// Empty disables it.
	SaveLastHTML string

	// Fetcher, when set, is used to download the page if a request arrives
	// without markup.
	Fetcher Fetcher

	// Templates, when set, is reloaded before every creation so template
	// edits apply to the next problem.
	Templates Reloader
}

// Server receives problem pages from the browser extension.
type Server struct {
	creator Creator
	opts    Options
	logger  *zap.Logger

	// Serializes creations; concurrent requests for the same problem
	// would write the same files.
	mu sync.Mutex
}

// ReceiveRequest is the body of POST /receive.
type ReceiveRequest struct {
	HTML string `json:"html"`
	URL  string `json:"url"`
}

// NewServer creates a receiver server.
func NewServer(creator Creator, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		creator: creator,
		opts:    opts,
		logger:  logger,
	}
}

// SetupRouter configures the Gin router with the receiver routes.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(ginzap.Ginzap(s.logger, time.RFC3339, false))
	router.Use(ginzap.RecoveryWithZap(s.logger, true))

	// The extension posts from the problem page's origin
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	router.POST("/receive", s.HandleReceive)

	return router
}

// errorResponse creates a standardized error response.
func errorResponse(code, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

// HandleReceive handles POST /receive. Once the body is decoded the response
// is always SuccessToken; creation failures are logged only.
func (s *Server) HandleReceive(c *gin.Context) {
	var req ReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("Received problem page", zap.String("url", req.URL), zap.Int("html_bytes", len(req.HTML)))
	s.saveLastHTML(req.HTML)
	s.reloadTemplates()

	if req.HTML == "" && s.opts.Fetcher != nil && problem.IsProblemURL(req.URL) {
		s.createFromFetch(c.Request.Context(), req.URL)
	} else if _, ok, err := s.creator.CreateFromHTML(req.HTML, req.URL); !ok {
		s.logger.Error("Problem creation failed", zap.String("url", req.URL), zap.Error(err))
	}

	c.String(http.StatusOK, SuccessToken)
}

func (s *Server) createFromFetch(ctx context.Context, url string) {
	rec, err := s.opts.Fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Error("Failed to download problem page", zap.String("url", url), zap.Error(err))
		return
	}
	if ok, err := s.creator.Create(rec); !ok {
		s.logger.Error("Problem creation failed", zap.String("url", url), zap.Error(err))
	}
}

func (s *Server) reloadTemplates() {
	if s.opts.Templates == nil {
		return
	}
	if err := s.opts.Templates.Reload(); err != nil {
		s.logger.Warn("Failed to reload templates, keeping previous set", zap.Error(err))
	}
}

func (s *Server) saveLastHTML(html string) {
	if s.opts.SaveLastHTML == "" {
		return
	}
	if err := os.WriteFile(s.opts.SaveLastHTML, []byte(html), 0o600); err != nil {
		s.logger.Warn("Failed to save received HTML", zap.String("path", s.opts.SaveLastHTML), zap.Error(err))
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("Starting receiver", zap.String("addr", s.opts.Address))
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down receiver")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
