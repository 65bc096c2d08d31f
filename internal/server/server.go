// Package server exposes the screening service over HTTP.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/record"
	"github.com/talentscout/screener/internal/screening"
	"github.com/talentscout/screener/internal/store"
)

const (
	apiPrefix  = "/api/v1"
	healthPath = apiPrefix + "/health"

	// maxUtterance bounds a single candidate message.
	maxUtterance = 4000
)

// Config configures the HTTP server.
type Config struct {
	Addr string

	// APIKey, when set, is required as a bearer token on every route
	// except the health check.
	APIKey string
}

// Server routes HTTP requests to a screening.Service.
type Server struct {
	svc *screening.Service
	cfg Config
	log *zap.Logger
}

// New creates a Server.
func New(svc *screening.Service, cfg Config, log *zap.Logger) *Server {
	return &Server{svc: svc, cfg: cfg, log: logger.OrNop(log)}
}

// MessageRequest is the body of POST /sessions/:id/messages.
type MessageRequest struct {
	Text string `json:"text"`
}

// TurnResponse wraps a reply with an optional durability warning.
type TurnResponse struct {
	*screening.Reply
	Warning string `json:"warning,omitempty"`
}

// SessionSummary is one entry of GET /sessions.
type SessionSummary struct {
	ID        string    `json:"id"`
	Stage     string    `json:"stage"`
	Language  string    `json:"language"`
	Ended     bool      `json:"ended"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Register mounts the API routes on h.
func (s *Server) Register(h *server.Hertz) {
	h.Use(s.accessLog)

	api := h.Group(apiPrefix)
	if s.cfg.APIKey != "" {
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:Authorization", "Bearer"),
			keyauth.WithValidator(s.validateKey),
			keyauth.WithFilter(func(_ context.Context, c *app.RequestContext) bool {
				return string(c.Path()) == healthPath
			}),
			keyauth.WithErrorHandler(func(_ context.Context, c *app.RequestContext, err error) {
				c.AbortWithStatusJSON(consts.StatusUnauthorized, utils.H{"error": "missing or invalid API key"})
			}),
		))
	}

	api.GET("/health", func(_ context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
	api.GET("/sessions", s.listSessions)
	api.POST("/sessions", s.startSession)
	api.GET("/sessions/:id", s.getSession)
	api.DELETE("/sessions/:id", s.deleteSession)
	api.POST("/sessions/:id/messages", s.postMessage)
	api.GET("/sessions/:id/record", s.getRecord)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	h := server.New(
		server.WithHostPorts(s.cfg.Addr),
		server.WithExitWaitTime(5*time.Second),
	)
	s.Register(h)

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Run()
	}()
	s.log.Info("http server listening", zap.String("addr", s.cfg.Addr), zap.Bool("auth", s.cfg.APIKey != ""))

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.log.Info("http server stopped")
	return nil
}

func (s *Server) validateKey(_ context.Context, _ *app.RequestContext, key string) (bool, error) {
	if subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.APIKey)) == 1 {
		return true, nil
	}
	return false, errors.New("invalid API key")
}

func (s *Server) accessLog(ctx context.Context, c *app.RequestContext) {
	start := time.Now()
	c.Next(ctx)
	s.log.Debug("http request",
		zap.String("method", string(c.Method())),
		zap.String("path", string(c.Path())),
		zap.Int("status", c.Response.StatusCode()),
		zap.Duration("latency", time.Since(start)),
	)
}

func (s *Server) startSession(ctx context.Context, c *app.RequestContext) {
	reply, err := s.svc.Start(ctx)
	if reply == nil {
		s.fail(c, err)
		return
	}
	c.JSON(consts.StatusCreated, s.turnResponse(reply, err))
}

func (s *Server) postMessage(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")

	var req MessageRequest
	if err := json.Unmarshal(c.Request.Body(), &req); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "body must be JSON like {\"text\": \"...\"}"})
		return
	}
	if len(req.Text) > maxUtterance {
		c.JSON(consts.StatusRequestEntityTooLarge, utils.H{"error": fmt.Sprintf("text is limited to %d bytes", maxUtterance)})
		return
	}

	// Sessions are created through POST /sessions only.
	if _, err := s.svc.Session(ctx, id); err != nil {
		s.fail(c, err)
		return
	}

	reply, err := s.svc.HandleTurn(ctx, id, req.Text)
	if reply == nil {
		s.fail(c, err)
		return
	}
	c.JSON(consts.StatusOK, s.turnResponse(reply, err))
}

func (s *Server) getSession(ctx context.Context, c *app.RequestContext) {
	sess, err := s.svc.Session(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(consts.StatusOK, sess)
}

func (s *Server) getRecord(ctx context.Context, c *app.RequestContext) {
	format := record.FormatJSON
	if q := c.Query("format"); q != "" {
		f, err := record.ParseFormat(q)
		if err != nil {
			c.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
			return
		}
		format = f
	}

	rec, err := s.svc.Record(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if format == record.FormatJSON {
		c.JSON(consts.StatusOK, rec)
		return
	}
	data, err := record.Marshal(rec, format)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(consts.StatusOK, "application/yaml; charset=utf-8", data)
}

func (s *Server) listSessions(ctx context.Context, c *app.RequestContext) {
	opts := store.QueryOpts{Limit: 50, Filter: strings.ToUpper(c.Query("stage"))}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(consts.StatusBadRequest, utils.H{"error": "limit must be a non-negative integer"})
			return
		}
		opts.Limit = n
	}
	if v := c.Query("ended"); v != "" {
		ended, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(consts.StatusBadRequest, utils.H{"error": "ended must be true or false"})
			return
		}
		opts.Ended = &ended
	}

	rows, err := s.svc.List(ctx, opts)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]SessionSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, SessionSummary{
			ID:        r.ID,
			Stage:     r.Stage,
			Language:  r.Language,
			Ended:     r.Ended,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	c.JSON(consts.StatusOK, utils.H{"sessions": out})
}

func (s *Server) deleteSession(ctx context.Context, c *app.RequestContext) {
	if err := s.svc.Delete(ctx, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(consts.StatusNoContent)
}

func (s *Server) turnResponse(reply *screening.Reply, err error) TurnResponse {
	resp := TurnResponse{Reply: reply}
	if err != nil {
		resp.Warning = "this turn was not saved; the interview continues but may not survive a restart"
		logger.WithSession(s.log, reply.SessionID).Warn("turn served without durability", zap.Error(err))
	}
	return resp
}

func (s *Server) fail(c *app.RequestContext, err error) {
	switch {
	case errors.Is(err, screening.ErrUnknownSession):
		c.JSON(consts.StatusNotFound, utils.H{"error": "session not found"})
	case errors.Is(err, screening.ErrSessionUnavailable):
		s.log.Warn("session unavailable", zap.Error(err))
		c.JSON(consts.StatusServiceUnavailable, utils.H{"error": "session storage unavailable"})
	default:
		s.log.Error("request failed", zap.Error(err))
		c.JSON(consts.StatusInternalServerError, utils.H{"error": "internal error"})
	}
}
