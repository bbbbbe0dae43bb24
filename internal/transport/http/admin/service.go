// Package admin serves the admin pages: login, the key list and the
// key generator.
package admin

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"keneviz-panel-go/internal/domain/eventbus"
	"keneviz-panel-go/internal/domain/license"
	"keneviz-panel-go/internal/domain/license/model"
	"keneviz-panel-go/internal/domain/license/store"
	"keneviz-panel-go/internal/domain/session"
	"keneviz-panel-go/internal/platform/config"
	"keneviz-panel-go/internal/platform/errors"
	"keneviz-panel-go/internal/platform/logging"
	"keneviz-panel-go/internal/platform/system"
	httptransport "keneviz-panel-go/internal/transport/http"
)

// recentKeyLimit caps the key list page.
const recentKeyLimit = 200

type Service struct {
	config   *config.Config
	logger   *logging.Logger
	sessions *session.Manager
	licenses *license.Service
	admins   store.Store
	bus      *eventbus.Bus
	started  time.Time
}

func NewService(cfg *config.Config, logger *logging.Logger, sessions *session.Manager, licenses *license.Service, admins store.Store, bus *eventbus.Bus) (*Service, error) {
	if cfg == nil {
		return nil, errors.New(errors.KindConfig, "admin.new", "config is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "admin.new", "logger is required")
	}
	return &Service{
		config:   cfg,
		logger:   logger,
		sessions: sessions,
		licenses: licenses,
		admins:   admins,
		bus:      bus,
		started:  time.Now(),
	}, nil
}

// Register mounts the admin routes. Everything except login sits behind
// the admin session middleware.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	group := router.Group("/admin")
	group.GET("/login", s.handleLoginPage)
	group.POST("/login", s.handleLogin)

	secured := group.Group("")
	secured.Use(s.requireAdmin)
	{
		secured.GET("", s.handlePanel)
		secured.GET("/logout", s.handleLogout)
		secured.GET("/generate", s.handleGenerate)
		secured.GET("/status", s.handleStatus)
	}

	s.logger.InfoTag("HTTP", "admin routes registered")
	return nil
}

func (s *Service) requireAdmin(c *gin.Context) {
	sess := httptransport.CurrentSession(c)
	if !sess.State.AdminLoggedIn() {
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
		return
	}
	c.Next()
}

func (s *Service) handleLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{
		"flash": httptransport.PopFlash(c),
	})
}

func (s *Service) handleLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	admin, err := s.admins.FindAdmin(c.Request.Context(), username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		httptransport.SetFlash(c, "Hatalı kullanıcı adı veya şifre!")
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}

	sess := httptransport.CurrentSession(c)
	sess.State.AdminID = &admin.ID
	if err := s.sessions.Save(c.Request.Context(), sess); err != nil {
		s.logger.Error("failed to save session: %v", err)
		httptransport.RespondError(c, http.StatusInternalServerError, "session unavailable", nil)
		return
	}

	s.bus.Publish(eventbus.TopicAdminLogin, eventbus.Event{
		SessionID: sess.ID,
		Data:      map[string]interface{}{"username": admin.Username},
	})
	c.Redirect(http.StatusFound, "/admin")
}

func (s *Service) handleLogout(c *gin.Context) {
	sess := httptransport.CurrentSession(c)
	sess.State.AdminID = nil
	if err := s.sessions.Save(c.Request.Context(), sess); err != nil {
		s.logger.Error("failed to save session: %v", err)
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

func (s *Service) handlePanel(c *gin.Context) {
	keys, err := s.licenses.ListRecent(c.Request.Context(), recentKeyLimit)
	if err != nil {
		s.logger.Error("failed to list keys: %v", err)
		httptransport.RespondError(c, http.StatusInternalServerError, "key list unavailable", nil)
		return
	}

	type row struct {
		Token     string
		Plan      string
		Created   string
		Remaining string
		Active    bool
		Note      string
	}
	rows := make([]row, 0, len(keys))
	for i := range keys {
		k := keys[i]
		rows = append(rows, row{
			Token:     k.Token,
			Plan:      string(k.Plan),
			Created:   k.CreatedAt.Format("2006-01-02 15:04"),
			Remaining: s.licenses.RemainingLifetime(&k),
			Active:    k.Active,
			Note:      k.Note,
		})
	}
	c.HTML(http.StatusOK, "admin_panel.html", gin.H{"keys": rows})
}

// handleGenerate mints keys from query parameters and responds with one
// line per key, kept in the wire format the old panel shipped with.
func (s *Service) handleGenerate(c *gin.Context) {
	plan := model.Plan(c.DefaultQuery("plan", string(model.PlanOneMonth)))
	if !plan.Valid() {
		httptransport.RespondError(c, http.StatusBadRequest, fmt.Sprintf("unknown plan %q", plan), nil)
		return
	}

	qty, err := strconv.Atoi(c.DefaultQuery("qty", "1"))
	if err != nil {
		qty = 1
	}
	note := c.Query("note")

	keys, err := s.licenses.MintBatch(c.Request.Context(), plan, qty, note)
	if err != nil {
		s.logger.Error("failed to mint keys: %v", err)
		httptransport.RespondError(c, http.StatusInternalServerError, "key generation failed", nil)
		return
	}

	sess := httptransport.CurrentSession(c)
	lines := make([]string, 0, len(keys))
	for i := range keys {
		lines = append(lines, fmt.Sprintf("New key created: %s (plan=%s)", keys[i].Token, keys[i].Plan))
		s.bus.Publish(eventbus.TopicKeyMinted, eventbus.Event{
			SessionID: sess.ID,
			KeyID:     &keys[i].ID,
			Data:      map[string]interface{}{"plan": string(keys[i].Plan), "note": note},
		})
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(strings.Join(lines, "<br>")))
}

func (s *Service) handleStatus(c *gin.Context) {
	total, active, err := s.licenses.Counts(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to count keys: %v", err)
		httptransport.RespondError(c, http.StatusInternalServerError, "key counts unavailable", nil)
		return
	}

	cpu, err := system.GetSystemCPUUsage()
	if err != nil {
		s.logger.Warn("cpu usage unavailable: %v", err)
	}
	mem, err := system.GetSystemMemoryUsage()
	if err != nil {
		s.logger.Warn("memory usage unavailable: %v", err)
	}

	httptransport.RespondSuccess(c, http.StatusOK, gin.H{
		"uptime_seconds": int(time.Since(s.started).Seconds()),
		"cpu_percent":    cpu,
		"memory_percent": mem,
		"keys_total":     total,
		"keys_active":    active,
	}, "")
}
