// Package panel serves the HTML pages of the user-facing panel: the
// challenge gate, key login and the lookup panel itself.
package panel

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"keneviz-panel-go/internal/domain/catalog"
	"keneviz-panel-go/internal/domain/eventbus"
	"keneviz-panel-go/internal/domain/license"
	"keneviz-panel-go/internal/domain/session"
	"keneviz-panel-go/internal/platform/config"
	"keneviz-panel-go/internal/platform/errors"
	"keneviz-panel-go/internal/platform/logging"
	httptransport "keneviz-panel-go/internal/transport/http"
)

type Service struct {
	config   *config.Config
	logger   *logging.Logger
	sessions *session.Manager
	licenses *license.Service
	catalog  *catalog.Catalog
	bus      *eventbus.Bus
}

func NewService(cfg *config.Config, logger *logging.Logger, sessions *session.Manager, licenses *license.Service, cat *catalog.Catalog, bus *eventbus.Bus) (*Service, error) {
	if cfg == nil {
		return nil, errors.New(errors.KindConfig, "panel.new", "config is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "panel.new", "logger is required")
	}
	return &Service{
		config:   cfg,
		logger:   logger,
		sessions: sessions,
		licenses: licenses,
		catalog:  cat,
		bus:      bus,
	}, nil
}

// Register mounts the panel pages on the session-scoped router group.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.GET("/", s.handleIndex)
	router.GET("/robot_dogrulama", s.handleChallengePage)
	router.GET("/login", s.handleLoginPage)
	router.POST("/login", s.handleLogin)
	router.GET("/logout", s.handleLogout)
	router.GET("/panel", s.handlePanel)
	router.GET("/sorgu.html", s.handleSorguPage)

	s.logger.InfoTag("HTTP", "panel routes registered")
	return nil
}

func (s *Service) handleIndex(c *gin.Context) {
	sess := httptransport.CurrentSession(c)
	switch {
	case sess.State.LoggedIn():
		c.Redirect(http.StatusFound, "/panel")
	case !sess.State.ChallengePassed:
		c.Redirect(http.StatusFound, "/robot_dogrulama?next=/login")
	default:
		c.HTML(http.StatusOK, "index.html", gin.H{})
	}
}

func (s *Service) handleChallengePage(c *gin.Context) {
	c.HTML(http.StatusOK, "robot_dogrulama.html", gin.H{
		"site_key": s.config.Challenge.SiteKey,
		"next":     c.Query("next"),
	})
}

func (s *Service) handleLoginPage(c *gin.Context) {
	sess := httptransport.CurrentSession(c)
	if !sess.State.ChallengePassed {
		c.Redirect(http.StatusFound, "/robot_dogrulama?next=/login")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"flash": httptransport.PopFlash(c),
	})
}

func (s *Service) handleLogin(c *gin.Context) {
	sess := httptransport.CurrentSession(c)
	if !sess.State.ChallengePassed {
		c.Redirect(http.StatusFound, "/robot_dogrulama?next=/login")
		return
	}

	key, err := s.licenses.ValidateToken(c.Request.Context(), c.PostForm("key"))
	if err != nil {
		httptransport.SetFlash(c, "Geçersiz veya süresi dolmuş key!")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	sess.State.KeyID = &key.ID
	sess.State.ChallengePassed = false
	if err := s.sessions.Save(c.Request.Context(), sess); err != nil {
		s.logger.Error("failed to save session: %v", err)
		httptransport.RespondError(c, http.StatusInternalServerError, "session unavailable", nil)
		return
	}

	s.bus.Publish(eventbus.TopicLogin, eventbus.Event{
		SessionID: sess.ID,
		KeyID:     &key.ID,
		Data:      map[string]interface{}{"plan": string(key.Plan)},
	})
	c.Redirect(http.StatusFound, "/panel")
}

func (s *Service) handleLogout(c *gin.Context) {
	sess := httptransport.CurrentSession(c)
	keyID := sess.State.KeyID

	sess.State.KeyID = nil
	sess.State.AdminID = nil
	sess.State.ChallengePassed = false
	if err := s.sessions.Save(c.Request.Context(), sess); err != nil {
		s.logger.Error("failed to save session: %v", err)
	}

	if keyID != nil {
		s.bus.Publish(eventbus.TopicLogout, eventbus.Event{SessionID: sess.ID, KeyID: keyID})
	}
	c.Redirect(http.StatusFound, "/")
}

func (s *Service) handlePanel(c *gin.Context) {
	sess := httptransport.CurrentSession(c)
	if !sess.State.LoggedIn() {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	key, err := s.licenses.CheckUsable(c.Request.Context(), *sess.State.KeyID)
	if err != nil {
		sess.State.KeyID = nil
		if serr := s.sessions.Save(c.Request.Context(), sess); serr != nil {
			s.logger.Error("failed to save session: %v", serr)
		}
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.HTML(http.StatusOK, "panel.html", gin.H{
		"plan":      string(key.Plan),
		"remaining": s.licenses.RemainingLifetime(key),
		"apis":      s.catalog.Descriptors(),
	})
}

func (s *Service) handleSorguPage(c *gin.Context) {
	c.HTML(http.StatusOK, "sorgu.html", gin.H{
		"apis": s.catalog.Descriptors(),
	})
}
