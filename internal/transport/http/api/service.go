// Package api serves the JSON endpoints: challenge verification, the
// session probe, lookups and the key-authenticated endpoint list.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"keneviz-panel-go/internal/domain/catalog"
	"keneviz-panel-go/internal/domain/challenge"
	"keneviz-panel-go/internal/domain/eventbus"
	"keneviz-panel-go/internal/domain/license"
	"keneviz-panel-go/internal/domain/license/model"
	"keneviz-panel-go/internal/domain/resolver"
	"keneviz-panel-go/internal/domain/session"
	"keneviz-panel-go/internal/domain/upstream"
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
	resolver *resolver.Resolver
	verifier *challenge.Verifier
	proxy    *upstream.Proxy
	bus      *eventbus.Bus
}

func NewService(cfg *config.Config, logger *logging.Logger, sessions *session.Manager, licenses *license.Service, cat *catalog.Catalog, res *resolver.Resolver, verifier *challenge.Verifier, proxy *upstream.Proxy, bus *eventbus.Bus) (*Service, error) {
	if cfg == nil {
		return nil, errors.New(errors.KindConfig, "api.new", "config is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "api.new", "logger is required")
	}
	return &Service{
		config:   cfg,
		logger:   logger,
		sessions: sessions,
		licenses: licenses,
		catalog:  cat,
		resolver: res,
		verifier: verifier,
		proxy:    proxy,
		bus:      bus,
	}, nil
}

// Register mounts the JSON endpoints on the session-scoped group.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.POST("/verify_recaptcha", s.handleVerifyChallenge)
	router.GET("/api/user", s.handleUser)
	router.POST("/api/sorgu", s.handleSorgu)
	router.GET("/api/list", s.handleList)

	s.logger.InfoTag("HTTP", "api routes registered")
	return nil
}

type verifyRequest struct {
	Token string `json:"recaptcha_token"`
}

// handleVerifyChallenge godoc
// @Summary Verify the human verification challenge
// @Accept json
// @Produce json
// @Param request body verifyRequest true "challenge response token"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} httptransport.APIResponse
// @Failure 403 {object} httptransport.APIResponse
// @Router /verify_recaptcha [post]
func (s *Service) handleVerifyChallenge(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		httptransport.RespondError(c, http.StatusBadRequest, "recaptcha_token is required", nil)
		return
	}

	if !s.verifier.Verify(c.Request.Context(), req.Token) {
		httptransport.RespondError(c, http.StatusForbidden, "verification failed", nil)
		return
	}

	sess := httptransport.CurrentSession(c)
	sess.State.ChallengePassed = true
	if err := s.sessions.Save(c.Request.Context(), sess); err != nil {
		s.logger.Error("failed to save session: %v", err)
		httptransport.RespondError(c, http.StatusInternalServerError, "session unavailable", nil)
		return
	}

	s.bus.Publish(eventbus.TopicChallengePassed, eventbus.Event{SessionID: sess.ID})

	redirect := c.Query("next")
	if redirect == "" || !strings.HasPrefix(redirect, "/") {
		redirect = "/login"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "redirect": redirect})
}

func guestUser() gin.H {
	return gin.H{"logged_in": false, "role": "guest", "username": nil}
}

// handleUser godoc
// @Summary Describe the current session
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/user [get]
func (s *Service) handleUser(c *gin.Context) {
	sess := httptransport.CurrentSession(c)
	if !sess.State.LoggedIn() {
		c.JSON(http.StatusOK, guestUser())
		return
	}

	key, err := s.licenses.CheckUsable(c.Request.Context(), *sess.State.KeyID)
	if err != nil {
		sess.State.KeyID = nil
		if serr := s.sessions.Save(c.Request.Context(), sess); serr != nil {
			s.logger.Error("failed to save session: %v", serr)
		}
		c.JSON(http.StatusOK, guestUser())
		return
	}

	role := "vip"
	if key.Plan == model.PlanFree {
		role = "free"
	}
	c.JSON(http.StatusOK, gin.H{
		"logged_in": true,
		"role":      role,
		"username":  fmt.Sprintf("user%d", key.ID),
		"remaining": s.licenses.RemainingLifetime(key),
	})
}

// handleSorgu godoc
// @Summary Execute a lookup against an upstream endpoint
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} httptransport.APIResponse
// @Failure 401 {object} httptransport.APIResponse
// @Failure 502 {object} map[string]interface{}
// @Router /api/sorgu [post]
func (s *Service) handleSorgu(c *gin.Context) {
	sess := httptransport.CurrentSession(c)
	if !sess.State.LoggedIn() {
		httptransport.RespondError(c, http.StatusUnauthorized, "key login required", nil)
		return
	}

	key, err := s.licenses.CheckUsable(c.Request.Context(), *sess.State.KeyID)
	if err != nil {
		sess.State.KeyID = nil
		if serr := s.sessions.Save(c.Request.Context(), sess); serr != nil {
			s.logger.Error("failed to save session: %v", serr)
		}
		httptransport.RespondError(c, http.StatusUnauthorized, "key no longer valid", nil)
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		httptransport.RespondError(c, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	name, _ := body["api"].(string)
	if name == "" {
		httptransport.RespondError(c, http.StatusBadRequest, "api is required", nil)
		return
	}
	params := make(map[string]string, len(body))
	for k, v := range body {
		if k == "api" {
			continue
		}
		params[k] = fmt.Sprint(v)
	}

	url, err := s.resolver.Resolve(name, params)
	if err != nil {
		s.bus.Publish(eventbus.TopicLookupFailed, eventbus.Event{
			SessionID: sess.ID,
			KeyID:     &key.ID,
			Data:      map[string]interface{}{"endpoint": name, "reason": err.Error()},
		})
		httptransport.RespondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result := s.proxy.Fetch(c.Request.Context(), url)
	if !result.OK {
		s.bus.Publish(eventbus.TopicLookupFailed, eventbus.Event{
			SessionID: sess.ID,
			KeyID:     &key.ID,
			Data:      map[string]interface{}{"endpoint": name, "reason": result.Err},
		})
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": result.Err})
		return
	}

	s.bus.Publish(eventbus.TopicLookupExecuted, eventbus.Event{
		SessionID: sess.ID,
		KeyID:     &key.ID,
		Data:      map[string]interface{}{"endpoint": name, "status": result.StatusCode},
	})

	if result.JSON != nil {
		c.JSON(result.StatusCode, gin.H{"success": true, "data": result.JSON})
		return
	}
	c.JSON(result.StatusCode, gin.H{"success": true, "data": result.Text})
}

// handleList godoc
// @Summary List available endpoints for a key
// @Produce json
// @Param key query string false "license key token"
// @Param X-API-KEY header string false "license key token"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} httptransport.APIResponse
// @Router /api/list [get]
func (s *Service) handleList(c *gin.Context) {
	token := c.Query("key")
	if token == "" {
		token = c.GetHeader("X-API-KEY")
	}
	if token == "" {
		httptransport.RespondError(c, http.StatusUnauthorized, "key is required", nil)
		return
	}

	key, err := s.licenses.ValidateToken(c.Request.Context(), token)
	if err != nil {
		httptransport.RespondError(c, http.StatusUnauthorized, "invalid or expired key", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"apis": s.catalog.Descriptors(),
		"plan": string(key.Plan),
	})
}
