package httptransport

import (
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"

	"keneviz-panel-go/internal/domain/session"
	"keneviz-panel-go/internal/platform/config"
	"keneviz-panel-go/internal/platform/errors"
	"keneviz-panel-go/internal/platform/logging"
)

// Options configures the HTTP router builder.
type Options struct {
	Config   *config.Config
	Logger   *logging.Logger
	Sessions *session.Manager
}

// Router bundles the gin engine with the route groups services register
// themselves on.
type Router struct {
	Engine *gin.Engine
	// Root carries the session middleware; every page and API route
	// hangs off it.
	Root *gin.RouterGroup
}

// Build constructs a gin engine with recovery, request logging, CORS,
// static file serving and the session cookie middleware.
func Build(opts Options) (*Router, error) {
	if opts.Config == nil {
		return nil, errors.New(errors.KindTransport, "http.build", "http router requires config")
	}
	if opts.Sessions == nil {
		return nil, errors.New(errors.KindTransport, "http.build", "http router requires a session manager")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default
	}

	if opts.Config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(loggingMiddleware(logger))

	engine.SetTrustedProxies([]string{"0.0.0.0"})

	engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"X-API-KEY",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if glob := opts.Config.Server.TemplateGlob; glob != "" {
		// Loading an empty glob panics inside gin, so probe first.
		if matches, _ := filepath.Glob(glob); len(matches) > 0 {
			engine.LoadHTMLGlob(glob)
		} else {
			logger.Warn("no templates matched %s, HTML pages disabled", glob)
		}
	}

	if dir := opts.Config.Server.StaticDir; dir != "" {
		engine.Use(static.Serve("/static", static.LocalFile(dir, false)))
	}

	root := engine.Group("")
	root.Use(SessionMiddleware(opts.Sessions, logger))

	return &Router{Engine: engine, Root: root}, nil
}

func loggingMiddleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(
			"[HTTP] %s %s -> %d (%s)",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
