package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mnlocal/jobhub/internal/config"
	"github.com/mnlocal/jobhub/internal/http/handlers"
	"github.com/mnlocal/jobhub/internal/http/middlewares"
	"github.com/mnlocal/jobhub/internal/observability"
)

type RouterDeps struct {
	Log      *slog.Logger
	Cfg      config.Config
	Registry *prometheus.Registry
	Prom     *observability.Prom
	Commands *handlers.CommandHandler
	Static   *handlers.StaticHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(otelgin.Middleware("jobhub"))
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(d.Prom.GinHandleMiddleware())
	r.Use(middlewares.CORS())
	r.Use(middlewares.MaxBodyBytes(d.Cfg.MaxBodyBytes))

	// readiness covers the data files' directory being writable
	ready := func() error {
		for _, p := range []string{d.Cfg.UsersFile, d.Cfg.MessagesFile} {
			dir := filepath.Dir(p)
			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("data dir %s: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("data dir %s is not a directory", dir)
			}
		}
		return nil
	}

	h := handlers.NewHealthHandler(ready)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))

	// one endpoint dispatches every command; the original clients POST to
	// arbitrary paths, so the fallback dispatches too
	r.POST("/", d.Commands.Dispatch)

	r.NoRoute(func(ctx *gin.Context) {
		switch ctx.Request.Method {
		case http.MethodGet:
			d.Static.Serve(ctx)
		case http.MethodPost:
			d.Commands.Dispatch(ctx)
		default:
			ctx.String(http.StatusNotFound, "Not Found")
		}
	})

	return r
}
