package app

import (
	"net/http"
	"time"

	"Clientes/internal/config"
	"Clientes/internal/handlers"
	"Clientes/internal/metrics"
	"Clientes/internal/repo"
	"Clientes/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, store repo.ClienteRepo, reg *prometheus.Registry) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg, newPinger(store, 2*time.Second)))
	r.GET("/version", versionHandler(cfg))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	clienteSvc := service.NewClienteService(store, metrics.New(reg))
	clienteHandler := handlers.NewClienteHandler(clienteSvc)
	registerClienteRoutes(r.Group("/clientes"), clienteHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Clientes API",
			"message": "¡El microservicio de CRUD de clientes está funcionando!",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/clientes",
		})
	}
}

func healthHandler(cfg config.Config, p *pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := p.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "env": cfg.App.Env, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env, "store": cfg.Store.Driver})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerClienteRoutes(g *gin.RouterGroup, h *handlers.ClienteHandler) {
	g.GET("", h.List)
	g.GET("/", h.List)
	g.POST("", h.Create)
	g.POST("/", h.Create)
	g.GET("/search/dni/:dni", h.SearchByDNI)
	g.GET("/dni/:dni", h.GetByDNI)
	g.PUT("/dni/:dni", h.Update)
	g.DELETE("/dni/:dni", h.Delete)
	g.PUT("/reactivate/dni/:dni", h.Reactivate)
}
