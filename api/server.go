package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aquadesk/config"
	"aquadesk/pkg/logger"
	"aquadesk/pkg/metrics"
	"aquadesk/service"
	"aquadesk/storage"
)

type Server struct {
	httpServer *http.Server
	log        logger.ILogger
}

func NewServer(cfg config.Config, svc service.IServiceManager, prefs storage.IPreferenceStorage, m *metrics.Metrics, log logger.ILogger) *Server {
	h := &handlers{svc: svc, prefs: prefs, log: log}

	router := gin.New()
	router.Use(requestLogger(log))
	router.Use(metricsMiddleware(m))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", h.login)

		orders := v1.Group("/orders")
		{
			orders.GET("", h.report)

			orders.GET("/dates", h.localDates)

			orders.GET("/local/:date", h.localOrders)
			orders.POST("/local/:date", h.addLocalOrder)
			orders.PUT("/local/:date", h.replaceLocalOrders)
			orders.PATCH("/local/:date/:id", h.updateLocalOrder)
			orders.DELETE("/local/:date/:id", h.removeLocalOrder)
			orders.POST("/local/:date/:id/complete", h.completeLocalOrder)

			orders.GET("/remote", h.remoteOrders)
			orders.POST("/remote", h.createRemoteOrder)
			orders.PATCH("/remote/:id", h.updateRemoteOrder)
			orders.DELETE("/remote/:id", h.deleteRemoteOrder)
			orders.POST("/remote/:id/start", h.startRemoteOrder)
			orders.POST("/remote/:id/complete", h.completeRemoteOrder)
		}

		customers := v1.Group("/customers")
		{
			customers.GET("", h.listCustomers)
			customers.POST("", h.createCustomer)
			customers.PATCH("/:id", h.updateCustomer)
			customers.DELETE("/:id", h.deleteCustomer)
		}

		v1.GET("/couriers", h.listCouriers)

		v1.GET("/preferences", h.preferences)
		v1.PUT("/preferences/darkmode", h.setDarkMode)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + strconv.Itoa(cfg.AppPort),
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log: log,
	}
}

func (s *Server) Start() error {
	s.log.Info("starting HTTP server", logger.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
