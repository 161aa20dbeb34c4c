package server

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sitetrack/sitetrack/internal/authorization"
	"github.com/sitetrack/sitetrack/internal/config"
	"github.com/sitetrack/sitetrack/internal/ledger"
	ledgerdomain "github.com/sitetrack/sitetrack/internal/ledger/domain"
	"github.com/sitetrack/sitetrack/internal/material"
	materialdomain "github.com/sitetrack/sitetrack/internal/material/domain"
	"github.com/sitetrack/sitetrack/internal/observability"
	obsmiddleware "github.com/sitetrack/sitetrack/internal/observability/logger"
	obsmetrics "github.com/sitetrack/sitetrack/internal/observability/metrics"
	obstracing "github.com/sitetrack/sitetrack/internal/observability/tracing"
	"github.com/sitetrack/sitetrack/internal/project"
	projectdomain "github.com/sitetrack/sitetrack/internal/project/domain"
	"github.com/sitetrack/sitetrack/internal/ratelimit"
	"github.com/sitetrack/sitetrack/internal/supplier"
	supplierdomain "github.com/sitetrack/sitetrack/internal/supplier/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	project.Module,
	supplier.Module,
	material.Module,
	ledger.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, srvCfg config.ServerConfig, log *zap.Logger) {
	srv := &http.Server{
		Addr:         srvCfg.Addr,
		Handler:      r,
		ReadTimeout:  srvCfg.ReadTimeout,
		WriteTimeout: srvCfg.WriteTimeout,
		IdleTimeout:  srvCfg.IdleTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, srvCfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	genID       *snowflake.Node
	authzSvc    authorization.Service
	projectSvc  projectdomain.Service
	supplierSvc supplierdomain.Service
	materialSvc materialdomain.Service
	ledgerSvc   ledgerdomain.Service
	obsMetrics  *obsmetrics.Metrics
	txLimiter   *ratelimit.TransactionIngestLimiter
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	GenID       *snowflake.Node
	AuthzSvc    authorization.Service
	ProjectSvc  projectdomain.Service
	SupplierSvc supplierdomain.Service
	MaterialSvc materialdomain.Service
	LedgerSvc   ledgerdomain.Service
	ObsMetrics  *obsmetrics.Metrics                 `optional:"true"`
	TxLimiter   *ratelimit.TransactionIngestLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		genID:       p.GenID,
		authzSvc:    p.AuthzSvc,
		projectSvc:  p.ProjectSvc,
		supplierSvc: p.SupplierSvc,
		materialSvc: p.MaterialSvc,
		ledgerSvc:   p.LedgerSvc,
		obsMetrics:  p.ObsMetrics,
		txLimiter:   p.TxLimiter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.UserContext())

	// -------- Projects --------
	api.POST("/projects", s.CreateProject)
	api.GET("/projects", s.ListProjects)
	api.GET("/projects/:projectId", s.GetProjectByID)

	// -------- Suppliers --------
	api.POST("/suppliers", s.CreateSupplier)
	api.GET("/suppliers", s.ListSuppliers)
	api.GET("/suppliers/:id", s.GetSupplierByID)
	api.PUT("/suppliers/:id", s.UpdateSupplier)
	api.DELETE("/suppliers/:id", s.DeleteSupplier)

	// -------- Materials --------
	materials := api.Group("/projects/:projectId/materials")
	materials.POST("", s.CreateMaterial)
	materials.GET("", s.ListMaterials)
	materials.GET("/:id", s.GetMaterialByID)
	materials.PUT("/:id", s.UpdateMaterial)
	materials.POST("/:id/archive", s.ArchiveMaterial)

	// -------- Stock ledger --------
	materials.POST("/:id/transactions", s.TransactionIngestRateLimit(), s.RegisterTransaction)
	materials.GET("/:id/transactions", s.ListTransactions)
	materials.GET("/:id/stock", s.GetStock)
}
