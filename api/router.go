package api

import (
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/luca-patrignani/hashchain/api/handlers"
	"github.com/luca-patrignani/hashchain/api/middleware"
)

// Router wraps the Gin router with handlers
type Router struct {
	engine        *gin.Engine
	logger        *slog.Logger
	blockHandler  *handlers.BlockHandler
	verifyHandler *handlers.VerifyHandler
}

// NewRouter creates a Router serving chain. The router is the only writer
// of chain from then on.
func NewRouter(chain handlers.Ledger, logger *slog.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	synced := handlers.NewSyncLedger(chain)

	r := &Router{
		engine:        gin.New(),
		logger:        logger,
		blockHandler:  handlers.NewBlockHandler(synced),
		verifyHandler: handlers.NewVerifyHandler(synced),
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS())
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")
	{
		blocks := v1.Group("/blocks")
		{
			blocks.GET("", r.blockHandler.List)
			blocks.POST("", r.blockHandler.Append)
			blocks.GET("/latest", r.blockHandler.GetLatest)
			blocks.GET("/:index", r.blockHandler.GetByIndex)
		}

		v1.GET("/verify", r.verifyHandler.Verify)
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
