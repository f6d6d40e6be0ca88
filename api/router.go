package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/streetsearch/api/handlers"
	"github.com/meghashyamc/streetsearch/db/searchdb"
	"github.com/meghashyamc/streetsearch/logger"
	"github.com/meghashyamc/streetsearch/metrics"
	"github.com/meghashyamc/streetsearch/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupRoutes(router *gin.Engine, logger logger.Logger, searchDB searchdb.DB, validator *validation.Validator, pageSize int) {
	router.GET("/", welcome())
	router.GET("/health", health(logger, searchDB))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.SetupSearch(router, logger, searchDB, validator, pageSize)
	handlers.SetupDelete(router, logger, searchDB)
	handlers.SetupLoad(router, logger, searchDB, validator)

}

func welcome() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "streetsearch API: GET /search, PATCH /delete/:id, POST /load-csv")
	}
}

func health(logger logger.Logger, searchDB searchdb.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := searchDB.GetDocCount(c.Request.Context())
		if err != nil {
			logger.Error("search engine is unavailable", "err", err.Error())
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "UNAVAILABLE"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK", "documents": count})
	}
}

func newRouter() *gin.Engine {
	router := gin.New()
	router.UseRawPath = true
	router.Use(_CORSMiddleware())
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	return router
}
