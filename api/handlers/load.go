package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/streetsearch/db/searchdb"
	"github.com/meghashyamc/streetsearch/logger"
	"github.com/meghashyamc/streetsearch/services/ingest"
	"github.com/meghashyamc/streetsearch/validation"
)

type LoadRequest struct {
	FilePath string `json:"filePath" validate:"required,valid_path"`
}

type LoadResponse struct {
	Loaded  int    `json:"loaded"`
	Skipped int    `json:"skipped"`
	Message string `json:"message"`
}

func SetupLoad(router *gin.Engine, logger logger.Logger, searchDB searchdb.DB, validator *validation.Validator) {
	service := ingest.New(logger, searchDB)
	router.POST("/load-csv", handleLoad(service, logger, validator))

}

func handleLoad(service *ingest.Service, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := LoadRequest{}
		if err := c.ShouldBindJSON(&request); err != nil {
			logger.Warn("could not extract expected params from load request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusBadRequest, []string{"failed to extract request body parameters"})
			return
		}

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate load request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusBadRequest, []string{err.Error()})
			return
		}

		filePath, err := filepath.Abs(request.FilePath)
		if err != nil {
			logger.Error("could not resolve csv path", "path", request.FilePath, "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		result, err := service.Load(c.Request.Context(), filePath)
		if err != nil {
			logger.Error("could not load csv", "path", filePath, "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		writeResponse(c, LoadResponse{
			Loaded:  result.Loaded,
			Skipped: result.Skipped,
			Message: fmt.Sprintf("Successfully loaded %d items", result.Loaded),
		}, http.StatusOK, nil)
	}
}
