package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/streetsearch/db/searchdb"
	"github.com/meghashyamc/streetsearch/logger"
	"github.com/meghashyamc/streetsearch/services/search"
	"github.com/meghashyamc/streetsearch/validation"
)

type SearchRequest struct {
	Query string `form:"q" json:"q" validate:"required,valid_query,max=1000"`
	Mode  string `form:"mode" json:"mode" validate:"required,valid_mode"`
}

func SetupSearch(router *gin.Engine, logger logger.Logger, searchDB searchdb.DB, validator *validation.Validator, pageSize int) {
	service := search.New(logger, searchDB, pageSize)
	router.GET("/search", handleSearch(service, logger, validator))

}

// handleSearch responds with a bare JSON array of records, which is what the UI consumes.
func handleSearch(service *search.Service, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := SearchRequest{}
		if err := c.ShouldBindQuery(&request); err != nil {
			logger.Warn("could not extract expected params from search request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusBadRequest, []string{"failed to extract query parameters"})
			return
		}

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate search request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusBadRequest, []string{err.Error()})
			return
		}

		results, err := service.Search(c.Request.Context(), request.Query, request.Mode)
		if err != nil {
			if errors.Is(err, search.ErrValidation) {
				c.Abort()
				writeResponse(c, nil, http.StatusBadRequest, []string{err.Error()})
				return
			}
			logger.Error("search failed", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{"error performing search"})
			return
		}

		c.JSON(http.StatusOK, results)
	}
}
