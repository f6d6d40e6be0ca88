package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/streetsearch/db/searchdb"
	"github.com/meghashyamc/streetsearch/logger"
	"github.com/meghashyamc/streetsearch/services/record"
	"github.com/meghashyamc/streetsearch/services/search"
)

type DeleteResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func SetupDelete(router *gin.Engine, logger logger.Logger, searchDB searchdb.DB) {
	service := record.New(logger, searchDB)
	router.PATCH("/delete/:id", handleDelete(service, logger))

}

func handleDelete(service *record.Service, logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if err := service.Delete(c.Request.Context(), id); err != nil {
			c.Abort()
			switch {
			case errors.Is(err, search.ErrValidation):
				writeResponse(c, nil, http.StatusBadRequest, []string{err.Error()})
			case errors.Is(err, searchdb.ErrNotFound):
				writeResponse(c, nil, http.StatusNotFound, []string{err.Error()})
			default:
				logger.Error("delete failed", "id", id, "err", err.Error())
				writeResponse(c, nil, http.StatusInternalServerError, []string{"error deleting document"})
			}
			return
		}

		writeResponse(c, DeleteResponse{ID: id, Message: "Document marked as deleted"}, http.StatusOK, nil)
	}
}
