package controllers

import (
	"errors"
	"net/http"

	"github.com/JerryLinyx/NewsSummarizer/services"
	"github.com/gin-gonic/gin"
)

var kindStatus = map[services.Kind]int{
	services.KindInvalidInput:     http.StatusBadRequest,
	services.KindNotFound:         http.StatusNotFound,
	services.KindGeneration:       http.StatusInternalServerError,
	services.KindStoreUnavailable: http.StatusServiceUnavailable,
	services.KindUnexpected:       http.StatusInternalServerError,
}

// respondError renders err as {"error", "message"} with the status of its kind.
func respondError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := "An unexpected error occurred"
	var svcErr *services.Error
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		message = svcErr.Message
	}

	_ = c.Error(err)
	c.JSON(status, gin.H{"error": kind.String(), "message": message})
}
