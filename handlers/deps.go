package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Viniciustertuliano/photovault/logger"
	"github.com/Viniciustertuliano/photovault/services"
	"github.com/Viniciustertuliano/photovault/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var appServices *services.Container

func SetServices(container *services.Container) {
	appServices = container
}

func getServices() *services.Container {
	if appServices == nil {
		panic("services container is not initialized")
	}
	return appServices
}

func respondServiceError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var appErr *services.AppError
	if errors.As(err, &appErr) && appErr != nil {
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("path", c.Request.URL.Path), zap.String("kind", string(appErr.Kind)), zap.Error(err))
		}
		if appErr.Data != nil {
			utils.ErrorWithData(c, appErr.HTTPCode, appErr.Message, appErr.Data)
		} else {
			utils.Error(c, appErr.HTTPCode, appErr.Message)
		}
		return true
	}

	logger.Error("unexpected error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	utils.Error(c, http.StatusInternalServerError, "Internal server error")
	return true
}

func parseIDParam(c *gin.Context, name string, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.Error(c, http.StatusBadRequest, "Invalid "+label+" id")
		return 0, false
	}
	return uint(id), true
}
