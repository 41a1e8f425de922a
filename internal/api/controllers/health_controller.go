package controllers

import (
	"github.com/gin-gonic/gin"
	"tabiplan/pkg/utils"
)

type HealthController struct {
	provider string
}

func NewHealthController(generator utils.TextGeneratorInterface) *HealthController {
	return &HealthController{provider: generator.Provider()}
}

func (h *HealthController) Health(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"provider": h.provider}, "ok")
}
