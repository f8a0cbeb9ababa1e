package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/middleware"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Sesión inválida.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, *userID).Error; err != nil {
		httperr.Respond(c, notFound(err, "user_not_found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(&user)})
}
