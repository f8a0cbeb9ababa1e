package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/config"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/middleware"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

const roleAdmin = "admin"

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userJSON(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}

// --------- Handlers ---------

// Register creates the first admin. Once any user exists, accounts are
// created through CreateUser by an authenticated admin.
func (h *AuthHandler) Register(c *gin.Context) {
	var count int64
	if err := h.db.WithContext(c.Request.Context()).Model(&models.User{}).Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}
	if count > 0 {
		httperr.Forbidden(c, "registration_closed", httperr.Message("registration_closed"))
		return
	}

	user, ok := h.createUser(c)
	if !ok {
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, user.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "No se pudo generar el token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": userJSON(user), "token": token})
}

func (h *AuthHandler) CreateUser(c *gin.Context) {
	if c.GetString(middleware.ContextUserRole) != roleAdmin {
		httperr.Forbidden(c, "forbidden", "Solo un administrador puede crear usuarios.")
		return
	}

	user, ok := h.createUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": userJSON(user)})
}

func (h *AuthHandler) createUser(c *gin.Context) (*models.User, bool) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return nil, false
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.WithContext(c.Request.Context()).Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "duplicate_email", "El correo ya está registrado.")
		return nil, false
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Error interno.")
		return nil, false
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         roleAdmin,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "No se pudo crear el usuario.")
		return nil, false
	}
	return &user, true
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", httperr.Message("invalid_credentials"))
			return
		}
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", httperr.Message("invalid_credentials"))
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, user.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "No se pudo generar el token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(&user), "token": token})
}
