package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/randevu-scheduler/internal/audit"
	"github.com/BruksfildServices01/randevu-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/randevu-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/randevu-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
	"github.com/BruksfildServices01/randevu-scheduler/internal/usecase/directory"
	"github.com/BruksfildServices01/randevu-scheduler/internal/validators"
)

type AuthHandler struct {
	users  user.Repository
	tokens *auth.TokenIssuer
	cache  directory.ProviderCache
	audit  *audit.Dispatcher
}

func NewAuthHandler(
	users user.Repository,
	tokens *auth.TokenIssuer,
	cache directory.ProviderCache,
	audit *audit.Dispatcher,
) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, cache: cache, audit: audit}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=provider customer"`
	FullName string `json:"full_name" binding:"required"`

	Category    *string  `json:"category"`
	Bio         *string  `json:"bio"`
	Phone       *string  `json:"phone"`
	WorkingDays []string `json:"working_days"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Eksik veya hatalı bilgi.")
		return
	}

	username := validators.NormalizeUsername(req.Username)
	if !validators.IsUsernameValid(username) {
		httperr.BadRequest(c, httperr.CodeValidation,
			"Kullanıcı adı 3-50 karakter olmalı; harf, rakam, '_' veya '.' içerebilir.")
		return
	}

	u := models.User{
		Username: username,
		Role:     req.Role,
		FullName: strings.TrimSpace(req.FullName),
		Category: trimmed(req.Category),
		Bio:      trimmed(req.Bio),
	}

	if req.Phone != nil {
		phone := validators.NormalizePhone(*req.Phone)
		if phone != "" {
			if !validators.IsPhoneValid(phone) {
				httperr.BadRequest(c, httperr.CodeValidation, "Geçersiz telefon numarası.")
				return
			}
			u.Phone = &phone
		}
	}

	if len(req.WorkingDays) > 0 {
		if req.Role != models.RoleProvider {
			httperr.BadRequest(c, httperr.CodeValidation, "Çalışma günleri yalnızca hizmet verenler içindir.")
			return
		}
		days, err := domain.ValidateWorkingDays(req.WorkingDays)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		u.WorkingDays = days.Encode()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	u.PasswordHash = string(hashed)

	if err := h.users.Create(c.Request.Context(), &u); err != nil {
		httperr.FromError(c, err)
		return
	}

	if u.IsProvider() {
		h.cache.Invalidate(c.Request.Context())
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(u.ID),
		Action:   audit.ActionUserRegistered,
		Entity:   audit.EntityUser,
		EntityID: audit.Ptr(u.ID),
		Metadata: map[string]any{"role": u.Role},
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Kayıt başarılı! Giriş yapabilirsiniz."})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Kullanıcı adı ve şifre zorunludur.")
		return
	}

	u, err := h.users.GetByUsername(c.Request.Context(), validators.NormalizeUsername(req.Username))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httperr.FromError(c, httperr.ErrBusiness(httperr.CodeInvalidCredentials))
			return
		}
		httperr.FromError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeInvalidCredentials))
		return
	}

	token, err := h.tokens.Issue(u)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  u,
	})
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
