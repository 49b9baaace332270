package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/randevu-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/randevu-scheduler/internal/middleware"
	"github.com/BruksfildServices01/randevu-scheduler/internal/usecase/directory"
)

type MeHandler struct {
	users       user.Repository
	workingDays *directory.WorkingDays
	avatar      *directory.UploadAvatar
}

func NewMeHandler(
	users user.Repository,
	workingDays *directory.WorkingDays,
	avatar *directory.UploadAvatar,
) *MeHandler {
	return &MeHandler{users: users, workingDays: workingDays, avatar: avatar}
}

type WorkingDaysRequest struct {
	WorkingDays []string `json:"working_days"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, _ := middleware.Caller(c)

	u, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httperr.Unauthorized(c, "user_not_found", "Kullanıcı bulunamadı.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"user": u})
}

// --------------------------------------------------
// Working days (providers)
// --------------------------------------------------

func (h *MeHandler) GetWorkingDays(c *gin.Context) {
	userID, _ := middleware.Caller(c)

	days, err := h.workingDays.Get(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"working_days": days})
}

func (h *MeHandler) UpdateWorkingDays(c *gin.Context) {
	var req WorkingDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "working_days bir gün listesi olmalıdır.")
		return
	}

	userID, _ := middleware.Caller(c)

	days, err := h.workingDays.Set(c.Request.Context(), userID, req.WorkingDays)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"working_days": days})
}

// --------------------------------------------------
// Avatar (providers)
// --------------------------------------------------

func (h *MeHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "avatar dosyası zorunludur.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Dosya okunamadı.")
		return
	}
	defer f.Close()

	userID, _ := middleware.Caller(c)

	url, err := h.avatar.Execute(c.Request.Context(), userID, f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
