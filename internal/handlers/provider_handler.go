package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/randevu-scheduler/internal/usecase/directory"
)

type ProviderHandler struct {
	list *directory.ListProviders
}

func NewProviderHandler(list *directory.ListProviders) *ProviderHandler {
	return &ProviderHandler{list: list}
}

// List is public: GET /api/providers?category=Berber
func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.list.Execute(c.Request.Context(), c.Query("category"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Array(c, providers)
}
