package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/services"
	"github.com/yigyaps/yigyaps/internal/types"
)

type PackageHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewPackageHandler(log *logger.Logger, catalog services.CatalogService) *PackageHandler {
	return &PackageHandler{
		log:     log.With("handler", "PackageHandler"),
		catalog: catalog,
	}
}

func (h *PackageHandler) Publish(c *gin.Context) {
	var input services.PublishSkillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondValidation(c, "invalid request body: %v", err)
		return
	}
	pkg, err := h.catalog.Publish(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, pkg)
}

func (h *PackageHandler) Search(c *gin.Context) {
	params := repos.PackageSearchParams{
		Query:      c.Query("q"),
		Category:   c.Query("category"),
		Maturity:   types.Maturity(c.Query("maturity")),
		AuthorName: c.Query("author"),
		Order:      repos.PackageOrder(c.DefaultQuery("order", string(repos.OrderRelevance))),
		Limit:      queryInt(c, "limit", repos.DefaultPageLimit),
		Offset:     queryInt(c, "offset", 0),
	}
	results, total, err := h.catalog.Search(c.Request.Context(), params)
	if err != nil {
		RespondError(c, err)
		return
	}
	limit, offset := repos.ClampPage(params.Limit, params.Offset)
	RespondPage(c, results, total, limit, offset)
}

func (h *PackageHandler) GetByID(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	pkg, err := h.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, pkg)
}

func (h *PackageHandler) GetByPackageID(c *gin.Context) {
	pkg, err := h.catalog.GetByPackageID(c.Request.Context(), c.Param("packageId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, pkg)
}

func (h *PackageHandler) Delete(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := h.catalog.SoftDelete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
