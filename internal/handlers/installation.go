package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/services"
	"github.com/yigyaps/yigyaps/internal/types"
)

type InstallationHandler struct {
	log     *logger.Logger
	install services.InstallService
}

func NewInstallationHandler(log *logger.Logger, install services.InstallService) *InstallationHandler {
	return &InstallationHandler{
		log:     log.With("handler", "InstallationHandler"),
		install: install,
	}
}

type installRequest struct {
	PackageID uuid.UUID `json:"packageId"`
	AgentID   string    `json:"agentId"`
}

// Create installs a package for an agent. A repeat of an already-active
// (package, agent) pair answers 200 with the existing row instead of 201.
func (h *InstallationHandler) Create(c *gin.Context) {
	var req installRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondValidation(c, "invalid request body: %v", err)
		return
	}
	if req.PackageID == uuid.Nil {
		RespondValidation(c, "packageId is required")
		return
	}
	inst, created, err := h.install.Install(c.Request.Context(), req.PackageID, req.AgentID)
	if err != nil {
		RespondError(c, err)
		return
	}
	if created {
		RespondCreated(c, inst)
		return
	}
	RespondOK(c, inst)
}

func (h *InstallationHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", repos.DefaultPageLimit)
	offset := queryInt(c, "offset", 0)
	results, total, err := h.install.List(c.Request.Context(), limit, offset)
	if err != nil {
		RespondError(c, err)
		return
	}
	limit, offset = repos.ClampPage(limit, offset)
	RespondPage(c, results, total, limit, offset)
}

type installationPatchRequest struct {
	Status types.InstallStatus `json:"status"`
}

func (h *InstallationHandler) UpdateStatus(c *gin.Context) {
	installationID, err := parseUUIDParam(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var req installationPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondValidation(c, "invalid request body: %v", err)
		return
	}
	inst, err := h.install.UpdateStatus(c.Request.Context(), installationID, req.Status)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, inst)
}
