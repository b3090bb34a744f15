package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/services"
)

type ReviewHandler struct {
	log    *logger.Logger
	review services.ReviewService
}

func NewReviewHandler(log *logger.Logger, review services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		log:    log.With("handler", "ReviewHandler"),
		review: review,
	}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	packageID, err := parseUUIDParam(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var input services.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondValidation(c, "invalid request body: %v", err)
		return
	}
	review, err := h.review.Create(c.Request.Context(), packageID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, review)
}

func (h *ReviewHandler) ListByPackage(c *gin.Context) {
	packageID, err := parseUUIDParam(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	sort := repos.ReviewSort(c.DefaultQuery("sort", string(repos.ReviewSortNewest)))
	limit := queryInt(c, "limit", repos.DefaultPageLimit)
	offset := queryInt(c, "offset", 0)
	results, total, err := h.review.ListByPackage(c.Request.Context(), packageID, sort, limit, offset)
	if err != nil {
		RespondError(c, err)
		return
	}
	limit, offset = repos.ClampPage(limit, offset)
	RespondPage(c, results, total, limit, offset)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	reviewID, err := parseUUIDParam(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	var input services.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondValidation(c, "invalid request body: %v", err)
		return
	}
	review, err := h.review.Update(c.Request.Context(), reviewID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := parseUUIDParam(c, "id")
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := h.review.Delete(c.Request.Context(), reviewID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
