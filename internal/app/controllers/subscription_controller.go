package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/app/services"
	"github.com/edusphere/backend/internal/middleware"
)

// SubscriptionController handles subscription lifecycle operations
type SubscriptionController struct {
	subscriptionService services.SubscriptionService
}

// NewSubscriptionController creates a new SubscriptionController
func NewSubscriptionController(subscriptionService services.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{subscriptionService: subscriptionService}
}

// Subscribe godoc
// @Summary Activate a subscription for the authenticated user
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /subscriptions [post]
func (c *SubscriptionController) Subscribe(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("authentication required"))
		return
	}

	user, err := c.subscriptionService.Subscribe(ctx.Request.Context(), principal.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserResponse{
		APIResponse: dto.NewSuccessResponse("Subscribed successfully"),
		User:        user,
	})
}

// Cancel godoc
// @Summary Cancel the authenticated user's subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /subscriptions [delete]
func (c *SubscriptionController) Cancel(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("authentication required"))
		return
	}

	user, err := c.subscriptionService.Cancel(ctx.Request.Context(), principal.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserResponse{
		APIResponse: dto.NewSuccessResponse("Subscription cancelled successfully"),
		User:        user,
	})
}
