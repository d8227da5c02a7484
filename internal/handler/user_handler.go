package handler

import (
	"github.com/gin-gonic/gin"

	"bizmate/internal/service"
)

// UserHandler handles employee lookup endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id.UserID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// Search handles GET /api/v1/users — the manual-mode approver picker.
func (h *UserHandler) Search(c *gin.Context) {
	if _, ok := requireIdentity(c); !ok {
		return
	}

	page, size, offset := parsePage(c)
	users, total, err := h.userService.Search(c.Request.Context(), c.Query("keyword"), offset, size)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPage(c, users, page, size, total)
}
