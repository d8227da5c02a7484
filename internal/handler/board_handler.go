package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bizmate/internal/service"
)

// BoardHandler handles bulletin board endpoints.
type BoardHandler struct {
	boardService service.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

type boardRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type boardPatchRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func parseBoardNo(c *gin.Context) (int64, bool) {
	no, err := strconv.ParseInt(c.Param("no"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid board number")
		return 0, false
	}
	return no, true
}

// Create handles POST /api/v1/boards
func (h *BoardHandler) Create(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req boardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	board, err := h.boardService.Create(c.Request.Context(), &service.BoardInput{
		Identity: id,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, board)
}

// Get handles GET /api/v1/boards/:no
func (h *BoardHandler) Get(c *gin.Context) {
	no, ok := parseBoardNo(c)
	if !ok {
		return
	}

	board, err := h.boardService.Get(c.Request.Context(), no)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, board)
}

// List handles GET /api/v1/boards
func (h *BoardHandler) List(c *gin.Context) {
	page, size, offset := parsePage(c)

	boards, total, err := h.boardService.List(c.Request.Context(), c.Query("keyword"), offset, size)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPage(c, boards, page, size, total)
}

// Update handles PUT /api/v1/boards/:no
func (h *BoardHandler) Update(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	no, ok := parseBoardNo(c)
	if !ok {
		return
	}

	var req boardPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	board, err := h.boardService.Update(c.Request.Context(), no, &service.BoardInput{
		Identity: id,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, board)
}

// Delete handles DELETE /api/v1/boards/:no
func (h *BoardHandler) Delete(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	no, ok := parseBoardNo(c)
	if !ok {
		return
	}

	if err := h.boardService.Delete(c.Request.Context(), no, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "board post deleted"})
}

// AddComment handles POST /api/v1/boards/:no/comment
func (h *BoardHandler) AddComment(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	no, ok := parseBoardNo(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	comment, err := h.boardService.AddComment(c.Request.Context(), no, id, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, comment)
}

// ListComments handles GET /api/v1/boards/:no/comment
func (h *BoardHandler) ListComments(c *gin.Context) {
	no, ok := parseBoardNo(c)
	if !ok {
		return
	}

	comments, err := h.boardService.ListComments(c.Request.Context(), no)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, comments)
}

// DeleteComment handles DELETE /api/v1/boards/:no/comment/:id
func (h *BoardHandler) DeleteComment(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid comment id")
		return
	}

	if err := h.boardService.DeleteComment(c.Request.Context(), commentID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "comment deleted"})
}
