package router

import (
	"github.com/gin-gonic/gin"

	"bizmate/internal/handler"
	"bizmate/internal/middleware"
	"bizmate/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	approvalH *handler.ApprovalHandler,
	attachmentH *handler.AttachmentHandler,
	boardH *handler.BoardHandler,
	userH *handler.UserHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", authH.Me)

	// Document routing. Static segments registered before the :id wildcard.
	approvals := protected.Group("/approvals")
	approvals.GET("", approvalH.List)
	approvals.POST("", approvalH.Submit)
	approvals.GET("/line", approvalH.ResolveLine)
	approvals.GET("/export", approvalH.Export)
	approvals.POST("/draft", approvalH.SaveDraft)
	approvals.PUT("/draft/:id", approvalH.UpdateDraft)
	approvals.GET("/:id", approvalH.Get)
	approvals.POST("/:id/approve", approvalH.Approve)
	approvals.POST("/:id/reject", approvalH.Reject)
	approvals.POST("/:id/resubmit", approvalH.Resubmit)
	approvals.POST("/:id/force-approve", middleware.RequireAdmin(), approvalH.ForceApprove)
	approvals.POST("/:id/force-reject", middleware.RequireAdmin(), approvalH.ForceReject)
	approvals.DELETE("/:id", middleware.RequireAdmin(), approvalH.Delete)

	attachments := protected.Group("/attachments")
	attachments.POST("", attachmentH.Upload)
	attachments.GET("/:id/download", attachmentH.Download)
	attachments.GET("/:id/preview", attachmentH.Preview)
	attachments.DELETE("/:id", attachmentH.Delete)

	boards := protected.Group("/boards")
	boards.GET("", boardH.List)
	boards.POST("", boardH.Create)
	boards.GET("/:no", boardH.Get)
	boards.PUT("/:no", boardH.Update)
	boards.DELETE("/:no", boardH.Delete)
	boards.POST("/:no/comment", boardH.AddComment)
	boards.GET("/:no/comment", boardH.ListComments)
	boards.DELETE("/:no/comment/:id", boardH.DeleteComment)

	users := protected.Group("/users")
	users.GET("/me", userH.Me)
	users.GET("", userH.Search)

	return r
}
