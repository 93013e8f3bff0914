package modules

import (
	"github.com/gin-gonic/gin"

	handlers "community-board/internal/interface/http"
	"community-board/internal/interface/middleware"
	"community-board/pkg/helpers"
)

// NoticeModule wires notice CRUD, search, and attachment routes.
// Every route sits behind the auth gate, listing included.
type NoticeModule struct {
	Handler *handlers.NoticeHandler
	JWT     *helpers.JWTManager
}

func NewNoticeModule(h *handlers.NoticeHandler, jwt *helpers.JWTManager) *NoticeModule {
	return &NoticeModule{Handler: h, JWT: jwt}
}

func (m *NoticeModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/notices")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/search", m.Handler.Search)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.POST("/:id/attachment", m.Handler.UploadAttachment)
	}
}
