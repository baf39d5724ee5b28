package api

import (
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter corsOrigins lists the origins allowed cross-site, see CORSMiddleware.
func SetupRouter(group *HandlersGroup, db *gorm.DB, corsOrigins []string) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(corsOrigins))
	logger.SetupGin(r)

	// 事务需先于鉴权, so the user lookup runs on the request transaction
	withCommit := middleware.Transaction(db, true)
	noCommit := middleware.Transaction(db, false)
	authOpt := middleware.AuthOptionalMiddleware(group.AuthService, group.Sessions)
	auth := middleware.AuthMiddleware(group.AuthService, group.Sessions)
	admin := middleware.AdminMiddleware(group.AuthService)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/posts")
	})
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	postGroup := r.Group("/posts")
	{
		postGroup.GET("", noCommit, authOpt, group.PostHandler.ListPosts)
		postGroup.GET("/:post_id", noCommit, authOpt, group.PostHandler.GetPost)
		postGroup.POST("", withCommit, auth, group.PostHandler.CreatePost)
		postGroup.DELETE("/:post_id", withCommit, auth, group.PostHandler.DeletePost)
		postGroup.PATCH("/:post_id", withCommit, auth, group.PostHandler.ChangePostStatus)
	}

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", withCommit, group.AuthHandler.Register)
		authGroup.POST("/login", noCommit, group.AuthHandler.Login)
		authGroup.POST("/logout", group.AuthHandler.Logout)
		authGroup.GET("/me", noCommit, auth, group.AuthHandler.Me)
		authGroup.GET("/all_users", noCommit, auth, admin, group.AuthHandler.AllUsers)
	}

	return r
}
