package wire

import (
	"Inkwell/internal/api"
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/handler"
	"Inkwell/internal/job"
	"Inkwell/internal/pkg/cron"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/repository"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	CronManager *cron.Manager
}

// BuildApplication revoker may be nil when no session blacklist is configured.
func BuildApplication(db *gorm.DB, cfg *config.Config, revoker security.Revoker) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	postRepo := repository.NewPostRepository(db)
	tagRepo := repository.NewTagRepository(db)
	postTagRepo := repository.NewPostTagRepo(db)

	verifier, err := security.NewPasswordVerifier(cfg.Auth.PasswordScheme)
	if err != nil {
		return nil, err
	}
	sessions, err := security.NewSessions(cfg.Auth)
	if err != nil {
		return nil, err
	}

	var policy *bluemonday.Policy
	if cfg.Posts.SanitizeHTML {
		policy = bluemonday.UGCPolicy()
	}

	tagService := service.NewTagService(tagRepo, postTagRepo)
	postService := service.NewPostService(postRepo, postTagRepo, tagService, policy)
	authService := service.NewAuthService(userRepo, roleRepo, verifier, sessions, revoker, cfg.Auth)

	handlers := &api.HandlersGroup{
		PostHandler: handler.NewPostHandler(postService, cfg.Posts.DefaultPageSize),
		AuthHandler: handler.NewAuthHandler(authService, sessions),
		AuthService: authService,
		Sessions:    sessions,
	}

	router := api.SetupRouter(handlers, db, cfg.Server.CORSOrigins)

	cronMgr := cron.NewCronManager(cfg.Cron, job.NewTagCleanupJob(db, tagService))

	return &ApplicationContainer{
		Router:      router,
		DB:          db,
		CronManager: cronMgr,
	}, nil
}
