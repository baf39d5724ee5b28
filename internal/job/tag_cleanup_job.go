package job

import (
	"Inkwell/internal/pkg/database"
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/service"
	"context"
	log "log/slog"

	"gorm.io/gorm"
)

// TagCleanupJob 清理不再关联任何帖子的标签
type TagCleanupJob struct {
	db     *gorm.DB
	tagSvc service.TagService
}

func NewTagCleanupJob(db *gorm.DB, tagSvc service.TagService) *TagCleanupJob {
	return &TagCleanupJob{
		db:     db,
		tagSvc: tagSvc,
	}
}

func (s *TagCleanupJob) Run() {
	ctx := logger.WithTraceID(context.Background(), logger.NewTraceID("job-tag-cleanup"))

	log.InfoContext(ctx, "start tag cleanup job")

	var pruned int64
	err := database.RunInTx(ctx, s.db, func(ctx context.Context) error {
		var err error
		pruned, err = s.tagSvc.PruneOrphanTags(ctx)
		return err
	})
	if err != nil {
		log.ErrorContext(ctx, "tag cleanup job failed", "err", err)
		return
	}

	log.InfoContext(ctx, "tag cleanup job finished", "pruned", pruned)
}
