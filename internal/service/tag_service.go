package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	log "log/slog"
)

type TagService interface {
	// AddTags 查找或创建标签, ids are returned in input order
	AddTags(ctx context.Context, names []string) ([]uint64, error)
	LinkPostTags(ctx context.Context, pairs []dto.PostTagPair) error
	PruneOrphanTags(ctx context.Context) (int64, error)
}

type tagServiceImpl struct {
	tagRepo     repository.TagRepo
	postTagRepo repository.PostTagRepo
}

func NewTagService(tagRepo repository.TagRepo, postTagRepo repository.PostTagRepo) TagService {
	return &tagServiceImpl{
		tagRepo:     tagRepo,
		postTagRepo: postTagRepo,
	}
}

func (s *tagServiceImpl) AddTags(ctx context.Context, names []string) ([]uint64, error) {
	ids := make([]uint64, 0, len(names))
	known := make(map[string]uint64, len(names))
	for _, raw := range names {
		name := util.NormalizeTagName(raw)
		if id, ok := known[name]; ok {
			ids = append(ids, id)
			continue
		}

		tag, err := s.tagRepo.FindOne(ctx, repository.TagFilter{Name: &name})
		if err != nil {
			return nil, err
		}
		if tag == nil {
			tag, err = s.tagRepo.Add(ctx, repository.TagValues{Name: name})
			if err != nil {
				return nil, err
			}
			log.InfoContext(ctx, "tag created", "tag_id", tag.ID, "name", name)
		}
		known[name] = tag.ID
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

func (s *tagServiceImpl) LinkPostTags(ctx context.Context, pairs []dto.PostTagPair) error {
	values := make([]repository.Values[model.PostTag], 0, len(pairs))
	for _, p := range pairs {
		if p.PostID == nil || p.TagID == nil {
			log.WarnContext(ctx, "skipping incomplete post-tag pair", "post_id", p.PostID, "tag_id", p.TagID)
			continue
		}
		values = append(values, repository.PostTagValues{PostID: *p.PostID, TagID: *p.TagID})
	}
	if len(values) == 0 {
		return nil
	}
	_, err := s.postTagRepo.AddMany(ctx, values)
	return err
}

func (s *tagServiceImpl) PruneOrphanTags(ctx context.Context) (int64, error) {
	n, err := s.tagRepo.DeleteOrphans(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.InfoContext(ctx, "orphan tags pruned", "count", n)
	}
	return n, nil
}
