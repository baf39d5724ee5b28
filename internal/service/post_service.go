package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"github.com/jinzhu/copier"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// DefaultPageSize is used when a caller passes no page size.
const DefaultPageSize = 10

const (
	msgPostNotFound      = "Post with ID %d not found."
	msgPostDraftHidden   = "This post is a draft and only authors have access to it"
	msgPostsNotFound     = "Posts not found"
	msgInvalidStatus     = "Invalid status. Use 'draft' or 'published'."
	msgNoChangePerm      = "You haven't permissions to change this post"
	msgNoDeletePerm      = "You haven't permissions to delete this post"
	msgStatusUnchanged   = "Post already has status '%s'."
	msgStatusChanged     = "Post's status has successfully changed to %s'."
	msgPostDeleted       = "Post with ID %d has been successfully deleted."
	msgChangeStatusError = "Internal error occurred while changing post's status: %v"
	msgDeleteError       = "Internal error occurred while deleting the post: %v"
)

// ListPostsQuery 帖子列表查询
type ListPostsQuery struct {
	AuthorID *uint64
	Tag      string
	Page     int
	PageSize int
}

type PostService interface {
	ListPosts(ctx context.Context, query ListPostsQuery) (*dto.PostListDTO, error)
	// GetFullPost returns either the post or an error Result. Missing posts and
	// drafts viewed by anyone but their author both produce an error Result.
	GetFullPost(ctx context.Context, postID uint64, callerID *uint64) (*dto.PostFullDTO, *Result, error)
	ChangePostStatus(ctx context.Context, postID uint64, newStatus string, callerID uint64) (*Result, error)
	DeletePost(ctx context.Context, postID uint64, callerID uint64) (*Result, error)
	CreatePost(ctx context.Context, authorID uint64, req *dto.PostCreateDTO) (uint64, error)
}

type postServiceImpl struct {
	postRepo    repository.PostRepo
	postTagRepo repository.PostTagRepo
	tagService  TagService
	policy      *bluemonday.Policy
}

// NewPostService 创建帖子服务, a nil policy stores content as submitted
func NewPostService(postRepo repository.PostRepo, postTagRepo repository.PostTagRepo, tagService TagService, policy *bluemonday.Policy) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		postTagRepo: postTagRepo,
		tagService:  tagService,
		policy:      policy,
	}
}

func (s *postServiceImpl) ListPosts(ctx context.Context, query ListPostsQuery) (*dto.PostListDTO, error) {
	pageSize := query.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	pageSize = util.ClampPageSize(pageSize)
	page := util.ClampPage(query.Page)

	q := repository.PostQuery{AuthorID: query.AuthorID, Tag: query.Tag}
	count, err := s.postRepo.CountPublished(ctx, q)
	if err != nil {
		return nil, err
	}

	result := &dto.PostListDTO{
		Page:  page,
		Posts: make([]*dto.PostFullDTO, 0),
	}
	if count == 0 {
		return result, nil
	}
	result.TotalPages = util.TotalPages(count, pageSize)
	result.NumberOfRows = count
	if page > result.TotalPages {
		return result, nil
	}

	posts, err := s.postRepo.ListPublished(ctx, q, util.Offset(page, pageSize), pageSize)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		item, err := toPostFullDTO(post)
		if err != nil {
			return nil, err
		}
		result.Posts = append(result.Posts, item)
	}

	log.InfoContext(ctx, "posts page fetched",
		"page", page,
		"posts", len(result.Posts),
		"author_id", query.AuthorID,
		"tag", query.Tag,
	)
	return result, nil
}

func (s *postServiceImpl) GetFullPost(ctx context.Context, postID uint64, callerID *uint64) (*dto.PostFullDTO, *Result, error) {
	post, err := s.postRepo.GetFull(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	if post == nil {
		return nil, errorResult(fmt.Sprintf(msgPostNotFound, postID)), nil
	}
	if post.Status == model.PostStatusDraft && (callerID == nil || *callerID != post.Author) {
		return nil, errorResult(msgPostDraftHidden), nil
	}

	full, err := toPostFullDTO(post)
	if err != nil {
		return nil, nil, err
	}
	return full, nil, nil
}

func (s *postServiceImpl) ChangePostStatus(ctx context.Context, postID uint64, newStatus string, callerID uint64) (*Result, error) {
	if !model.ValidPostStatus(newStatus) {
		return errorResult(msgInvalidStatus), nil
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return s.softFail(ctx, msgChangeStatusError, err)
	}
	if post == nil {
		return errorResult(fmt.Sprintf(msgPostNotFound, postID)), nil
	}
	if post.Author != callerID {
		return errorResult(msgNoChangePerm), nil
	}
	if post.Status == newStatus {
		return &Result{
			Status:        StatusInfo,
			Message:       fmt.Sprintf(msgStatusUnchanged, newStatus),
			PostID:        &postID,
			CurrentStatus: newStatus,
		}, nil
	}

	_, err = s.postRepo.Update(ctx, repository.PostFilter{ID: &postID}, repository.PostFilter{Status: &newStatus})
	if err != nil {
		return s.softFail(ctx, msgChangeStatusError, err)
	}
	return &Result{
		Status:    StatusSuccess,
		Message:   fmt.Sprintf(msgStatusChanged, newStatus),
		PostID:    &postID,
		NewStatus: newStatus,
	}, nil
}

func (s *postServiceImpl) DeletePost(ctx context.Context, postID uint64, callerID uint64) (*Result, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return s.softFail(ctx, msgDeleteError, err)
	}
	if post == nil {
		return errorResult(fmt.Sprintf(msgPostNotFound, postID)), nil
	}
	if post.Author != callerID {
		return errorResult(msgNoDeletePerm), nil
	}

	// 先删关联再删帖子
	if _, err = s.postTagRepo.Delete(ctx, repository.PostTagFilter{PostID: &postID}); err != nil {
		return s.softFail(ctx, msgDeleteError, err)
	}
	if _, err = s.postRepo.Delete(ctx, repository.PostFilter{ID: &postID}); err != nil {
		return s.softFail(ctx, msgDeleteError, err)
	}
	return &Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf(msgPostDeleted, postID),
	}, nil
}

// softFail folds a storage failure into an error Result. Only a cancelled context
// is reported on the error channel.
func (s *postServiceImpl) softFail(ctx context.Context, format string, err error) (*Result, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	log.ErrorContext(ctx, "post mutation failed", "err", err)
	return errorResult(fmt.Sprintf(format, err)), nil
}

func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uint64, req *dto.PostCreateDTO) (uint64, error) {
	existing, err := s.postRepo.FindOne(ctx, repository.PostFilter{Title: &req.Title})
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrPostExist
	}

	content := req.Content
	if s.policy != nil {
		content = s.policy.Sanitize(content)
	}

	post, err := s.postRepo.Add(ctx, repository.PostValues{
		Title:       req.Title,
		Description: req.Description,
		Content:     content,
		Status:      req.Status,
		Author:      authorID,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrPostExist
		}
		return 0, err
	}

	if len(req.Tags) > 0 {
		tagIDs, err := s.tagService.AddTags(ctx, req.Tags)
		if err != nil {
			return 0, err
		}
		tagIDs = util.UniqueIDs(tagIDs)
		pairs := make([]dto.PostTagPair, 0, len(tagIDs))
		for _, id := range tagIDs {
			pairs = append(pairs, dto.PostTagPair{PostID: util.PtrUint64(post.ID), TagID: util.PtrUint64(id)})
		}
		if err = s.tagService.LinkPostTags(ctx, pairs); err != nil {
			return 0, err
		}
	}

	log.InfoContext(ctx, "post created", "post_id", post.ID, "author", authorID, "tags", len(req.Tags))
	return post.ID, nil
}

func toPostFullDTO(post *model.Post) (*dto.PostFullDTO, error) {
	full := &dto.PostFullDTO{}
	if err := copier.Copy(full, post); err != nil {
		return nil, err
	}
	if full.Tags == nil {
		full.Tags = make([]dto.TagDTO, 0)
	}
	if post.User.ID != 0 {
		full.AuthorID = util.PtrUint64(post.User.ID)
		full.AuthorName = util.PtrString(post.User.Name)
	}
	return full, nil
}
