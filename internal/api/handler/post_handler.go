package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	msgPostAdded     = "Post with ID %d has been successfully added"
	msgPostsNotFound = "Posts not found"
)

type PostHandler struct {
	postSvc         service.PostService
	defaultPageSize int
}

func NewPostHandler(postSvc service.PostService, defaultPageSize int) *PostHandler {
	if defaultPageSize == 0 {
		defaultPageSize = util.MinPageSize
	}
	return &PostHandler{
		postSvc:         postSvc,
		defaultPageSize: defaultPageSize,
	}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.PostCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	postID, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.PostCreatedDTO{
		Status:  service.StatusSuccess,
		Message: fmt.Sprintf(msgPostAdded, postID),
		PostID:  postID,
	})
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, result, err := s.postSvc.GetFullPost(c.Request.Context(), postID, callerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if result != nil {
		response.Success(c, dto.PostNotFoundDTO{Message: result.Message, Status: result.Status})
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	var q dto.PostListQueryDTO
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	if err := util.ValidateDTO(&q); err != nil {
		response.Error(c, err)
		return
	}

	query := service.ListPostsQuery{
		AuthorID: q.AuthorID,
		Tag:      q.Tag,
		Page:     1,
		PageSize: s.defaultPageSize,
	}
	if q.Page != nil {
		query.Page = *q.Page
	}
	if q.PageSize != nil {
		query.PageSize = *q.PageSize
	}

	posts, err := s.postSvc.ListPosts(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(posts.Posts) == 0 {
		response.Success(c, dto.PostNotFoundDTO{Message: msgPostsNotFound, Status: service.StatusError})
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	result, err := s.postSvc.DeletePost(c.Request.Context(), postID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Soft(c, result)
}

// ChangePostStatus new_status 可来自查询参数或 JSON 请求体
func (s *PostHandler) ChangePostStatus(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	newStatus := c.Query("new_status")
	if newStatus == "" && c.Request.ContentLength != 0 {
		var req dto.ChangeStatusDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindError(c, err)
			return
		}
		newStatus = req.NewStatus
	}
	if newStatus == "" {
		response.Error(c, &util.FieldError{Field: "new_status", Rule: "required"})
		return
	}

	result, err := s.postSvc.ChangePostStatus(c.Request.Context(), postID, newStatus, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Soft(c, result)
}

func postIDParam(c *gin.Context) (uint64, bool) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.BindError(c, errors.New("post_id must be a positive integer"))
		return 0, false
	}
	return postID, true
}

func callerID(c *gin.Context) *uint64 {
	if _, ok := c.Get("user_id"); !ok {
		return nil
	}
	id := c.GetUint64("user_id")
	return &id
}
