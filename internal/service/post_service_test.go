package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/repository"
	"context"
	"fmt"
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, svc PostService, author uint64, title, status string, tags ...string) uint64 {
	t.Helper()
	id, err := svc.CreatePost(context.Background(), author, &dto.PostCreateDTO{
		Title:       title,
		Description: title + " description",
		Content:     title + " content",
		Status:      status,
		Tags:        tags,
	})
	require.NoError(t, err)
	return id
}

func TestCreatePostWithTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "alice", 0)

	id := createPost(t, env.postSvc, author.ID, "Hello", "", "Go", "go", "Rust")

	post, res, err := env.postSvc.GetFullPost(ctx, id, nil)
	require.NoError(t, err)
	require.Nil(t, res)
	assert.Equal(t, model.PostStatusPublished, post.Status)
	assert.Equal(t, author.ID, post.Author)
	require.NotNil(t, post.AuthorID)
	assert.Equal(t, author.ID, *post.AuthorID)
	require.NotNil(t, post.AuthorName)
	assert.Equal(t, "alice", *post.AuthorName)

	names := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"go", "rust"}, names)
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "alice", 0)

	first := createPost(t, env.postSvc, author.ID, "Same", "")

	_, err := env.postSvc.CreatePost(ctx, author.ID, &dto.PostCreateDTO{
		Title: "Same", Description: "other", Content: "other",
	})
	assert.ErrorIs(t, err, ErrPostExist)

	post, err := env.posts.FindByID(ctx, first)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "Same content", post.Content)
}

func TestCreatePostSanitizesContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "alice", 0)
	svc := NewPostService(env.posts, env.postTags, env.tagSvc, bluemonday.UGCPolicy())

	id, err := svc.CreatePost(ctx, author.ID, &dto.PostCreateDTO{
		Title:       "xss",
		Description: "d",
		Content:     `<p>hi</p><script>alert(1)</script>`,
	})
	require.NoError(t, err)

	post, err := env.posts.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", post.Content)
}

func TestGetFullPostVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "alice", 0)
	other := env.addUser(t, "bob", 0)

	draft := createPost(t, env.postSvc, author.ID, "Draft", model.PostStatusDraft)

	post, res, err := env.postSvc.GetFullPost(ctx, draft, nil)
	require.NoError(t, err)
	assert.Nil(t, post)
	require.NotNil(t, res)
	assert.True(t, res.Failed())
	assert.Equal(t, msgPostDraftHidden, res.Message)

	_, res, err = env.postSvc.GetFullPost(ctx, draft, &other.ID)
	require.NoError(t, err)
	assert.True(t, res.Failed())

	post, res, err = env.postSvc.GetFullPost(ctx, draft, &author.ID)
	require.NoError(t, err)
	assert.Nil(t, res)
	require.NotNil(t, post)
	assert.Equal(t, model.PostStatusDraft, post.Status)
	assert.NotNil(t, post.Tags)

	_, res, err = env.postSvc.GetFullPost(ctx, 999, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Post with ID 999 not found.", res.Message)
}

func TestListPostsPaging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "alice", 0)

	for i := 1; i <= 7; i++ {
		createPost(t, env.postSvc, author.ID, fmt.Sprintf("post %d", i), "")
	}
	createPost(t, env.postSvc, author.ID, "draft", model.PostStatusDraft)

	list, err := env.postSvc.ListPosts(ctx, ListPostsQuery{Page: 3, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, list.Page)
	assert.Equal(t, 3, list.TotalPages)
	assert.Equal(t, int64(7), list.NumberOfRows)
	require.Len(t, list.Posts, 1)
	assert.Equal(t, "post 7", list.Posts[0].Title)

	list, err = env.postSvc.ListPosts(ctx, ListPostsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 1, list.TotalPages)
	assert.Len(t, list.Posts, 7)
	for _, p := range list.Posts {
		assert.Equal(t, model.PostStatusPublished, p.Status)
	}
}

func TestListPostsClampsPaging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "alice", 0)

	for i := 1; i <= 4; i++ {
		createPost(t, env.postSvc, author.ID, fmt.Sprintf("post %d", i), "")
	}

	list, err := env.postSvc.ListPosts(ctx, ListPostsQuery{Page: -2, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 2, list.TotalPages)
	assert.Len(t, list.Posts, 3)

	list, err = env.postSvc.ListPosts(ctx, ListPostsQuery{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalPages)
	assert.Len(t, list.Posts, 4)

	list, err = env.postSvc.ListPosts(ctx, ListPostsQuery{Page: 9, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 9, list.Page)
	assert.Equal(t, 2, list.TotalPages)
	assert.Empty(t, list.Posts)

	list, err = env.postSvc.ListPosts(ctx, ListPostsQuery{Page: 100000000000000001, PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 100000000000000001, list.Page)
	assert.Equal(t, 1, list.TotalPages)
	assert.Equal(t, int64(4), list.NumberOfRows)
	assert.NotNil(t, list.Posts)
	assert.Empty(t, list.Posts)
}

func TestListPostsEmpty(t *testing.T) {
	env := newTestEnv(t)

	list, err := env.postSvc.ListPosts(context.Background(), ListPostsQuery{Tag: "nothing"})
	require.NoError(t, err)
	assert.Equal(t, 0, list.TotalPages)
	assert.Zero(t, list.NumberOfRows)
	assert.NotNil(t, list.Posts)
	assert.Empty(t, list.Posts)
}

func TestListPostsFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.addUser(t, "alice", 0)
	bob := env.addUser(t, "bob", 0)

	createPost(t, env.postSvc, alice.ID, "a1", "", "Rust", "rusty")
	createPost(t, env.postSvc, alice.ID, "a2", "", "go")
	createPost(t, env.postSvc, bob.ID, "b1", "", "rust")

	list, err := env.postSvc.ListPosts(ctx, ListPostsQuery{Tag: "RUST"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.NumberOfRows)
	require.Len(t, list.Posts, 2)
	assert.Equal(t, "a1", list.Posts[0].Title)
	assert.Equal(t, "b1", list.Posts[1].Title)

	list, err = env.postSvc.ListPosts(ctx, ListPostsQuery{Tag: "rust", AuthorID: &alice.ID})
	require.NoError(t, err)
	require.Len(t, list.Posts, 1)
	assert.Equal(t, "a1", list.Posts[0].Title)

	createPost(t, env.postSvc, bob.ID, "greek", "", "ΟΔΟΣ")
	for _, tag := range []string{"ΟΔΟΣ", "ΔΟΣ"} {
		list, err = env.postSvc.ListPosts(ctx, ListPostsQuery{Tag: tag})
		require.NoError(t, err)
		require.Len(t, list.Posts, 1, tag)
		assert.Equal(t, "greek", list.Posts[0].Title)
	}
}

func TestChangePostStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "alice", 0)
	other := env.addUser(t, "bob", 0)
	id := createPost(t, env.postSvc, author.ID, "post", "")

	res, err := env.postSvc.ChangePostStatus(ctx, id, "archived", author.ID)
	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Equal(t, msgInvalidStatus, res.Message)

	res, err = env.postSvc.ChangePostStatus(ctx, id, model.PostStatusDraft, other.ID)
	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Equal(t, msgNoChangePerm, res.Message)
	post, err := env.posts.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusPublished, post.Status)

	before := post.UpdatedAt
	res, err = env.postSvc.ChangePostStatus(ctx, id, model.PostStatusPublished, author.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInfo, res.Status)
	assert.Equal(t, model.PostStatusPublished, res.CurrentStatus)
	post, err = env.posts.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, before.Equal(post.UpdatedAt))

	res, err = env.postSvc.ChangePostStatus(ctx, id, model.PostStatusDraft, author.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, model.PostStatusDraft, res.NewStatus)
	require.NotNil(t, res.PostID)
	assert.Equal(t, id, *res.PostID)
	post, err = env.posts.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusDraft, post.Status)

	res, err = env.postSvc.ChangePostStatus(ctx, id+10, model.PostStatusDraft, author.ID)
	require.NoError(t, err)
	assert.True(t, res.Failed())
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "alice", 0)
	other := env.addUser(t, "bob", 0)
	id := createPost(t, env.postSvc, author.ID, "post", "", "go")

	res, err := env.postSvc.DeletePost(ctx, id, other.ID)
	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Equal(t, msgNoDeletePerm, res.Message)

	res, err = env.postSvc.DeletePost(ctx, id, author.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, fmt.Sprintf(msgPostDeleted, id), res.Message)

	post, err := env.posts.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, post)
	links, err := env.postTags.FindAll(ctx, repository.PostTagFilter{PostID: &id})
	require.NoError(t, err)
	assert.Empty(t, links)

	res, err = env.postSvc.DeletePost(ctx, id, author.ID)
	require.NoError(t, err)
	assert.True(t, res.Failed())
}

func TestDeletePostCancelledContext(t *testing.T) {
	env := newTestEnv(t)
	author := env.addUser(t, "alice", 0)
	id := createPost(t, env.postSvc, author.ID, "post", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := env.postSvc.DeletePost(ctx, id, author.ID)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}
