package repository

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type postFixture struct {
	posts    PostRepo
	tags     TagRepo
	postTags PostTagRepo
	author   *model.User
	other    *model.User
}

func newPostFixture(t *testing.T, db *gorm.DB) *postFixture {
	t.Helper()
	users := NewUserRepo(db)
	return &postFixture{
		posts:    NewPostRepository(db),
		tags:     NewTagRepository(db),
		postTags: NewPostTagRepo(db),
		author:   addUser(t, users, "alice"),
		other:    addUser(t, users, "bob"),
	}
}

func (f *postFixture) addPost(t *testing.T, title, status string, author uint64, tagNames ...string) *model.Post {
	t.Helper()
	ctx := context.Background()
	post, err := f.posts.Add(ctx, PostValues{
		Title:       title,
		Description: title + " description",
		Content:     title + " content",
		Status:      status,
		Author:      author,
	})
	require.NoError(t, err)

	for _, name := range tagNames {
		tag, err := f.tags.FindOne(ctx, TagFilter{Name: Ptr(name)})
		require.NoError(t, err)
		if tag == nil {
			tag, err = f.tags.Add(ctx, TagValues{Name: name})
			require.NoError(t, err)
		}
		_, err = f.postTags.Add(ctx, PostTagValues{PostID: post.ID, TagID: tag.ID})
		require.NoError(t, err)
	}
	return post
}

func TestPostValuesDefaultStatus(t *testing.T) {
	db := newTestDB(t)
	f := newPostFixture(t, db)

	post := f.addPost(t, "hello", "", f.author.ID)
	assert.Equal(t, model.PostStatusPublished, post.Status)
}

func TestPostRepoPublishedOnly(t *testing.T) {
	db := newTestDB(t)
	f := newPostFixture(t, db)
	ctx := context.Background()

	f.addPost(t, "one", model.PostStatusPublished, f.author.ID)
	f.addPost(t, "two", model.PostStatusDraft, f.author.ID)
	f.addPost(t, "three", model.PostStatusPublished, f.other.ID)

	count, err := f.posts.CountPublished(ctx, PostQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = f.posts.CountPublished(ctx, PostQuery{AuthorID: &f.author.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	posts, err := f.posts.ListPublished(ctx, PostQuery{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "one", posts[0].Title)
	assert.Equal(t, "three", posts[1].Title)
	for _, p := range posts {
		assert.Equal(t, model.PostStatusPublished, p.Status)
	}
}

func TestPostRepoTagFilter(t *testing.T) {
	db := newTestDB(t)
	f := newPostFixture(t, db)
	ctx := context.Background()

	f.addPost(t, "both", model.PostStatusPublished, f.author.ID, "rust", "rusty")
	f.addPost(t, "go only", model.PostStatusPublished, f.author.ID, "go")
	f.addPost(t, "hidden", model.PostStatusDraft, f.author.ID, "rust")

	count, err := f.posts.CountPublished(ctx, PostQuery{Tag: "RU"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	posts, err := f.posts.ListPublished(ctx, PostQuery{Tag: "ru"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "both", posts[0].Title)
	assert.Len(t, posts[0].Tags, 2)

	f.addPost(t, "greek", model.PostStatusPublished, f.author.ID, util.NormalizeTagName("ΟΔΟΣ"))
	count, err = f.posts.CountPublished(ctx, PostQuery{Tag: "ΟΔΟΣ"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = f.posts.CountPublished(ctx, PostQuery{Tag: "python"})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPostRepoTagFilterEscapesWildcards(t *testing.T) {
	db := newTestDB(t)
	f := newPostFixture(t, db)
	ctx := context.Background()

	f.addPost(t, "percent", model.PostStatusPublished, f.author.ID, "100%")
	f.addPost(t, "plain", model.PostStatusPublished, f.author.ID, "1000")
	f.addPost(t, "under", model.PostStatusPublished, f.author.ID, "a_b")
	f.addPost(t, "bang", model.PostStatusPublished, f.author.ID, "axb")

	posts, err := f.posts.ListPublished(ctx, PostQuery{Tag: "0%"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "percent", posts[0].Title)

	posts, err = f.posts.ListPublished(ctx, PostQuery{Tag: "a_"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "under", posts[0].Title)
}

func TestPostRepoPagination(t *testing.T) {
	db := newTestDB(t)
	f := newPostFixture(t, db)
	ctx := context.Background()

	for _, title := range []string{"p1", "p2", "p3", "p4", "p5"} {
		f.addPost(t, title, model.PostStatusPublished, f.author.ID)
	}

	page, err := f.posts.ListPublished(ctx, PostQuery{}, 3, 3)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "p4", page[0].Title)
	assert.Equal(t, "p5", page[1].Title)
}

func TestPostRepoGetFull(t *testing.T) {
	db := newTestDB(t)
	f := newPostFixture(t, db)
	ctx := context.Background()

	created := f.addPost(t, "full", model.PostStatusDraft, f.author.ID, "go")

	post, err := f.posts.GetFull(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "alice", post.User.Name)
	require.Len(t, post.Tags, 1)
	assert.Equal(t, "go", post.Tags[0].Name)

	missing, err := f.posts.GetFull(ctx, created.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTagRepoDeleteOrphans(t *testing.T) {
	db := newTestDB(t)
	f := newPostFixture(t, db)
	ctx := context.Background()

	f.addPost(t, "tagged", model.PostStatusPublished, f.author.ID, "go")
	_, err := f.tags.AddMany(ctx, []Values[model.Tag]{TagValues{Name: "stale"}, TagValues{Name: "unused"}})
	require.NoError(t, err)

	n, err := f.tags.DeleteOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := f.tags.FindAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "go", left[0].Name)
}

func TestPostTagPairIsUnique(t *testing.T) {
	db := newTestDB(t)
	f := newPostFixture(t, db)
	ctx := context.Background()

	post := f.addPost(t, "tagged", model.PostStatusPublished, f.author.ID, "go")
	tag, err := f.tags.FindOne(ctx, TagFilter{Name: Ptr("go")})
	require.NoError(t, err)

	_, err = f.postTags.Add(ctx, PostTagValues{PostID: post.ID, TagID: tag.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
