package repository

import (
	"Inkwell/internal/model"
	"fmt"
	"sort"
	"strings"
)

// Fields is a sparse column -> value mapping. Only columns present take part in a
// query or write.
type Fields map[string]any

// Filter selects rows for find, update and delete, and names the columns of a write.
type Filter interface {
	Fields() Fields
}

// Values describes a row to insert.
type Values[T any] interface {
	Filter
	New() *T
}

func (f Fields) set(column string, v any) {
	f[column] = v
}

// String renders the mapping with sorted keys for logs, masking passwords.
func (f Fields) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		if k == "password" {
			b.WriteString("***")
			continue
		}
		b.WriteString(fmt.Sprint(f[k]))
	}
	b.WriteByte('}')
	return b.String()
}

// UserFilter 用户查询/更新条件
type UserFilter struct {
	ID       *uint64
	Name     *string
	Password *string
	RoleID   *uint64
}

func (f UserFilter) Fields() Fields {
	fs := Fields{}
	if f.ID != nil {
		fs.set("id", *f.ID)
	}
	if f.Name != nil {
		fs.set("name", *f.Name)
	}
	if f.Password != nil {
		fs.set("password", *f.Password)
	}
	if f.RoleID != nil {
		fs.set("role_id", *f.RoleID)
	}
	return fs
}

// UserValues 新建用户
type UserValues struct {
	Name     string
	Password string
	RoleID   uint64
}

func (v UserValues) Fields() Fields {
	fs := Fields{"name": v.Name, "password": v.Password}
	if v.RoleID != 0 {
		fs.set("role_id", v.RoleID)
	}
	return fs
}

func (v UserValues) New() *model.User {
	roleID := v.RoleID
	if roleID == 0 {
		roleID = model.DefaultRoleID
	}
	return &model.User{Name: v.Name, Password: v.Password, RoleID: roleID}
}

type RoleFilter struct {
	ID   *uint64
	Name *string
}

func (f RoleFilter) Fields() Fields {
	fs := Fields{}
	if f.ID != nil {
		fs.set("id", *f.ID)
	}
	if f.Name != nil {
		fs.set("name", *f.Name)
	}
	return fs
}

type RoleValues struct {
	ID   uint64
	Name string
}

func (v RoleValues) Fields() Fields {
	fs := Fields{"name": v.Name}
	if v.ID != 0 {
		fs.set("id", v.ID)
	}
	return fs
}

func (v RoleValues) New() *model.Role {
	return &model.Role{ID: v.ID, Name: v.Name}
}

// PostFilter 帖子查询/更新条件
type PostFilter struct {
	ID          *uint64
	Title       *string
	Description *string
	Content     *string
	Status      *string
	Author      *uint64
}

func (f PostFilter) Fields() Fields {
	fs := Fields{}
	if f.ID != nil {
		fs.set("id", *f.ID)
	}
	if f.Title != nil {
		fs.set("title", *f.Title)
	}
	if f.Description != nil {
		fs.set("description", *f.Description)
	}
	if f.Content != nil {
		fs.set("content", *f.Content)
	}
	if f.Status != nil {
		fs.set("status", *f.Status)
	}
	if f.Author != nil {
		fs.set("author", *f.Author)
	}
	return fs
}

// PostValues 新建帖子, empty Status means published
type PostValues struct {
	Title       string
	Description string
	Content     string
	Status      string
	Author      uint64
}

func (v PostValues) Fields() Fields {
	return Fields{
		"title":       v.Title,
		"description": v.Description,
		"content":     v.Content,
		"status":      v.status(),
		"author":      v.Author,
	}
}

func (v PostValues) New() *model.Post {
	return &model.Post{
		Title:       v.Title,
		Description: v.Description,
		Content:     v.Content,
		Status:      v.status(),
		Author:      v.Author,
	}
}

func (v PostValues) status() string {
	if v.Status == "" {
		return model.PostStatusPublished
	}
	return v.Status
}

type TagFilter struct {
	ID   *uint64
	Name *string
}

func (f TagFilter) Fields() Fields {
	fs := Fields{}
	if f.ID != nil {
		fs.set("id", *f.ID)
	}
	if f.Name != nil {
		fs.set("name", *f.Name)
	}
	return fs
}

type TagValues struct {
	Name string
}

func (v TagValues) Fields() Fields {
	return Fields{"name": v.Name}
}

func (v TagValues) New() *model.Tag {
	return &model.Tag{Name: v.Name}
}

type PostTagFilter struct {
	ID     *uint64
	PostID *uint64
	TagID  *uint64
}

func (f PostTagFilter) Fields() Fields {
	fs := Fields{}
	if f.ID != nil {
		fs.set("id", *f.ID)
	}
	if f.PostID != nil {
		fs.set("post_id", *f.PostID)
	}
	if f.TagID != nil {
		fs.set("tag_id", *f.TagID)
	}
	return fs
}

type PostTagValues struct {
	PostID uint64
	TagID  uint64
}

func (v PostTagValues) Fields() Fields {
	return Fields{"post_id": v.PostID, "tag_id": v.TagID}
}

func (v PostTagValues) New() *model.PostTag {
	return &model.PostTag{PostID: v.PostID, TagID: v.TagID}
}

// Ptr 取地址, for building filters inline
func Ptr[T any](v T) *T {
	return &v
}
