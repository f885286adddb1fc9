package application

import (
	"context"
	"sort"
	"strings"
	"time"

	"inkpress/internal/domain/entity"
	"inkpress/internal/domain/repository"
	"inkpress/internal/domain/valueobject"
)

// In-memory repository fakes with the same absence and soft-delete semantics
// as the Postgres implementations: lookups return (nil, nil) or (0, nil) for
// missing rows, deletes are soft and idempotent.

type fakeClock struct {
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock { return &fakeClock{now: now} }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
func (c *fakeClock) Set(instant time.Time)   { c.now = instant }

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (fakeHasher) Compare(hash, plain string) bool   { return hash == "hashed:"+plain }

type fakeTokens struct {
	exp time.Time
}

func (f fakeTokens) Sign(userID int64, email, role string) (string, time.Time, error) {
	return "token-" + email, f.exp, nil
}

type fakeEmails struct {
	published []any
}

func (f *fakeEmails) PublishJSON(_ context.Context, body any) error {
	f.published = append(f.published, body)
	return nil
}

// --- users ---

type memUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*entity.User{}, nextID: 1}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	cp.ID = r.nextID
	r.nextID++
	r.users[cp.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email valueobject.Email) (*entity.User, error) {
	for _, u := range r.users {
		if u.DeletedAt == nil && u.Email.Equals(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	if cur, ok := r.users[u.ID]; ok && cur.DeletedAt == nil {
		cp := *u
		cp.UpdatedAt = time.Now()
		r.users[u.ID] = &cp
	}
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if u, ok := r.users[id]; ok && u.DeletedAt == nil {
		now := time.Now()
		u.DeletedAt = &now
	}
	return nil
}

// --- posts ---

type memPostRepo struct {
	posts  map[int64]*entity.Post
	emails map[int64]string // author id -> email, for the join projection
	nextID int64
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[int64]*entity.Post{}, emails: map[int64]string{}, nextID: 1}
}

func (r *memPostRepo) withAuthor(p *entity.Post) *repository.PostWithAuthor {
	cp := *p
	return &repository.PostWithAuthor{Post: &cp, AuthorEmail: r.emails[p.AuthorID]}
}

func (r *memPostRepo) Create(_ context.Context, p *entity.Post) error {
	cp := *p
	cp.ID = r.nextID
	r.nextID++
	r.posts[cp.ID] = &cp
	p.ID = cp.ID
	return nil
}

func (r *memPostRepo) FindByID(_ context.Context, id int64) (*repository.PostWithAuthor, error) {
	p, ok := r.posts[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	return r.withAuthor(p), nil
}

func (r *memPostRepo) FindBySlug(_ context.Context, slug valueobject.Slug) (*repository.PostWithAuthor, error) {
	for _, p := range r.posts {
		if p.DeletedAt == nil && p.Slug.Equals(slug) {
			return r.withAuthor(p), nil
		}
	}
	return nil, nil
}

func (r *memPostRepo) Update(_ context.Context, p *entity.Post) error {
	if cur, ok := r.posts[p.ID]; ok && cur.DeletedAt == nil {
		cp := *p
		cp.UpdatedAt = time.Now()
		r.posts[p.ID] = &cp
	}
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id int64) error {
	if p, ok := r.posts[id]; ok && p.DeletedAt == nil {
		now := time.Now()
		p.DeletedAt = &now
	}
	return nil
}

func (r *memPostRepo) List(_ context.Context, filters repository.PostListFilters, options repository.PostListOptions) (*repository.PostListResult, error) {
	page, limit := repository.NormalizePage(options.Page, options.Limit)
	sortCol, order := repository.NormalizeSort(options.Sort, options.Order, "created_at", "updated_at", "title")

	matched := make([]*entity.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if p.DeletedAt != nil {
			continue
		}
		if filters.AuthorID != nil && p.AuthorID != *filters.AuthorID {
			continue
		}
		if filters.Published != nil && p.Published != *filters.Published {
			continue
		}
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(p.Title), needle) &&
				!strings.Contains(strings.ToLower(p.Markdown.String()), needle) {
				continue
			}
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less bool
		switch sortCol {
		case "title":
			less = a.Title < b.Title
		case "updated_at":
			less = a.UpdatedAt.Before(b.UpdatedAt)
		default:
			if a.CreatedAt.Equal(b.CreatedAt) {
				less = a.ID < b.ID
			} else {
				less = a.CreatedAt.Before(b.CreatedAt)
			}
		}
		if order == "desc" {
			return !less
		}
		return less
	})

	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := make([]repository.PostWithAuthor, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, *r.withAuthor(p))
	}
	return &repository.PostListResult{
		Posts:      out,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: repository.TotalPages(total, limit),
	}, nil
}

func (r *memPostRepo) FindAuthorIDByPostID(_ context.Context, postID int64) (int64, error) {
	p, ok := r.posts[postID]
	if !ok || p.DeletedAt != nil {
		return 0, nil
	}
	return p.AuthorID, nil
}

// --- comments ---

type memCommentRepo struct {
	comments map[int64]*entity.Comment
	emails   map[int64]string
	nextID   int64
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{comments: map[int64]*entity.Comment{}, emails: map[int64]string{}, nextID: 1}
}

func (r *memCommentRepo) withAuthor(c *entity.Comment) *repository.CommentWithAuthor {
	cp := *c
	return &repository.CommentWithAuthor{Comment: &cp, AuthorEmail: r.emails[c.AuthorID]}
}

func (r *memCommentRepo) Create(_ context.Context, c *entity.Comment) (int64, error) {
	cp := *c
	cp.ID = r.nextID
	r.nextID++
	r.comments[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memCommentRepo) FindByID(_ context.Context, id int64) (*repository.CommentWithAuthor, error) {
	c, ok := r.comments[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	return r.withAuthor(c), nil
}

func (r *memCommentRepo) Update(_ context.Context, c *entity.Comment) error {
	if cur, ok := r.comments[c.ID]; ok && cur.DeletedAt == nil {
		cp := *c
		cp.UpdatedAt = time.Now()
		r.comments[c.ID] = &cp
	}
	return nil
}

func (r *memCommentRepo) Delete(_ context.Context, id int64) error {
	if c, ok := r.comments[id]; ok && c.DeletedAt == nil {
		now := time.Now()
		c.DeletedAt = &now
	}
	return nil
}

func (r *memCommentRepo) ListByPost(_ context.Context, postID int64, filters repository.CommentListFilters, options repository.CommentListOptions) (*repository.CommentListResult, error) {
	page, limit := repository.NormalizePage(options.Page, options.Limit)
	sortCol, order := repository.NormalizeSort(options.Sort, options.Order, "created_at", "updated_at")

	matched := make([]*entity.Comment, 0)
	for _, c := range r.comments {
		if c.DeletedAt != nil || c.PostID != postID {
			continue
		}
		if filters.AuthorID != nil && c.AuthorID != *filters.AuthorID {
			continue
		}
		matched = append(matched, c)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less bool
		switch sortCol {
		case "updated_at":
			less = a.UpdatedAt.Before(b.UpdatedAt)
		default:
			if a.CreatedAt.Equal(b.CreatedAt) {
				less = a.ID < b.ID
			} else {
				less = a.CreatedAt.Before(b.CreatedAt)
			}
		}
		if order == "desc" {
			return !less
		}
		return less
	})

	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := make([]repository.CommentWithAuthor, 0, end-start)
	for _, c := range matched[start:end] {
		out = append(out, *r.withAuthor(c))
	}
	return &repository.CommentListResult{
		Comments:   out,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: repository.TotalPages(total, limit),
	}, nil
}

func (r *memCommentRepo) FindAuthorIDByCommentID(_ context.Context, commentID int64) (int64, error) {
	c, ok := r.comments[commentID]
	if !ok || c.DeletedAt != nil {
		return 0, nil
	}
	return c.AuthorID, nil
}

func (r *memCommentRepo) FindPostIDByCommentID(_ context.Context, commentID int64) (int64, error) {
	c, ok := r.comments[commentID]
	if !ok || c.DeletedAt != nil {
		return 0, nil
	}
	return c.PostID, nil
}

var (
	_ repository.UserRepository    = (*memUserRepo)(nil)
	_ repository.PostRepository    = (*memPostRepo)(nil)
	_ repository.CommentRepository = (*memCommentRepo)(nil)
)
