package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"inkpress/internal/domain/apperr"
	"inkpress/internal/domain/entity"
	"inkpress/internal/domain/repository"
	"inkpress/internal/domain/valueobject"
)

// PostService holds the post use cases. Elasticsearch is an optional
// best-effort search index; persistence always goes through the repository.
type PostService struct {
	Posts  repository.PostRepository
	Logger *logrus.Logger

	ES           *elasticsearch.Client
	ESPostsIndex string
}

func NewPostService(posts repository.PostRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Logger: logger}
}

type CreatePostInput struct {
	Title     string
	Slug      string
	Markdown  string
	Published bool
}

// UpdatePostInput is a partial update; nil fields keep their current value.
type UpdatePostInput struct {
	Title     *string
	Slug      *string
	Markdown  *string
	Published *bool
}

type ListPostsInput struct {
	Page      int
	Limit     int
	AuthorID  *int64
	Published *bool
	Search    string
	Sort      string
	Order     string
}

// Create rejects duplicate slugs before inserting, then reads the post back
// by slug so the response carries the storage-assigned id and timestamps.
func (s *PostService) Create(ctx context.Context, authorID int64, in CreatePostInput) (*PostView, error) {
	slug, err := valueobject.NewSlug(in.Slug)
	if err != nil {
		return nil, err
	}

	existing, err := s.Posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Slug already exists")
	}

	markdown, err := valueobject.NewMarkdown(in.Markdown)
	if err != nil {
		return nil, err
	}

	post := entity.NewPost(0, authorID, in.Title, slug, markdown, in.Published)
	if err := s.Posts.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.Posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, apperr.Integrity("failed to retrieve created post")
	}

	s.indexPost(ctx, created.Post)
	return newPostView(created), nil
}

// Update applies a partial update. A slug "change" back to the post's own
// current slug never triggers the conflict check.
func (s *PostService) Update(ctx context.Context, postID int64, in UpdatePostInput) (*PostView, error) {
	existing, err := s.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Post not found")
	}
	cur := existing.Post

	title := cur.Title
	if in.Title != nil {
		title = *in.Title
	}

	slug := cur.Slug
	if in.Slug != nil {
		slug, err = valueobject.NewSlug(*in.Slug)
		if err != nil {
			return nil, err
		}
	}

	markdown := cur.Markdown
	if in.Markdown != nil {
		markdown, err = valueobject.NewMarkdown(*in.Markdown)
		if err != nil {
			return nil, err
		}
	}

	published := cur.Published
	if in.Published != nil {
		published = *in.Published
	}

	if in.Slug != nil && !slug.Equals(cur.Slug) {
		conflicting, err := s.Posts.FindBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if conflicting != nil && conflicting.Post.ID != postID {
			return nil, apperr.Conflict("Slug already exists")
		}
	}

	updated := entity.NewPost(cur.ID, cur.AuthorID, title, slug, markdown, published)
	updated.CreatedAt = cur.CreatedAt
	if err := s.Posts.Update(ctx, updated); err != nil {
		return nil, err
	}

	refetched, err := s.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if refetched == nil {
		return nil, apperr.Integrity("failed to retrieve updated post")
	}

	s.indexPost(ctx, refetched.Post)
	return newPostView(refetched), nil
}

// Delete verifies existence first, then deletes. A post vanishing between
// the two steps is treated as already deleted, not as a failure.
func (s *PostService) Delete(ctx context.Context, postID int64) error {
	existing, err := s.Posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NotFound("Post not found")
	}
	if err := s.Posts.Delete(ctx, postID); err != nil {
		return err
	}
	s.removeFromIndex(ctx, postID)
	return nil
}

// TogglePublish flips the publish flag through the entity's state-machine
// methods and re-reads the persisted result.
func (s *PostService) TogglePublish(ctx context.Context, postID int64) (*PostView, error) {
	existing, err := s.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Post not found")
	}

	post := existing.Post
	if post.Published {
		post.Unpublish()
	} else {
		post.Publish()
	}

	if err := s.Posts.Update(ctx, post); err != nil {
		return nil, err
	}

	refetched, err := s.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if refetched == nil {
		return nil, apperr.Integrity("failed to retrieve updated post")
	}

	s.indexPost(ctx, refetched.Post)
	return newPostView(refetched), nil
}

// CheckSlug reports whether a slug is free. Pure read, no authentication.
func (s *PostService) CheckSlug(ctx context.Context, slugStr string) (bool, error) {
	slug, err := valueobject.NewSlug(slugStr)
	if err != nil {
		return false, err
	}
	existing, err := s.Posts.FindBySlug(ctx, slug)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

func (s *PostService) GetBySlug(ctx context.Context, slugStr string) (*PostView, error) {
	slug, err := valueobject.NewSlug(slugStr)
	if err != nil {
		return nil, err
	}
	result, err := s.Posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, apperr.NotFound("Post not found")
	}
	return newPostView(result), nil
}

func (s *PostService) List(ctx context.Context, in ListPostsInput) (*PostListView, error) {
	filters := repository.PostListFilters{
		AuthorID:  in.AuthorID,
		Published: in.Published,
		Search:    in.Search,
	}
	options := repository.PostListOptions{
		Page:  in.Page,
		Limit: in.Limit,
		Sort:  in.Sort,
		Order: in.Order,
	}

	result, err := s.Posts.List(ctx, filters, options)
	if err != nil {
		return nil, err
	}

	posts := make([]PostView, 0, len(result.Posts))
	for i := range result.Posts {
		posts = append(posts, *newPostView(&result.Posts[i]))
	}
	return &PostListView{
		Posts: posts,
		Pagination: PageMeta{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	}, nil
}

// Search queries the Elasticsearch index over title and markdown of
// published posts. Returns raw source documents.
func (s *PostService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "markdown"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"published": true},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESPostsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *PostService) indexPost(ctx context.Context, p *entity.Post) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         p.ID,
		"author_id":  p.AuthorID,
		"title":      p.Title,
		"slug":       p.Slug.String(),
		"markdown":   p.Markdown.String(),
		"published":  p.Published,
		"created_at": p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESPostsIndex,
		DocumentID: formatID(p.ID),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("post_id", p.ID).Warn("es index response error")
	}
}

func (s *PostService) removeFromIndex(ctx context.Context, postID int64) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESPostsIndex, DocumentID: formatID(postID)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", postID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
