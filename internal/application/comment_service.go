package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"inkpress/internal/domain/apperr"
	"inkpress/internal/domain/entity"
	"inkpress/internal/domain/repository"
)

// CommentService holds the comment use cases. The edit-window rule depends
// on wall-clock time, so the clock is injected.
type CommentService struct {
	Comments repository.CommentRepository
	Posts    repository.PostRepository
	Clock    Clock
	Logger   *logrus.Logger
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, clock Clock, logger *logrus.Logger) *CommentService {
	return &CommentService{Comments: comments, Posts: posts, Clock: clock, Logger: logger}
}

type ListCommentsInput struct {
	Page     int
	Limit    int
	AuthorID *int64
	Sort     string
	Order    string
}

// Create rejects comments on missing or unpublished posts. The unpublished
// rule applies to every caller, the post's own author included.
func (s *CommentService) Create(ctx context.Context, postID, authorID int64, body string) (*CommentView, error) {
	postResult, err := s.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if postResult == nil {
		return nil, apperr.NotFound("Post not found")
	}
	if !postResult.Post.Published {
		return nil, apperr.Policy("Cannot comment on unpublished posts")
	}

	comment, err := entity.NewComment(0, postID, authorID, body)
	if err != nil {
		return nil, err
	}

	createdID, err := s.Comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	created, err := s.Comments.FindByID(ctx, createdID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, apperr.Integrity("failed to retrieve created comment")
	}
	return newCommentView(created, s.Clock.Now()), nil
}

// Update re-evaluates the edit window at the instant of the request; an
// omitted body keeps the existing one.
func (s *CommentService) Update(ctx context.Context, commentID int64, body *string) (*CommentView, error) {
	existing, err := s.Comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Comment not found")
	}
	cur := existing.Comment

	if !cur.CanEdit(s.Clock.Now()) {
		return nil, apperr.Newf(apperr.KindPolicy,
			"Comments can only be edited within %d minutes of creation", entity.EditWindowMinutes)
	}

	newBody := cur.Body
	if body != nil {
		newBody = *body
	}

	updated, err := entity.NewComment(cur.ID, cur.PostID, cur.AuthorID, newBody)
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = cur.CreatedAt

	if err := s.Comments.Update(ctx, updated); err != nil {
		return nil, err
	}

	refetched, err := s.Comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if refetched == nil {
		return nil, apperr.Integrity("failed to retrieve updated comment")
	}
	return newCommentView(refetched, s.Clock.Now()), nil
}

// Delete verifies existence first; a comment vanishing between check and
// delete counts as already deleted.
func (s *CommentService) Delete(ctx context.Context, commentID int64) error {
	existing, err := s.Comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NotFound("Comment not found")
	}
	return s.Comments.Delete(ctx, commentID)
}

func (s *CommentService) ListByPost(ctx context.Context, postID int64, in ListCommentsInput) (*CommentListView, error) {
	filters := repository.CommentListFilters{AuthorID: in.AuthorID}
	options := repository.CommentListOptions{
		Page:  in.Page,
		Limit: in.Limit,
		Sort:  in.Sort,
		Order: in.Order,
	}

	result, err := s.Comments.ListByPost(ctx, postID, filters, options)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	comments := make([]CommentView, 0, len(result.Comments))
	for i := range result.Comments {
		comments = append(comments, *newCommentView(&result.Comments[i], now))
	}
	return &CommentListView{
		Comments: comments,
		Pagination: PageMeta{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	}, nil
}
