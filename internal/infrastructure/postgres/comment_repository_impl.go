package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkpress/internal/domain/entity"
	"inkpress/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentColumns = `c.id, c.post_id, c.author_id, c.body,
	c.created_at, c.updated_at, c.deleted_at, u.email`

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.PostID, c.AuthorID, c.Body).Scan(&id)
	return id, err
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*repository.CommentWithAuthor, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1 AND c.deleted_at IS NULL
	`, commentColumns), id)

	result, err := scanCommentWithAuthor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

func scanCommentWithAuthor(row pgx.Row) (*repository.CommentWithAuthor, error) {
	var (
		c           entity.Comment
		deletedAt   *time.Time
		authorEmail string
	)
	if err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body,
		&c.CreatedAt, &c.UpdatedAt, &deletedAt, &authorEmail); err != nil {
		return nil, err
	}
	c.DeletedAt = deletedAt
	return &repository.CommentWithAuthor{Comment: &c, AuthorEmail: authorEmail}, nil
}

func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE comments SET body = $1, updated_at = now()
		WHERE id = $2 AND deleted_at IS NULL
	`, c.Body, c.ID)
	return err
}

// Delete soft-deletes; deleting an already-deleted comment is a no-op.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE comments SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return err
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int64, filters repository.CommentListFilters, options repository.CommentListOptions) (*repository.CommentListResult, error) {
	page, limit := repository.NormalizePage(options.Page, options.Limit)
	sort, order := repository.NormalizeSort(options.Sort, options.Order, "created_at", "updated_at")

	where := []string{"c.deleted_at IS NULL", "c.post_id = $1"}
	args := []any{postID}

	if filters.AuthorID != nil {
		args = append(args, *filters.AuthorID)
		where = append(where, fmt.Sprintf("c.author_id = $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM comments c WHERE %s`, whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, err
	}

	args = append(args, limit, (page-1)*limit)
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE %s
		ORDER BY c.%s %s
		LIMIT $%d OFFSET $%d
	`, commentColumns, whereClause, sort, strings.ToUpper(order), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]repository.CommentWithAuthor, 0, limit)
	for rows.Next() {
		cw, err := scanCommentWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *cw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.CommentListResult{
		Comments:   comments,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: repository.TotalPages(total, limit),
	}, nil
}

func (r *CommentRepository) FindAuthorIDByCommentID(ctx context.Context, commentID int64) (int64, error) {
	return r.findID(ctx, `SELECT author_id FROM comments WHERE id = $1 AND deleted_at IS NULL`, commentID)
}

func (r *CommentRepository) FindPostIDByCommentID(ctx context.Context, commentID int64) (int64, error) {
	return r.findID(ctx, `SELECT post_id FROM comments WHERE id = $1 AND deleted_at IS NULL`, commentID)
}

func (r *CommentRepository) findID(ctx context.Context, query string, arg int64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, query, arg).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
