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
	"inkpress/internal/domain/valueobject"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postColumns = `p.id, p.author_id, p.title, p.slug, p.markdown, p.published,
	p.created_at, p.updated_at, p.deleted_at, u.email`

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (author_id, title, slug, markdown, published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.AuthorID, p.Title, p.Slug.String(), p.Markdown.String(), p.Published)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*repository.PostWithAuthor, error) {
	return r.findOne(ctx, fmt.Sprintf(`
		SELECT %s
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1 AND p.deleted_at IS NULL
	`, postColumns), id)
}

func (r *PostRepository) FindBySlug(ctx context.Context, slug valueobject.Slug) (*repository.PostWithAuthor, error) {
	return r.findOne(ctx, fmt.Sprintf(`
		SELECT %s
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.slug = $1 AND p.deleted_at IS NULL
	`, postColumns), slug.String())
}

func (r *PostRepository) findOne(ctx context.Context, query string, arg any) (*repository.PostWithAuthor, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	result, err := scanPostWithAuthor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

func scanPostWithAuthor(row pgx.Row) (*repository.PostWithAuthor, error) {
	var (
		p           entity.Post
		slugStr     string
		markdownStr string
		deletedAt   *time.Time
		authorEmail string
	)
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &slugStr, &markdownStr, &p.Published,
		&p.CreatedAt, &p.UpdatedAt, &deletedAt, &authorEmail); err != nil {
		return nil, err
	}

	slug, err := valueobject.NewSlug(slugStr)
	if err != nil {
		return nil, err
	}
	markdown, err := valueobject.NewMarkdown(markdownStr)
	if err != nil {
		return nil, err
	}
	p.Slug = slug
	p.Markdown = markdown
	p.DeletedAt = deletedAt
	return &repository.PostWithAuthor{Post: &p, AuthorEmail: authorEmail}, nil
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title = $1, slug = $2, markdown = $3, published = $4, updated_at = now()
		WHERE id = $5 AND deleted_at IS NULL
	`, p.Title, p.Slug.String(), p.Markdown.String(), p.Published, p.ID)
	return err
}

// Delete soft-deletes; a row already gone (the benign check-then-delete
// race) is a no-op, not an error.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE posts SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return err
}

func (r *PostRepository) List(ctx context.Context, filters repository.PostListFilters, options repository.PostListOptions) (*repository.PostListResult, error) {
	page, limit := repository.NormalizePage(options.Page, options.Limit)
	sort, order := repository.NormalizeSort(options.Sort, options.Order, "created_at", "updated_at", "title")

	where := []string{"p.deleted_at IS NULL"}
	args := []any{}

	if filters.AuthorID != nil {
		args = append(args, *filters.AuthorID)
		where = append(where, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if filters.Published != nil {
		args = append(args, *filters.Published)
		where = append(where, fmt.Sprintf("p.published = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(p.title ILIKE $%d OR p.markdown ILIKE $%d)", n, n))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM posts p WHERE %s`, whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, err
	}

	args = append(args, limit, (page-1)*limit)
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE %s
		ORDER BY p.%s %s
		LIMIT $%d OFFSET $%d
	`, postColumns, whereClause, sort, strings.ToUpper(order), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]repository.PostWithAuthor, 0, limit)
	for rows.Next() {
		pw, err := scanPostWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *pw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PostListResult{
		Posts:      posts,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: repository.TotalPages(total, limit),
	}, nil
}

func (r *PostRepository) FindAuthorIDByPostID(ctx context.Context, postID int64) (int64, error) {
	var authorID int64
	err := r.pool.QueryRow(ctx, `
		SELECT author_id FROM posts WHERE id = $1 AND deleted_at IS NULL
	`, postID).Scan(&authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return authorID, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
