// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	dbi "github.com/qolzam/telar-blog/internal/database/interfaces"
	"github.com/qolzam/telar-blog/internal/database/postgres"
	"github.com/qolzam/telar-blog/internal/database/sqlite"
	"github.com/qolzam/telar-blog/posts/common"
	postsErrors "github.com/qolzam/telar-blog/posts/errors"
	"github.com/qolzam/telar-blog/posts/models"
)

const postColumns = `id, title, slug, description, image, views, content_units, created_at, updated_at`

type txKey struct{}

// sqlRepository implements PostRepository for PostgreSQL and SQLite
type sqlRepository struct {
	client dbi.SQLClient
}

// NewSQLRepository creates a post repository on top of a SQL client
func NewSQLRepository(client dbi.SQLClient) PostRepository {
	return &sqlRepository{client: client}
}

// getExecutor returns the transaction stored in ctx, or the pool
func (r *sqlRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok && tx != nil {
		return tx
	}
	return r.client.DB()
}

func (r *sqlRepository) rebind(query string) string {
	return r.client.DB().Rebind(query)
}

func (r *sqlRepository) isUniqueViolation(err error) bool {
	if r.client.Dialect() == dbi.DatabaseTypePostgreSQL {
		return postgres.IsUniqueViolation(err)
	}
	return sqlite.IsUniqueViolation(err)
}

// Create inserts a post and links its taxonomy in one transaction
func (r *sqlRepository) Create(ctx context.Context, post *models.Post) error {
	if post == nil {
		return fmt.Errorf("post cannot be nil")
	}

	now := time.Now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = post.CreatedAt
	}
	post.CreatedAt = post.CreatedAt.UTC()
	post.UpdatedAt = post.UpdatedAt.UTC()
	post.Categories = common.NormalizeNames(post.Categories)
	post.Labels = common.NormalizeNames(post.Labels)
	if post.ContentUnits == nil {
		post.ContentUnits = models.ContentUnits{}
	}

	return r.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := r.getExecutor(txCtx)

		query := r.rebind(`
			INSERT INTO posts (` + postColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		_, err := exec.ExecContext(txCtx, query,
			post.ID, post.Title, post.Slug, post.Description, post.Image,
			post.Views, post.ContentUnits, post.CreatedAt, post.UpdatedAt)
		if err != nil {
			if r.isUniqueViolation(err) {
				return fmt.Errorf("%w: id %q or slug %q is taken", postsErrors.ErrPostAlreadyExists, post.ID, post.Slug)
			}
			return fmt.Errorf("failed to insert post: %w", err)
		}

		if err := r.linkNames(txCtx, exec, "categories", "post_categories", post.ID, post.Categories); err != nil {
			return err
		}
		return r.linkNames(txCtx, exec, "labels", "post_labels", post.ID, post.Labels)
	})
}

// linkNames upserts names into table and links them to postID through joinTable
func (r *sqlRepository) linkNames(ctx context.Context, exec sqlx.ExtContext, table, joinTable, postID string, names []string) error {
	upsert := r.rebind(fmt.Sprintf(`INSERT INTO %s (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, table))
	link := r.rebind(fmt.Sprintf(`INSERT INTO %s (post_id, name) VALUES (?, ?)`, joinTable))

	for _, name := range names {
		if _, err := exec.ExecContext(ctx, upsert, name); err != nil {
			return fmt.Errorf("failed to upsert %s %q: %w", table, name, err)
		}
		if _, err := exec.ExecContext(ctx, link, postID, name); err != nil {
			return fmt.Errorf("failed to link %s %q: %w", table, name, err)
		}
	}
	return nil
}

// FindByID retrieves a post by its document id
func (r *sqlRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	return r.findOne(ctx, "id", id)
}

// FindBySlug retrieves a post by its URL key
func (r *sqlRepository) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return r.findOne(ctx, "slug", slug)
}

func (r *sqlRepository) findOne(ctx context.Context, column, value string) (*models.Post, error) {
	query := r.rebind(`SELECT ` + postColumns + ` FROM posts WHERE ` + column + ` = ?`)

	var post models.Post
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &post, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s=%s", postsErrors.ErrPostNotFound, column, value)
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	if err := r.loadTaxonomy(ctx, []*models.Post{&post}); err != nil {
		return nil, err
	}
	return &post, nil
}

// Find lists posts matching the filter
func (r *sqlRepository) Find(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	query, args := r.buildFindQuery(filter)

	var rows []models.Post
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}

	posts := make([]*models.Post, len(rows))
	for i := range rows {
		posts[i] = &rows[i]
	}
	if err := r.loadTaxonomy(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// buildFindQuery constructs the listing query for filter
func (r *sqlRepository) buildFindQuery(filter models.PostFilter) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)

	if filter.Category != "" {
		where = append(where, "id IN (SELECT post_id FROM post_categories WHERE name = ?)")
		args = append(args, filter.Category)
	}
	if filter.Label != "" {
		where = append(where, "id IN (SELECT post_id FROM post_labels WHERE name = ?)")
		args = append(args, filter.Label)
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	switch filter.Sort {
	case models.SortTrending:
		query += " ORDER BY views DESC, created_at DESC, id DESC"
	default:
		query += " ORDER BY created_at DESC, id DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = models.DefaultListLimit
	}
	query += " LIMIT ?"
	args = append(args, limit)

	return r.rebind(query), args
}

type nameRow struct {
	PostID string `db:"post_id"`
	Name   string `db:"name"`
}

// loadTaxonomy fills Categories and Labels for posts with one query per join table
func (r *sqlRepository) loadTaxonomy(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, len(posts))
	byID := make(map[string]*models.Post, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		byID[p.ID] = p
		p.Categories = []string{}
		p.Labels = []string{}
	}

	categories, err := r.selectNames(ctx, "post_categories", ids)
	if err != nil {
		return err
	}
	for _, row := range categories {
		if p := byID[row.PostID]; p != nil {
			p.Categories = append(p.Categories, row.Name)
		}
	}

	labels, err := r.selectNames(ctx, "post_labels", ids)
	if err != nil {
		return err
	}
	for _, row := range labels {
		if p := byID[row.PostID]; p != nil {
			p.Labels = append(p.Labels, row.Name)
		}
	}
	return nil
}

func (r *sqlRepository) selectNames(ctx context.Context, joinTable string, ids []string) ([]nameRow, error) {
	query, args, err := sqlx.In(fmt.Sprintf(`SELECT post_id, name FROM %s WHERE post_id IN (?) ORDER BY name`, joinTable), ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", joinTable, err)
	}

	var rows []nameRow
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &rows, r.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", joinTable, err)
	}
	return rows, nil
}

// ListCategories returns every category name
func (r *sqlRepository) ListCategories(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, "categories")
}

// ListLabels returns every label name
func (r *sqlRepository) ListLabels(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, "labels")
}

func (r *sqlRepository) listNames(ctx context.Context, table string) ([]string, error) {
	names := []string{}
	query := fmt.Sprintf(`SELECT name FROM %s ORDER BY name`, table)
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &names, query); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	return names, nil
}

// WithTransaction executes fn within a database transaction.
// Nested calls reuse the outer transaction.
func (r *sqlRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.client.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
