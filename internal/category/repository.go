package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var ErrCategoryNotFound = errors.New("category not found")

type Repository interface {
	List(ctx context.Context) ([]*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	Create(ctx context.Context, input NewCategoryInput, slug string) (*Category, error)
	Update(ctx context.Context, input UpdateCategoryInput) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const categoryColumns = `id, name, slug, COALESCE(description, ''), image_url, created_at`

func scanCategory(row interface{ Scan(...any) error }) (*Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE slug = $1`, slug)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, input NewCategoryInput, slug string) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, description, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		input.Name, slug, input.Description, input.ImageURL,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, input UpdateCategoryInput) error {
	var sets []string
	var args []any

	if input.Name != nil {
		args = append(args, *input.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if input.Description != nil {
		args = append(args, *input.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if input.ImageURL != nil {
		args = append(args, *input.ImageURL)
		sets = append(sets, fmt.Sprintf("image_url = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, input.CategoryID)
	query := fmt.Sprintf("UPDATE categories SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
