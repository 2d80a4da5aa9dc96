package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pawket-be/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
)

type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]*Product, int64, error)
	GetByID(ctx context.Context, id string, onlyActive bool) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetVariantByID(ctx context.Context, opts GetVariantOptions) (*Variant, error)
	Create(ctx context.Context, input NewProductInput, slug string) (*Product, error)
	Update(ctx context.Context, input UpdateProductInput) error
	UpdateVariantStock(ctx context.Context, variantID string, stock int) error
	DecrementVariantStock(ctx context.Context, variantID string, quantity int) error
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	start := time.Now()

	// ---------- pagination ----------
	limit := opts.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	// ---------- where ----------
	where := []string{"1=1"}
	args := []any{}

	if opts.OnlyActive {
		where = append(where, "p.status = 'active'")
	}

	if opts.CategorySlug != nil && *opts.CategorySlug != "" {
		args = append(args, *opts.CategorySlug)
		where = append(where, fmt.Sprintf("c.slug = $%d", len(args)))
	}

	if opts.Search != nil && *opts.Search != "" {
		args = append(args, "%"+*opts.Search+"%")
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}

	if opts.MinPrice != nil {
		args = append(args, *opts.MinPrice)
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM product_variants mv WHERE mv.product_id = p.id AND mv.price >= $%d)", len(args)))
	}

	if opts.MaxPrice != nil {
		args = append(args, *opts.MaxPrice)
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM product_variants xv WHERE xv.product_id = p.id AND xv.price <= $%d)", len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	// ---------- sort ----------
	orderBy := "p.created_at DESC"
	switch opts.SortBy {
	case "name":
		orderBy = "p.name ASC"
	case "price_asc":
		orderBy = "min_price ASC"
	case "price_desc":
		orderBy = "min_price DESC"
	}

	var total int64
	countQuery := `
		SELECT COUNT(DISTINCT p.id)
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE ` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	query := `
	SELECT
		p.id,
		p.name,
		p.description,
		p.category_id,
		c.name,
		p.slug,
		p.status,
		p.image_url,
		COALESCE(MIN(v.price), 0) AS min_price
	FROM products p
	JOIN categories c ON p.category_id = c.id
	LEFT JOIN product_variants v ON v.product_id = p.id
	WHERE ` + whereClause + `
	GROUP BY p.id, p.name, p.description, p.category_id, c.name, p.slug, p.status, p.image_url
	ORDER BY ` + orderBy + `
	LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]*Product, 0, limit)
	ids := make([]string, 0, limit)
	byID := make(map[string]*Product, limit)

	for rows.Next() {
		var p Product
		var minPrice float64
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName,
			&p.Slug, &p.Status, &p.ImageURL, &minPrice,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, &p)
		ids = append(ids, p.ID)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachVariants(ctx, ids, byID); err != nil {
		return nil, 0, err
	}

	log.Info("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)
	return products, total, nil
}

func (r *repository) attachVariants(ctx context.Context, ids []string, byID map[string]*Product) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, weight, price, stock
		FROM product_variants
		WHERE product_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY price ASC
	`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Weight, &v.Price, &v.Stock); err != nil {
			return err
		}
		if p, ok := byID[v.ProductID]; ok {
			p.Variants = append(p.Variants, &v)
		}
	}
	return rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string, onlyActive bool) (*Product, error) {
	query := `
	SELECT p.id, p.name, p.description, p.category_id, c.name, p.slug, p.status, p.image_url
	FROM products p
	JOIN categories c ON p.category_id = c.id
	WHERE p.id = $1`
	if onlyActive {
		query += " AND p.status = 'active'"
	}

	var p Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName,
		&p.Slug, &p.Status, &p.ImageURL,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachVariants(ctx, []string{p.ID}, map[string]*Product{p.ID: &p}); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM products WHERE slug = $1`, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id, true)
}

func (r *repository) GetVariantByID(ctx context.Context, opts GetVariantOptions) (*Variant, error) {
	query := `
	SELECT v.id, v.product_id, v.weight, v.price, v.stock
	FROM product_variants v
	JOIN products p ON v.product_id = p.id
	WHERE v.id = $1`
	if opts.OnlyActive {
		query += " AND p.status = 'active'"
	}

	var v Variant
	err := r.db.QueryRowContext(ctx, query, opts.VariantID).Scan(
		&v.ID, &v.ProductID, &v.Weight, &v.Price, &v.Stock,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) Create(ctx context.Context, input NewProductInput, slug string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("name", input.Name),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p := &Product{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Slug:        slug,
		Status:      StatusActive,
		ImageURL:    input.ImageURL,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO products (name, description, category_id, slug, status, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, p.Name, p.Description, p.CategoryID, p.Slug, p.Status, p.ImageURL).Scan(&p.ID)
	if err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	for _, in := range input.Variants {
		v := &Variant{ProductID: p.ID, Weight: in.Weight, Price: in.Price, Stock: in.Stock}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO product_variants (product_id, weight, price, stock)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, v.ProductID, v.Weight, v.Price, v.Stock).Scan(&v.ID)
		if err != nil {
			log.Error("failed to insert variant", zap.Error(err))
			return nil, err
		}
		p.Variants = append(p.Variants, v)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return p, nil
}

func (r *repository) Update(ctx context.Context, input UpdateProductInput) error {
	set := []string{}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Name != nil {
		add("name", *input.Name)
	}
	if input.Description != nil {
		add("description", *input.Description)
	}
	if input.CategoryID != nil {
		add("category_id", *input.CategoryID)
	}
	if input.ImageURL != nil {
		add("image_url", *input.ImageURL)
	}
	if input.Status != nil {
		add("status", *input.Status)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, input.ProductID)
	query := `UPDATE products SET ` + strings.Join(set, ", ") +
		`, updated_at = NOW() WHERE id = $` + fmt.Sprint(len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) UpdateVariantStock(ctx context.Context, variantID string, stock int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE product_variants SET stock = $1, updated_at = NOW() WHERE id = $2
	`, stock, variantID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVariantNotFound
	}
	return nil
}

// DecrementVariantStock only fires when enough stock remains, so two
// concurrent checkouts cannot oversell the same variant.
func (r *repository) DecrementVariantStock(ctx context.Context, variantID string, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE product_variants
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`, quantity, variantID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVariantNotFound
	}
	return nil
}

func (r *repository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM product_variants WHERE stock <= $1
	`, threshold).Scan(&count)
	return count, err
}
