package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrRecipeItemNotFound = errors.New("recipe item not found")
)

type Repository interface {
	ListIngredients(ctx context.Context) ([]*Ingredient, error)
	ListLowStockIngredients(ctx context.Context) ([]*Ingredient, error)
	CreateIngredient(ctx context.Context, input IngredientInput) (*Ingredient, error)
	UpdateIngredient(ctx context.Context, id string, input IngredientInput) (*Ingredient, error)
	DeleteIngredient(ctx context.Context, id string) error

	ListVendors(ctx context.Context) ([]*Vendor, error)
	CreateVendor(ctx context.Context, input NewVendorInput) (*Vendor, error)

	ListRecipeItems(ctx context.Context, productID *string) ([]*RecipeItem, error)
	CreateRecipeItem(ctx context.Context, input RecipeItemInput) (*RecipeItem, error)
	UpdateRecipePercentage(ctx context.Context, id string, percentage float64) error
	DeleteRecipeItem(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const ingredientColumns = `id, name, unit, current_stock, reorder_level, unit_cost, supplier, created_at`

func scanIngredient(row interface{ Scan(...any) error }) (*Ingredient, error) {
	var i Ingredient
	err := row.Scan(&i.ID, &i.Name, &i.Unit, &i.CurrentStock, &i.ReorderLevel,
		&i.UnitCost, &i.Supplier, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repository) listIngredients(ctx context.Context, query string) ([]*Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []*Ingredient
	for rows.Next() {
		i, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, i)
	}
	return ingredients, rows.Err()
}

func (r *repository) ListIngredients(ctx context.Context) ([]*Ingredient, error) {
	return r.listIngredients(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients
		ORDER BY name ASC`)
}

func (r *repository) ListLowStockIngredients(ctx context.Context) ([]*Ingredient, error) {
	return r.listIngredients(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients
		WHERE current_stock <= reorder_level
		ORDER BY name ASC`)
}

func (r *repository) CreateIngredient(ctx context.Context, input IngredientInput) (*Ingredient, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO ingredients (name, unit, current_stock, reorder_level, unit_cost, supplier)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+ingredientColumns,
		input.Name, input.Unit, input.CurrentStock, input.ReorderLevel,
		input.UnitCost, input.Supplier,
	)

	i, err := scanIngredient(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return i, nil
}

// UpdateIngredient is a full replace, matching the back-office edit form
// which always submits every field.
func (r *repository) UpdateIngredient(ctx context.Context, id string, input IngredientInput) (*Ingredient, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE ingredients
		SET name = $1, unit = $2, current_stock = $3, reorder_level = $4,
		    unit_cost = $5, supplier = $6
		WHERE id = $7
		RETURNING `+ingredientColumns,
		input.Name, input.Unit, input.CurrentStock, input.ReorderLevel,
		input.UnitCost, input.Supplier, id,
	)

	i, err := scanIngredient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIngredientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}
	return i, nil
}

func (r *repository) DeleteIngredient(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrIngredientNotFound
	}
	return nil
}

const vendorColumns = `id, name, contact_person, phone, email, address, is_active, payment_terms, created_at`

func (r *repository) ListVendors(ctx context.Context) ([]*Vendor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+vendorColumns+`
		FROM vendors
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*Vendor
	for rows.Next() {
		var v Vendor
		err := rows.Scan(&v.ID, &v.Name, &v.ContactPerson, &v.Phone, &v.Email,
			&v.Address, &v.IsActive, &v.PaymentTerms, &v.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, &v)
	}
	return vendors, rows.Err()
}

func (r *repository) CreateVendor(ctx context.Context, input NewVendorInput) (*Vendor, error) {
	var v Vendor
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO vendors (name, contact_person, phone, email, address, payment_terms)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+vendorColumns,
		input.Name, input.ContactPerson, input.Phone, input.Email,
		input.Address, input.PaymentTerms,
	).Scan(&v.ID, &v.Name, &v.ContactPerson, &v.Phone, &v.Email,
		&v.Address, &v.IsActive, &v.PaymentTerms, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	return &v, nil
}

// ListRecipeItems returns every recipe row, or one product's recipe ordered
// by share when productID is set.
func (r *repository) ListRecipeItems(ctx context.Context, productID *string) ([]*RecipeItem, error) {
	query := `
		SELECT id, product_id, ingredient_id, percentage
		FROM product_recipes
		ORDER BY product_id ASC`
	args := []any{}
	if productID != nil {
		query = `
			SELECT id, product_id, ingredient_id, percentage
			FROM product_recipes
			WHERE product_id = $1
			ORDER BY percentage DESC`
		args = append(args, *productID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe items: %w", err)
	}
	defer rows.Close()

	var items []*RecipeItem
	for rows.Next() {
		var it RecipeItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.IngredientID, &it.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan recipe item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *repository) CreateRecipeItem(ctx context.Context, input RecipeItemInput) (*RecipeItem, error) {
	var it RecipeItem
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO product_recipes (product_id, ingredient_id, percentage)
		VALUES ($1, $2, $3)
		RETURNING id, product_id, ingredient_id, percentage`,
		input.ProductID, input.IngredientID, input.Percentage,
	).Scan(&it.ID, &it.ProductID, &it.IngredientID, &it.Percentage)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe item: %w", err)
	}
	return &it, nil
}

func (r *repository) UpdateRecipePercentage(ctx context.Context, id string, percentage float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE product_recipes SET percentage = $1 WHERE id = $2`,
		percentage, id)
	if err != nil {
		return fmt.Errorf("failed to update recipe item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecipeItemNotFound
	}
	return nil
}

func (r *repository) DeleteRecipeItem(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecipeItemNotFound
	}
	return nil
}
