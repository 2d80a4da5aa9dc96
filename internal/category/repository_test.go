package category

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT id, name, slug, .* FROM categories`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "image_url", "created_at"}).
			AddRow("cat-1", "Dry Food", "dry-food", "Kibble and biscuits", nil, time.Now()).
			AddRow("cat-2", "Wet Food", "wet-food", "", nil, time.Now()))

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "dry-food", categories[0].Slug)
	assert.Equal(t, "Wet Food", categories[1].Name)
}

func TestRepository_GetBySlug(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, slug, .* FROM categories`).
			WithArgs("treats").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "image_url", "created_at"}).
				AddRow("cat-3", "Treats", "treats", "", nil, time.Now()))

		c, err := repo.GetBySlug(context.Background(), "treats")
		require.NoError(t, err)
		assert.Equal(t, "Treats", c.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, slug, .* FROM categories`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetBySlug(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	input := NewCategoryInput{Name: "Kitten Food", Description: "For cats under 12 months"}
	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs(input.Name, "kitten-food", input.Description, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "image_url", "created_at"}).
			AddRow("cat-4", input.Name, "kitten-food", input.Description, nil, time.Now()))

	c, err := repo.Create(context.Background(), input, "kitten-food")
	require.NoError(t, err)
	assert.Equal(t, "cat-4", c.ID)
	assert.Equal(t, "kitten-food", c.Slug)
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("PartialUpdate", func(t *testing.T) {
		name := "Senior Food"
		mock.ExpectExec(`UPDATE categories SET name = \$1 WHERE id = \$2`).
			WithArgs(name, "cat-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), UpdateCategoryInput{CategoryID: "cat-1", Name: &name})
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		name := "x"
		mock.ExpectExec(`UPDATE categories SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), UpdateCategoryInput{CategoryID: "missing", Name: &name})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("NoFieldsIsNoop", func(t *testing.T) {
		assert.NoError(t, repo.Update(context.Background(), UpdateCategoryInput{CategoryID: "cat-1"}))
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM categories`).
			WithArgs("cat-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "cat-1"))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM categories`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrCategoryNotFound)
	})
}
