// Package books provides the PostgreSQL-backed book repository. All reads
// and writes are scoped by the owning user id.
package books

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/booktracker/internal/common"
	"github.com/dmitrijs2005/booktracker/internal/dbx"
	"github.com/dmitrijs2005/booktracker/internal/server/models"
)

// PostgresRepository implements book storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByUser returns the user's books ordered by id. An empty result is an
// empty, non-nil slice.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Book, error) {
	query := `SELECT id, user_id, title, author, recommendation, published_year, created_at, updated_at
		FROM books WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Book, 0)
	for rows.Next() {
		var (
			b              models.Book
			recommendation sql.NullString
			publishedYear  sql.NullInt64
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Author, &recommendation, &publishedYear,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		if recommendation.Valid {
			s := recommendation.String
			b.Recommendation = &s
		}
		if publishedYear.Valid {
			y := int(publishedYear.Int64)
			b.PublishedYear = &y
		}
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

// Create inserts the book and fills in ID and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	query := `INSERT INTO books (user_id, title, author, recommendation, published_year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		book.UserID, book.Title, book.Author, nullString(book.Recommendation), nullInt(book.PublishedYear),
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return book, nil
}

// Update overwrites the editable fields of the book matched by both id and
// owner. Zero matched rows yields common.ErrorNotFound whether the row is
// missing or owned by someone else.
func (r *PostgresRepository) Update(ctx context.Context, book *models.Book) error {
	query := `UPDATE books
		SET title = $1, author = $2, recommendation = $3, published_year = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6`

	res, err := r.db.ExecContext(ctx, query,
		book.Title, book.Author, nullString(book.Recommendation), nullInt(book.PublishedYear),
		book.ID, book.UserID)
	if err != nil {
		return mapWriteError(err)
	}
	return expectOneRow(res)
}

// Delete removes the book matched by both id and owner, with the same
// not-found rule as Update.
func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

var bookColumns = []string{"recommendation", "published_year", "title", "author"}

func mapWriteError(err error) error {
	if constraint, ok := dbx.UniqueViolation(err); ok {
		field := ""
		for _, c := range bookColumns {
			if strings.Contains(constraint, c) {
				field = c
				break
			}
		}
		return &common.ConflictError{Field: field}
	}
	return fmt.Errorf("db error: %w", err)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
