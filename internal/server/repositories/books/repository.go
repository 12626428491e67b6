package books

import (
	"context"

	"github.com/dmitrijs2005/booktracker/internal/server/models"
)

// Repository stores books. Every method that touches existing rows takes
// the owner's user id and matches on it.
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.Book, error)
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id, userID int64) error
}
