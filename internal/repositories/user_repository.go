package repositories

import "akun/internal/models"

// UserFilter narrows a directory listing. Username and Email are
// case-insensitive substring matches; Country is an exact match.
// Zero-value fields are ignored.
type UserFilter struct {
	Username string
	Email    string
	Country  string
}

// UserRepository defines the interface for account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Find(filter UserFilter) ([]models.User, error)
}
