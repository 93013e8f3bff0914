package repository

import (
	"errors"

	"community-board/internal/domain/entity"
)

// ErrNotFound is returned when a record does not exist in the store.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}

// NoticeRepository defines the interface for notice-related database operations.
// Update replaces every field of an existing record; both Update and Delete
// return ErrNotFound when the id does not exist.
type NoticeRepository interface {
	Create(n *entity.Notice) error
	GetByID(id string) (*entity.Notice, error)
	List(category entity.Category) ([]entity.Notice, error)
	Update(n *entity.Notice) error
	Delete(id string) error
	SetAttachmentURL(id, url string) error
}
