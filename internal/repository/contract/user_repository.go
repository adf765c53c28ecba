package contract

import (
	"context"

	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/repository/specification"
)

type UserRepository interface {
	// Create returns gorm.ErrDuplicatedKey when the username is taken.
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	// Count is used by tests to assert what was or was not persisted.
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
