package contract

import (
	"context"

	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/repository/specification"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	// Count is used by tests to assert what was or was not persisted.
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateContent rewrites title and content of every note matching specs
	// in a single statement and reports how many rows it touched.
	UpdateContent(ctx context.Context, title, content string, specs ...specification.Specification) (int64, error)
	// Delete hard deletes every note matching specs and reports how many
	// rows it removed.
	Delete(ctx context.Context, specs ...specification.Specification) (int64, error)
}
