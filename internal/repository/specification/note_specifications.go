package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteOwnedByUser is applied to every note query issued on behalf of a caller.
type NoteOwnedByUser struct {
	UserID uuid.UUID
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

// ChronologicalNotes orders oldest first, breaking created_at ties on id so
// repeated listings come back in the same order.
func ChronologicalNotes() []Specification {
	return []Specification{
		OrderBy{Field: "notes.created_at"},
		OrderBy{Field: "notes.id"},
	}
}
