package port

import (
	"context"

	"afterschool/internal/core/domain"
)

type CatalogRepository interface {
	// ListLessons returns every lesson in the catalog.
	ListLessons(ctx context.Context) ([]domain.Lesson, error)

	// GetLesson returns the lesson with the given id, domain.ErrNotFound if
	// it does not exist, or domain.ErrInvalidID if the id is malformed.
	GetLesson(ctx context.Context, id string) (*domain.Lesson, error)

	// DecrementSpace atomically takes quantity seats from a lesson, returning
	// false if the lesson has fewer seats than requested.
	DecrementSpace(ctx context.Context, id string, quantity int) (bool, error)

	// IncrementSpace gives seats back (rollback of a prior decrement).
	IncrementSpace(ctx context.Context, id string, quantity int) error

	// UpdateLessonFields overwrites the given fields on a lesson verbatim.
	UpdateLessonFields(ctx context.Context, id string, fields map[string]any) error

	// CountLessons reports how many lessons exist.
	CountLessons(ctx context.Context) (int64, error)

	// InsertLessons adds lessons to the catalog (seeding).
	InsertLessons(ctx context.Context, lessons []domain.Lesson) error
}
