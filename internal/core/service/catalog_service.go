package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"afterschool/internal/core/domain"
	"afterschool/internal/core/search"
	"afterschool/internal/port"
)

// CatalogService serves lesson reads and administrative updates.
type CatalogService struct {
	catalog port.CatalogRepository
	logger  *zap.Logger
}

func NewCatalogService(catalog port.CatalogRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, logger: logger}
}

// List returns every lesson in the catalog.
func (s *CatalogService) List(ctx context.Context) ([]domain.Lesson, error) {
	return s.catalog.ListLessons(ctx)
}

// Search returns the lessons matching the raw query. The collection is
// scanned in full and filtered through the compiled predicate; there is no
// index to consult.
func (s *CatalogService) Search(ctx context.Context, raw string) ([]domain.Lesson, error) {
	lessons, err := s.catalog.ListLessons(ctx)
	if err != nil {
		return nil, err
	}
	match := search.Compile(raw)
	out := make([]domain.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if match(l) {
			out = append(out, l)
		}
	}
	s.logger.Debug("search", zap.String("query", raw), zap.Int("hits", len(out)))
	return out, nil
}

// UpdateLesson overwrites the supplied fields on a lesson verbatim and
// returns the updated record. It performs no availability reasoning: a
// concurrent order's decrement can lose to this overwrite, which is the
// accepted administrative-override semantics.
func (s *CatalogService) UpdateLesson(ctx context.Context, id string, fields map[string]any) (*domain.Lesson, error) {
	if len(fields) == 0 {
		return nil, &domain.ValidationError{Field: "body", Reason: "at least one field is required"}
	}
	if err := s.catalog.UpdateLessonFields(ctx, id, fields); err != nil {
		return nil, err
	}
	s.logger.Info("lesson updated", zap.String("lesson_id", id), zap.Int("fields", len(fields)))
	return s.catalog.GetLesson(ctx, id)
}

// Seed inserts the given lessons only when the catalog is empty.
func (s *CatalogService) Seed(ctx context.Context, lessons []domain.Lesson) error {
	n, err := s.catalog.CountLessons(ctx)
	if err != nil {
		return fmt.Errorf("count lessons: %w", err)
	}
	if n > 0 {
		return nil
	}
	if err := s.catalog.InsertLessons(ctx, lessons); err != nil {
		return fmt.Errorf("seed lessons: %w", err)
	}
	s.logger.Info("seeded catalog", zap.Int("lessons", len(lessons)))
	return nil
}
