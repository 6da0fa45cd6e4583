package tracker

import (
	"context"
	"fmt"

	"github.com/2beens/workoutlog/internal/kvstore"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type CategoryRepo struct {
	db      *DB
	cascade *Coordinator
}

func NewCategoryRepo(db *DB, cascade *Coordinator) *CategoryRepo {
	return &CategoryRepo{
		db:      db,
		cascade: cascade,
	}
}

func (r *CategoryRepo) List(ctx context.Context) []Category {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.categories.list")
	defer span.End()

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	categories := r.db.categories(ctx)
	span.SetAttributes(attribute.Int("categories.count", len(categories)))
	return categories
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, c := range r.db.categories(ctx) {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (r *CategoryRepo) Add(ctx context.Context, newCategory NewCategory) (_ *Category, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.categories.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	category := Category{
		ID:        r.db.newID(),
		Title:     newCategory.Title,
		Icon:      newCategory.Icon,
		CreatedAt: r.db.now(),
	}
	span.SetAttributes(attribute.String("category.id", category.ID))

	categories := append(r.db.categories(ctx), category)
	if err := kvstore.Write(ctx, r.db.store, KeyCategories, categories); err != nil {
		return nil, fmt.Errorf("save categories: %w", err)
	}

	return &category, nil
}

// Update merges patch into the category with the given id. Unknown ids are ignored.
func (r *CategoryRepo) Update(ctx context.Context, id string, patch CategoryPatch) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.categories.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("category.id", id))

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	categories := r.db.categories(ctx)
	found := false
	for i := range categories {
		if categories[i].ID != id {
			continue
		}
		found = true
		if patch.Title != nil {
			categories[i].Title = *patch.Title
		}
		if patch.Icon != nil {
			categories[i].Icon = *patch.Icon
		}
	}

	if !found {
		log.Tracef("update category [%s]: not found, nothing to do", id)
		return nil
	}

	if err := kvstore.Write(ctx, r.db.store, KeyCategories, categories); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}
	return nil
}

// Delete removes the category together with its workouts and their sessions.
func (r *CategoryRepo) Delete(ctx context.Context, id string) (CascadeResult, error) {
	return r.cascade.DeleteCategory(ctx, id)
}
