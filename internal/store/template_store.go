package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/templhub/internal/models"
)

// TemplateStore is the persistence boundary for the template catalog.
// Finders return (nil, nil) when no row matches.
type TemplateStore interface {
	Create(ctx context.Context, template *models.Template) error
	Update(ctx context.Context, template *models.Template) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Template, error)
	FindActiveBySlug(ctx context.Context, slug string) (*models.Template, error)
	ListActive(ctx context.Context, category string, limit, offset int) ([]models.Template, int64, error)
}

type templateStore struct {
	db *gorm.DB
}

// NewTemplateStore constructs a GORM-backed TemplateStore.
func NewTemplateStore(db *gorm.DB) TemplateStore {
	return &templateStore{db: db}
}

func (s *templateStore) Create(ctx context.Context, template *models.Template) error {
	return s.db.WithContext(ctx).Create(template).Error
}

func (s *templateStore) Update(ctx context.Context, template *models.Template) error {
	return s.db.WithContext(ctx).Save(template).Error
}

func (s *templateStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Template{}, "id = ?", id).Error
}

func (s *templateStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *templateStore) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	return s.first(ctx, "id = ? AND is_active = ?", id, true)
}

func (s *templateStore) FindActiveBySlug(ctx context.Context, slug string) (*models.Template, error) {
	return s.first(ctx, "slug = ? AND is_active = ?", slug, true)
}

func (s *templateStore) ListActive(ctx context.Context, category string, limit, offset int) ([]models.Template, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Template{}).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var templates []models.Template
	if err := query.Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&templates).Error; err != nil {
		return nil, 0, err
	}

	return templates, total, nil
}

func (s *templateStore) first(ctx context.Context, conds ...interface{}) (*models.Template, error) {
	var template models.Template
	err := s.db.WithContext(ctx).First(&template, conds...).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}
