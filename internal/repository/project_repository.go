package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/procurement/internal/model"
)

type PartFilter struct {
	ProjectID *uuid.UUID
	Status    *model.PartStatus
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateProject assigns the next PRJ-YYYY-NNN code and stores the project.
func (r *ProjectRepository) CreateProject(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`SELECT pg_advisory_xact_lock(hashtext('projects_code'))`).Error; err != nil {
			return err
		}
		code, err := nextCode(tx, &model.Project{}, "PRJ", time.Now().Year())
		if err != nil {
			return err
		}
		project.Code = code
		return tx.Create(project).Error
	})
}

func (r *ProjectRepository) ListProjects(ctx context.Context, status *model.ProjectStatus) ([]model.Project, error) {
	query := r.db.WithContext(ctx).Model(&model.Project{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var projects []model.Project
	if err := query.Order("created_at DESC").Limit(1000).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) UpdateProject(ctx context.Context, project *model.Project) error {
	result := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", project.ID).Updates(map[string]interface{}{
		"name":          project.Name,
		"customer_name": project.CustomerName,
		"start_date":    project.StartDate,
		"end_date":      project.EndDate,
		"status":        project.Status,
		"notes":         project.Notes,
		"updated_at":    project.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteProject removes the project; its parts go with it via ON DELETE CASCADE.
func (r *ProjectRepository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProjectRepository) CreatePart(ctx context.Context, part *model.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

func (r *ProjectRepository) ListParts(ctx context.Context, filter PartFilter) ([]model.Part, error) {
	query := r.db.WithContext(ctx).Model(&model.Part{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	var parts []model.Part
	if err := query.Order("created_at ASC").Limit(1000).Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *ProjectRepository) GetPart(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	var part model.Part
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *ProjectRepository) UpdatePart(ctx context.Context, part *model.Part) error {
	result := r.db.WithContext(ctx).Model(&model.Part{}).Where("id = ?", part.ID).
		Select("name", "code", "quantity", "material", "form_type", "dimensions", "manufacturing_methods", "status", "notes").
		Updates(part)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProjectRepository) DeletePart(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Part{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
