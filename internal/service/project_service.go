package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/procurement/internal/model"
	"github.com/nurpe/procurement/internal/repository"
)

type ProjectService struct {
	repo     ProjectRepository
	notifier Notifier
}

type ProjectInput struct {
	Name         string
	CustomerName string
	StartDate    time.Time
	EndDate      time.Time
	Status       model.ProjectStatus
	Notes        string
}

type PartInput struct {
	ProjectID            uuid.UUID
	Name                 string
	Code                 string
	Quantity             int
	Material             string
	FormType             string
	Dimensions           *model.PartDimensions
	ManufacturingMethods []string
	Status               model.PartStatus
	Notes                string
}

func NewProjectService(repo ProjectRepository, notifier Notifier) *ProjectService {
	return &ProjectService{repo: repo, notifier: notifier}
}

func (s *ProjectService) CreateProject(ctx context.Context, input ProjectInput) (*model.Project, error) {
	if input.Status == "" {
		input.Status = model.ProjectStatusPlanning
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	project := &model.Project{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	input.apply(project)
	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, model.NotificationProject,
		"New project",
		fmt.Sprintf("Project %s (%s) was created", project.Name, project.Code),
		"project", project.ID)
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, status *model.ProjectStatus) ([]model.Project, error) {
	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, *status)
	}
	return s.repo.ListProjects(ctx, status)
}

func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, id uuid.UUID, input ProjectInput) (*model.Project, error) {
	project, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if input.Status == "" {
		input.Status = project.Status
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	input.apply(project)
	project.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateProject(ctx, project); err != nil {
		return nil, translate(err)
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return translate(s.repo.DeleteProject(ctx, id))
}

func (s *ProjectService) CreatePart(ctx context.Context, input PartInput) (*model.Part, error) {
	if input.Status == "" {
		input.Status = model.PartStatusPending
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetProject(ctx, input.ProjectID); err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return nil, fmt.Errorf("%w: project %s does not exist", ErrInvalidInput, input.ProjectID)
		}
		return nil, err
	}
	part := &model.Part{
		ID:        uuid.New(),
		ProjectID: input.ProjectID,
		CreatedAt: time.Now().UTC(),
	}
	input.apply(part)
	if err := s.repo.CreatePart(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

func (s *ProjectService) ListParts(ctx context.Context, filter repository.PartFilter) ([]model.Part, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown part status %q", ErrInvalidInput, *filter.Status)
	}
	return s.repo.ListParts(ctx, filter)
}

func (s *ProjectService) GetPart(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	part, err := s.repo.GetPart(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return part, nil
}

func (s *ProjectService) UpdatePart(ctx context.Context, id uuid.UUID, input PartInput) (*model.Part, error) {
	part, err := s.repo.GetPart(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	input.ProjectID = part.ProjectID
	if input.Status == "" {
		input.Status = part.Status
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	input.apply(part)
	if err := s.repo.UpdatePart(ctx, part); err != nil {
		return nil, translate(err)
	}
	return part, nil
}

func (s *ProjectService) DeletePart(ctx context.Context, id uuid.UUID) error {
	return translate(s.repo.DeletePart(ctx, id))
}

func (in ProjectInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrInvalidInput)
	}
	if in.EndDate.Before(in.StartDate) {
		return fmt.Errorf("%w: end_date is before start_date", ErrInvalidInput)
	}
	if !in.Status.Valid() {
		return fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, in.Status)
	}
	return nil
}

func (in ProjectInput) apply(project *model.Project) {
	project.Name = strings.TrimSpace(in.Name)
	project.CustomerName = strings.TrimSpace(in.CustomerName)
	project.StartDate = in.StartDate
	project.EndDate = in.EndDate
	project.Status = in.Status
	project.Notes = in.Notes
}

func (in PartInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Code) == "" {
		return fmt.Errorf("%w: name and code are required", ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if in.Material != "" {
		if _, ok := model.Materials[in.Material]; !ok {
			return fmt.Errorf("%w: unknown material %q", ErrInvalidInput, in.Material)
		}
	}
	if in.FormType != "" {
		if _, ok := model.FormTypes[in.FormType]; !ok {
			return fmt.Errorf("%w: unknown form type %q", ErrInvalidInput, in.FormType)
		}
	}
	for _, code := range in.ManufacturingMethods {
		if _, ok := model.ManufacturingMethods[code]; !ok {
			return fmt.Errorf("%w: unknown manufacturing method %q", ErrInvalidInput, code)
		}
	}
	if !in.Status.Valid() {
		return fmt.Errorf("%w: unknown part status %q", ErrInvalidInput, in.Status)
	}
	return nil
}

func (in PartInput) apply(part *model.Part) {
	part.Name = strings.TrimSpace(in.Name)
	part.Code = strings.TrimSpace(in.Code)
	part.Quantity = in.Quantity
	part.Material = in.Material
	part.FormType = in.FormType
	part.Dimensions = in.Dimensions
	part.ManufacturingMethods = normalizeList(in.ManufacturingMethods)
	part.Status = in.Status
	part.Notes = in.Notes
}
