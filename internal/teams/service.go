package teams

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/octofitlabs/octofit-backend/pkg/db"
	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	pkgerrors "github.com/octofitlabs/octofit-backend/pkg/errors"
)

// Service defines team CRUD plus roster membership operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Team, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Team, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Team, error)
	AddMember(ctx context.Context, teamID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
}

// CreateParams carries a new team record.
type CreateParams struct {
	Name        string
	Description string
	CreatedBy   uuid.UUID
}

// UpdateParams carries replacement team fields.
type UpdateParams struct {
	Name        string
	Description string
}

type service struct {
	repo Repository
}

// NewService wires team dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "teams repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Team, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team name required")
	}

	team := &models.Team{
		ID:          uuid.New(),
		Name:        name,
		Description: params.Description,
		CreatedBy:   params.CreatedBy,
	}
	if err := s.repo.Create(ctx, team); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "team name already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create team")
	}
	return team, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team id required")
	}
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get team")
	}
	if team == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
	}
	return team, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.Team, error) {
	team, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(params.Name); name != "" {
		team.Name = name
	}
	team.Description = params.Description

	if err := s.repo.Update(ctx, team); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "team name already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update team")
	}
	return team, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "team id required")
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete team")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]models.Team, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list teams")
	}
	return out, nil
}

func (s *service) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	if teamID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "team id required")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	result, err := s.repo.AddMember(ctx, teamID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add team member")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
	}
	if !result.Applied {
		return pkgerrors.New(pkgerrors.CodeConflict, "user already in team")
	}
	return nil
}

func (s *service) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	if teamID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "team id required")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	result, err := s.repo.RemoveMember(ctx, teamID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove team member")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
	}
	if !result.Applied {
		return pkgerrors.New(pkgerrors.CodeConflict, "user not in team")
	}
	return nil
}
