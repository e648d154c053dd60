package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"siteworks/internal/cache"
	"siteworks/internal/errors"
	"siteworks/internal/model"
	"siteworks/internal/repository"
)

const projectCacheTTL = 5 * time.Minute

// ProjectService exposes a client's projects.
type ProjectService interface {
	ListProjects(ctx context.Context, userID uint) ([]model.Project, error)
	GetProject(ctx context.Context, userID, projectID uint) (*model.Project, error)
}

type projectService struct {
	repo  repository.ProjectRepository
	cache *cache.Client
}

// NewProjectService creates a new project service.
func NewProjectService(repo repository.ProjectRepository, cacheClient *cache.Client) ProjectService {
	return &projectService{
		repo:  repo,
		cache: cacheClient,
	}
}

func (s *projectService) listCacheKey(userID uint) string {
	return fmt.Sprintf("projects:user:%d", userID)
}

// ListProjects returns the caller's projects with caching.
func (s *projectService) ListProjects(ctx context.Context, userID uint) ([]model.Project, error) {
	var cached []model.Project
	if s.cache.GetJSON(ctx, s.listCacheKey(userID), &cached) {
		return cached, nil
	}

	projects, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	s.cache.SetJSON(ctx, s.listCacheKey(userID), projects, projectCacheTTL)
	return projects, nil
}

// GetProject returns one project. A project owned by another user reads as
// not found.
func (s *projectService) GetProject(ctx context.Context, userID, projectID uint) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	if project.UserID != userID {
		return nil, errors.ErrProjectNotFound
	}
	return project, nil
}
