package service

import (
	"context"

	"github.com/emlips/nc-news/internal/apperr"
	"github.com/emlips/nc-news/internal/models"
	"github.com/emlips/nc-news/internal/repository"
)

type userService struct {
	repos *repository.Repositories
}

func newUserService(repos *repository.Repositories) *userService {
	return &userService{repos: repos}
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.repos.User.List(ctx)
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repos.User.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user does not exist")
	}
	return user, nil
}
