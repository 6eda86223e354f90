package service

import (
	"context"

	"github.com/emlips/nc-news/internal/models"
	"github.com/emlips/nc-news/internal/repository"
)

type topicService struct {
	repos *repository.Repositories
}

func newTopicService(repos *repository.Repositories) *topicService {
	return &topicService{repos: repos}
}

func (s *topicService) List(ctx context.Context) ([]*models.Topic, error) {
	return s.repos.Topic.List(ctx)
}
