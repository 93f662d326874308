package service

import (
	"context"
	"fmt"

	"aquadesk/pkg/backend"
	"aquadesk/pkg/logger"
	"aquadesk/pkg/models"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
}

type authService struct {
	client backend.IClient
	log    logger.ILogger
}

func NewAuthService(client backend.IClient, log logger.ILogger) AuthService {
	return &authService{client: client, log: log}
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", models.ErrValidation)
	}

	session, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.log.Error("login failed", logger.String("username", username), logger.Error(err))
		return nil, err
	}
	return session, nil
}
