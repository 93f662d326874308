package backend

import (
	"context"
	"net/http"

	"aquadesk/pkg/logger"
	"aquadesk/pkg/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Role  string `json:"role"`
	Token string `json:"token"`
	ID    int64  `json:"id"`
}

func (c *client) Login(ctx context.Context, username, password string) (*models.Session, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/users/login", loginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	// Some upstream deployments answer without a token. Tolerated with a
	// placeholder rather than treated as a failed login.
	token := resp.Token
	if token == "" {
		c.log.Warning("login response carried no token, substituting placeholder",
			logger.String("username", username))
		token = models.PlaceholderToken
	}

	return &models.Session{
		Role:   resp.Role,
		Token:  token,
		UserID: resp.ID,
	}, nil
}
