package service

import (
	"crypto/subtle"

	"pos-admin-gateway/internal/config"
	"pos-admin-gateway/internal/domains/auth/model"
	"pos-admin-gateway/pkg/jwt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// ServiceInterface authenticates the admin user and issues session
// tokens. The gateway holds a single admin account from config; user
// management lives in the POS backend, not here.
type ServiceInterface interface {
	Login(req model.LoginRequest) (*model.LoginResponse, error)
}

type authService struct {
	admin      config.AdminConfig
	jwtManager *jwt.Manager
}

func NewService(admin config.AdminConfig, jwtManager *jwt.Manager) ServiceInterface {
	return &authService{admin: admin, jwtManager: jwtManager}
}

func (s *authService) Login(req model.LoginRequest) (*model.LoginResponse, error) {
	userMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.admin.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(req.Password))
	if !userMatch || passErr != nil {
		log.Warn().Str("username", req.Username).Msg("Login rejected")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(s.admin.Username, s.admin.Username, s.admin.FullName)
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", s.admin.Username).Msg("Login succeeded")
	return &model.LoginResponse{
		Token:    token,
		Username: s.admin.Username,
		FullName: s.admin.FullName,
	}, nil
}
