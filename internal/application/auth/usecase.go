package auth

import (
	"context"
	"fmt"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/dto"
	"github.com/EmiliaOsaba/Entregable2-Osaba/pkg/jwt"
)

// JWTConfig configuración para firmar los tokens de sesión.
type JWTConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// SessionStarter crea la sesión de la tienda y devuelve su id.
type SessionStarter interface {
	StartSession(ctx context.Context) (string, error)
}

// SessionUseCase abre sesiones anónimas y emite su token Bearer.
type SessionUseCase struct {
	starter SessionStarter
	jwtCfg  JWTConfig
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(starter SessionStarter, jwtCfg JWTConfig) *SessionUseCase {
	return &SessionUseCase{starter: starter, jwtCfg: jwtCfg}
}

// Start crea la sesión con el catálogo inicial y firma el token.
func (uc *SessionUseCase) Start(ctx context.Context) (*dto.SessionResponse, error) {
	id, err := uc.starter.StartSession(ctx)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, id, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("firmar token: %w", err)
	}
	return &dto.SessionResponse{
		SessionID: id,
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
