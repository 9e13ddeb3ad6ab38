package middleware

import (
	"crypto/rsa"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/pkg/errors"
	"github.com/infra-status-service/internal/pkg/utils"
)

const actorLocalsKey = "actor"

// LoadPublicKey читает RSA ключ в PEM. Пустой путь - аутентификация отключена.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	if path == "" {
		return nil, nil
	}
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return key, nil
}

// Auth проверяет bearer токены RS256 и кладет Actor в Locals
type Auth struct {
	publicKey *rsa.PublicKey
	logger    *zap.Logger
}

func NewAuth(publicKey *rsa.PublicKey, logger *zap.Logger) *Auth {
	if publicKey == nil {
		logger.Warn("JWT public key is not configured, all requests are anonymous")
	}
	return &Auth{
		publicKey: publicKey,
		logger:    logger,
	}
}

// Optional - без заголовка запрос анонимный; неверный токен дает 401
func (a *Auth) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		actor, err := a.authenticate(c)
		if err != nil {
			return utils.SendError(c, err)
		}
		c.Locals(actorLocalsKey, actor)
		return c.Next()
	}
}

// Required - запрос без валидного токена отклоняется с 401
func (a *Auth) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := a.authenticate(c)
		if err != nil {
			return utils.SendError(c, err)
		}
		c.Locals(actorLocalsKey, actor)
		return c.Next()
	}
}

func (a *Auth) authenticate(c *fiber.Ctx) (*domain.Actor, error) {
	header := c.Get(fiber.HeaderAuthorization)
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if header == "" || tokenString == header {
		return nil, errors.ErrUnauthorized
	}
	if a.publicKey == nil {
		return nil, errors.ErrUnauthorized
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return a.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithLeeway(5*time.Second))
	if err != nil || !token.Valid {
		a.logger.Debug("Token rejected", zap.Error(err))
		return nil, errors.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.ErrUnauthorized
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, errors.ErrUnauthorized
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.ErrUnauthorized
	}
	role, _ := claims["role"].(string)

	return &domain.Actor{UserID: userID, Role: role}, nil
}

// ActorFrom - актор текущего запроса, nil для анонимного
func ActorFrom(c *fiber.Ctx) *domain.Actor {
	actor, _ := c.Locals(actorLocalsKey).(*domain.Actor)
	return actor
}
