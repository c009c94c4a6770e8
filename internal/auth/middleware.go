package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epartment/society-backend/internal/domain"
)

const (
	localUserID    = "user_id"
	localEmail     = "user_email"
	localRole      = "user_role"
	localSocietyID = "society_id"
)

// Identity is the authenticated principal attached to a request.
type Identity struct {
	UserID    string
	Email     string
	Role      domain.Role
	SocietyID string
}

// CurrentIdentity reads the principal the middleware stored in locals.
func CurrentIdentity(c *fiber.Ctx) (Identity, bool) {
	uid, _ := c.Locals(localUserID).(string)
	if strings.TrimSpace(uid) == "" {
		return Identity{}, false
	}
	email, _ := c.Locals(localEmail).(string)
	role, _ := c.Locals(localRole).(string)
	societyID, _ := c.Locals(localSocietyID).(string)
	return Identity{
		UserID:    uid,
		Email:     email,
		Role:      domain.ParseRole(role),
		SocietyID: societyID,
	}, true
}

// Middleware validates the bearer token and stores the identity claims in
// Fiber locals.
func Middleware(secret []byte, pool *pgxpool.Pool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing token")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		userID, ok := claims["user_id"].(string)
		if !ok || strings.TrimSpace(userID) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		if _, err := uuid.Parse(userID); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(localUserID, userID)
		if email, ok := claims["email"].(string); ok {
			c.Locals(localEmail, email)
		}
		if role, ok := claims["role"].(string); ok {
			c.Locals(localRole, role)
		}
		if societyID, ok := claims["society_id"].(string); ok {
			c.Locals(localSocietyID, societyID)
		}

		// Update last_seen_at (best-effort, do not block request)
		if pool != nil {
			go func(uid string) {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_, _ = pool.Exec(ctx, `UPDATE users SET last_seen_at = NOW() WHERE id = $1::uuid`, uid)
			}(userID)
		}

		return c.Next()
	}
}

// GenerateToken signs a token carrying the identity claims.
func GenerateToken(secret []byte, user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	if user.SocietyID != nil {
		claims["society_id"] = *user.SocietyID
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}
