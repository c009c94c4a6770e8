package httpapi

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/epartment/society-backend/internal/auth"
	"github.com/epartment/society-backend/internal/domain"
)

type AuthHandler struct {
	DB        *pgxpool.Pool
	JWTSecret []byte
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body signupRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	ctx := userContext(c)

	user := domain.User{Email: body.Email, Role: domain.RoleVisitor}
	err = h.DB.QueryRow(
		ctx,
		`INSERT INTO users (email, password_hash, full_name, role)
         VALUES ($1, $2, NULLIF($3, ''), $4)
         RETURNING id::text`,
		body.Email, string(hashed), strings.TrimSpace(body.FullName), user.Role,
	).Scan(&user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create user")
	}

	token, err := auth.GenerateToken(h.JWTSecret, user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse{Token: token})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	var user domain.User
	var role string

	ctx := userContext(c)
	err := h.DB.QueryRow(
		ctx,
		`SELECT id::text, email, password_hash, role, society_id::text
		 FROM users WHERE email = $1`,
		strings.TrimSpace(strings.ToLower(body.Email)),
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &role, &user.SocietyID)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	user.Role = domain.ParseRole(role)

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := auth.GenerateToken(h.JWTSecret, user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	return c.JSON(authResponse{Token: token})
}

// Me handles GET /api/users/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	ident, ok := auth.CurrentIdentity(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user domain.User
	var role string
	var phone *string
	err := h.DB.QueryRow(
		userContext(c),
		`SELECT id::text, email, full_name, role, society_id::text, phone_number, created_at
		 FROM users WHERE id = $1::uuid`,
		ident.UserID,
	).Scan(&user.ID, &user.Email, &user.FullName, &role, &user.SocietyID, &phone, &user.CreatedAt)
	if err == pgx.ErrNoRows {
		return fiber.NewError(fiber.StatusUnauthorized, "unknown user")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load user")
	}
	user.Role = domain.ParseRole(role)

	resp := fiber.Map{
		"id":         user.ID,
		"email":      user.Email,
		"full_name":  user.FullName,
		"role":       user.Role,
		"society_id": user.SocietyID,
	}
	if phone != nil {
		resp["phone_number"] = *phone
	}
	return c.JSON(resp)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
