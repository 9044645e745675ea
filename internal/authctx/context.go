package authctx

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func claims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("invalid token in context")
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return mapClaims, nil
}

// UserID extracts the authenticated user's UUID from JWT claims in context.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	mapClaims, err := claims(c)
	if err != nil {
		return uuid.Nil, err
	}
	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

// Role extracts the authenticated user's role claim, empty if absent.
func Role(c *fiber.Ctx) string {
	mapClaims, err := claims(c)
	if err != nil {
		return ""
	}
	role, _ := mapClaims["role"].(string)
	return role
}

// Email extracts the authenticated user's email claim, empty if absent.
func Email(c *fiber.Ctx) string {
	mapClaims, err := claims(c)
	if err != nil {
		return ""
	}
	email, _ := mapClaims["email"].(string)
	return email
}
