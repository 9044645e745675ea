package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReviewerRequired guards the moderation panel. Access is granted by:
// 1. the configured admin token header
// 2. config-based admin email/ID lists
// 3. a moderator or admin role on the user record
func ReviewerRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)
	adminUserIDs := parseCSV(cfg.AdminUserIDs)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			if c.Get("X-Admin-Token") == cfg.AdminToken {
				return c.Next()
			}
		}

		userID, err := authctx.UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Code: "unauthorized", Message: "Unauthorized",
			})
		}

		if contains(adminEmails, authctx.Email(c)) || contains(adminUserIDs, userID.String()) {
			return c.Next()
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err == nil {
			if user.Role == "moderator" || user.Role == "admin" {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Code: "forbidden", Message: "Reviewer access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
