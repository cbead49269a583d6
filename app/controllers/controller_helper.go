package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/presswire/PressWire/app/models"
	"github.com/presswire/PressWire/internal/pkg/usercontext"
)

// jsonError writes the uniform error envelope used by every API handler
func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// parseUintParam reads a numeric path parameter like :id
func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(v), nil
}

// parsePagination reads limit/offset query parameters with sane clamps
func parsePagination(c *fiber.Ctx, defaultLimit, maxLimit int) (offset, limit int) {
	limit = c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// clampLimit bounds a caller-supplied limit, falling back to the default
// for zero or negative values
func clampLimit(limit, def, max int) int {
	if limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// canModify reports whether the caller may modify the given resource:
// staff always may, everyone else only their own.
func canModify(user usercontext.UserContext, resource models.Ownable) bool {
	if user.IsStaff {
		return true
	}
	return user.IsLoggedIn && user.UserID == resource.OwnerID()
}

// GetClientIP determines the actual client IP address considering proxies.
// The first entry of X-Forwarded-For is the original client; Cloudflare's
// header wins when present.
func GetClientIP(c *fiber.Ctx) string {
	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip := c.IP()
	// Unwrap IPv4-mapped-IPv6 addresses (::ffff:192.168.1.1)
	if strings.HasPrefix(ip, "::ffff:") && strings.Contains(ip, ".") {
		return strings.TrimPrefix(ip, "::ffff:")
	}
	return ip
}
