package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/presswire/PressWire/app/models"
	"github.com/presswire/PressWire/internal/pkg/usercontext"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 10, clampLimit(0, 10, 50))
	assert.Equal(t, 10, clampLimit(-5, 10, 50))
	assert.Equal(t, 25, clampLimit(25, 10, 50))
	assert.Equal(t, 50, clampLimit(100, 10, 50))
	assert.Equal(t, 1, clampLimit(1, 10, 50))
}

func TestCanModify(t *testing.T) {
	article := &models.Article{AuthorID: 7}

	owner := usercontext.UserContext{UserID: 7, IsLoggedIn: true}
	other := usercontext.UserContext{UserID: 8, IsLoggedIn: true}
	staff := usercontext.UserContext{UserID: 99, IsLoggedIn: true, IsStaff: true}
	anonymous := usercontext.UserContext{}

	assert.True(t, canModify(owner, article))
	assert.False(t, canModify(other, article))
	assert.True(t, canModify(staff, article))
	assert.False(t, canModify(anonymous, article))

	// An anonymous context must not match a zero owner id
	orphan := &models.Comment{AuthorID: 0}
	assert.False(t, canModify(anonymous, orphan))
}

func TestGetClientIP(t *testing.T) {
	run := func(headers map[string]string) string {
		app := fiber.New()
		var got string
		app.Get("/ip", func(c *fiber.Ctx) error {
			got = GetClientIP(c)
			return c.SendString(got)
		})

		req := httptest.NewRequest("GET", "/ip", nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		_, err := app.Test(req)
		assert.NoError(t, err)
		return got
	}

	assert.Equal(t, "203.0.113.9", run(map[string]string{"CF-Connecting-IP": "203.0.113.9"}))
	assert.Equal(t, "198.51.100.4", run(map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.1"}))
	assert.Equal(t, "192.0.2.1", run(map[string]string{"X-Real-IP": "192.0.2.1"}))
}
