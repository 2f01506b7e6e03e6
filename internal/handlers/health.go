package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Checker is a storage backend that can report its health.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheck reports the process and, when it can tell, storage health.
func (d *Deps) HealthCheck(c *fiber.Ctx) error {
	storage := "ok"
	if chk, ok := d.Repo.(Checker); ok {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := chk.HealthCheck(ctx); err != nil {
			storage = "unavailable"
		}
	}

	status, overall := fiber.StatusOK, "ok"
	if storage != "ok" {
		status, overall = fiber.StatusServiceUnavailable, "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"services": fiber.Map{
			"storage": storage,
		},
	})
}
