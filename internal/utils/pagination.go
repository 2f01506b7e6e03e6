package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// PageParam extracts the page from the query parameters, falling back to
// the first page when parsing fails.
func PageParam(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// IDParam parses a positive numeric route parameter.
func IDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
