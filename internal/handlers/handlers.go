package handlers

import (
	"fmt"

	"katalog/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// listParamsFromQuery extracts the pagination/filter/sort parameters shared
// by both collection endpoints.
func listParamsFromQuery(c *fiber.Ctx) repositories.ListParams {
	return repositories.ListParams{
		FilterBy:    c.Query("filterBy"),
		FilterValue: c.Query("filterValue"),
		SortBy:      c.Query("sortBy"),
		Order:       c.Query("order"),
		Page:        c.QueryInt("page", repositories.DefaultPage),
		Limit:       c.QueryInt("limit", repositories.DefaultLimit),
	}
}

// validationMessages flattens validator errors into a field -> message map
// for 400 responses.
func validationMessages(err error) map[string]string {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}
