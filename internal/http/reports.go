package http

import (
	"net/http"
	"strconv"

	"github.com/avtoelite/storefront/internal/model"
	"github.com/avtoelite/storefront/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func leadStatsHandler(chRepo repository.CHLeadsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := chRepo.Stats(c.Request().Context())
		if err != nil {
			log.Errorf("lead stats: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, map[string]any{"stats": stats})
	}
}

func listLeadEventsHandler(chRepo repository.CHLeadsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		var category model.LeadCategory
		if v := c.QueryParam("category"); v != "" {
			parsed, ok := model.ParseLeadCategory(v)
			if !ok {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid category"})
			}
			category = parsed
		}

		limit := 50
		offset := 0
		if v := c.QueryParam("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
				limit = n
			}
		}
		if v := c.QueryParam("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		rows, err := chRepo.List(c.Request().Context(), category, limit, offset)
		if err != nil {
			log.Errorf("list lead events: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"leads":  rows,
			"limit":  limit,
			"offset": offset,
		})
	}
}
