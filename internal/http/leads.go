package http

import (
	"errors"
	"net/http"

	"github.com/avtoelite/storefront/internal/model"
	"github.com/avtoelite/storefront/internal/service/lead"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// submitLeadHandler serves POST /v1/leads/:category for all four lead
// categories through the single generic workflow.
func submitLeadHandler(svc *lead.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		category, ok := model.ParseLeadCategory(c.Param("category"))
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown lead category"})
		}

		var req lead.Request
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}
		req.Category = category

		rec, err := svc.Submit(c.Request().Context(), req)
		if err != nil {
			return leadErrorResponse(c, err)
		}

		return c.JSON(http.StatusCreated, rec)
	}
}

// One human-readable message per error kind; nothing more structured is
// exposed.
func leadErrorResponse(c echo.Context, err error) error {
	if errors.Is(err, lead.ErrInvalidPhone) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error":   "invalid_phone",
			"message": "Введите корректный номер телефона",
		})
	}

	var mf *lead.MissingFieldError
	if errors.As(err, &mf) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error":   "missing_field",
			"field":   mf.Field,
			"message": "Пожалуйста, заполните все обязательные поля",
		})
	}

	var pe *lead.PersistenceError
	if errors.As(err, &pe) {
		log.Errorf("lead persist failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error":   "db_error",
			"message": "Произошла ошибка. Пожалуйста, попробуйте позже",
		})
	}

	log.Errorf("lead submit failed: %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
