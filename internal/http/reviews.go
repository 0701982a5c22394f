package http

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/avtoelite/storefront/internal/metrics"
	"github.com/avtoelite/storefront/internal/model"
	"github.com/avtoelite/storefront/internal/repository"
	"github.com/avtoelite/storefront/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type reviewReq struct {
	CustomerName string `json:"customer_name"`
	Rating       int    `json:"rating"`
	Message      string `json:"message"`
}

func listReviewsHandler(reviews repository.ReviewsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		out, err := reviews.ListApproved(c.Request().Context())
		if err != nil {
			log.Errorf("list reviews: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, out)
	}
}

// submitReviewHandler stores a new review. Reviews carry no phone and no
// notification; they go live only after moderation.
func submitReviewHandler(reviews repository.ReviewsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req reviewReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		req.CustomerName = strings.TrimSpace(req.CustomerName)
		req.Message = strings.TrimSpace(req.Message)

		if req.CustomerName == "" || req.Message == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "name and message are required"})
		}
		if req.Rating < 1 || req.Rating > 5 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "rating must be between 1 and 5"})
		}
		if utf8.RuneCountInString(req.Message) > 2000 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "message too long"})
		}

		rv := &model.Review{
			ID:           util.NewID(),
			CustomerName: req.CustomerName,
			Rating:       req.Rating,
			Message:      req.Message,
		}
		if err := reviews.Insert(c.Request().Context(), rv); err != nil {
			log.Errorf("insert review: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		metrics.ReviewsTotal.Inc()

		return c.JSON(http.StatusCreated, rv)
	}
}
