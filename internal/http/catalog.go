package http

import (
	"net/http"

	"github.com/avtoelite/storefront/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func listBrandsHandler(brands repository.BrandsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		out, err := brands.List(c.Request().Context())
		if err != nil {
			log.Errorf("list brands: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, out)
	}
}

func getBrandHandler(brands repository.BrandsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		b, err := brands.GetBySlug(c.Request().Context(), c.Param("slug"))
		if err != nil {
			log.Errorf("get brand: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if b == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "brand not found"})
		}
		return c.JSON(http.StatusOK, b)
	}
}

// listBrandCarsHandler returns available cars of a brand, newest first.
func listBrandCarsHandler(brands repository.BrandsRepository, cars repository.CarsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		b, err := brands.GetBySlug(c.Request().Context(), c.Param("slug"))
		if err != nil {
			log.Errorf("get brand: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if b == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "brand not found"})
		}

		out, err := cars.ListByBrand(c.Request().Context(), b.ID)
		if err != nil {
			log.Errorf("list brand cars: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, out)
	}
}

func getCarHandler(cars repository.CarsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		car, err := cars.GetByID(c.Request().Context(), c.Param("id"))
		if err != nil {
			log.Errorf("get car: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if car == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "car not found"})
		}
		return c.JSON(http.StatusOK, car)
	}
}

func listNewArrivalsHandler(cars repository.CarsRepository, limit int) echo.HandlerFunc {
	return func(c echo.Context) error {
		out, err := cars.ListNewArrivals(c.Request().Context(), limit)
		if err != nil {
			log.Errorf("list new arrivals: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		return c.JSON(http.StatusOK, out)
	}
}

func getContactsHandler(contacts repository.ContactsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		ci, err := contacts.Get(c.Request().Context())
		if err != nil {
			log.Errorf("get contacts: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if ci == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "contacts not configured"})
		}
		return c.JSON(http.StatusOK, ci)
	}
}
