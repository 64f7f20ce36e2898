package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/okrayum/weather-history/internal/history"
	"github.com/okrayum/weather-history/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. defaultWindow
// is the history window served when the caller does not ask for a specific
// count.
func RegisterRoutes(app *fiber.App, service *history.Service, defaultWindow int) {
	if defaultWindow <= 0 {
		defaultWindow = 7
	}

	v1 := app.Group("/api/v1")

	v1.Get("/history/recent", func(c *fiber.Ctx) error {
		req, err := parseHistoryQuery(c, defaultWindow)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		obs, err := service.Recent(req.City, req.Count)
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(fiber.Map{
			"city":         req.City,
			"count":        len(obs),
			"observations": obs,
		})
	})

	v1.Get("/history/stats", func(c *fiber.Ctx) error {
		req, err := parseHistoryQuery(c, defaultWindow)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		stats, err := service.Stats(req.City, req.Count)
		if err != nil {
			return mapServiceError(err)
		}
		if stats.Count == 0 {
			return fiber.NewError(fiber.StatusNotFound, "no weather history for requested city")
		}

		return c.JSON(stats)
	})

	v1.Get("/history/daily", func(c *fiber.Ctx) error {
		req, err := parseHistoryQuery(c, defaultWindow)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		days, err := service.Daily(req.City, req.Count)
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(fiber.Map{
			"city": req.City,
			"days": days,
		})
	})

	v1.Get("/weather/latest", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		reading, err := service.Latest(locReq.toLocation())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data for requested location")
			}
			return mapServiceError(err)
		}

		return c.JSON(fiber.Map{
			"reading": reading,
			"derived": history.DeriveFeatures(reading),
		})
	})

	v1.Post("/collect", func(c *fiber.Ctx) error {
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		obs, err := service.Collect(c.UserContext(), locReq.toLocation())
		if err != nil {
			if errors.Is(err, history.ErrNoData) {
				return fiber.NewError(fiber.StatusBadGateway, "no weather data available from providers")
			}
			return mapServiceError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(obs)
	})

	v1.Post("/locations", func(c *fiber.Ctx) error {
		var req locationBody
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := history.Location{City: req.City, Country: req.Country}
		if err := service.AddLocation(loc); err != nil {
			return mapServiceError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(loc)
	})

	v1.Get("/locations", func(c *fiber.Ctx) error {
		locs, err := service.Locations()
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{"locations": locs})
	})

	v1.Get("/collections", func(c *fiber.Ctx) error {
		limit := 50
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive integer")
			}
			limit = n
		}

		entries, err := service.CollectionLog(limit)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{"entries": entries})
	})
}

// mapServiceError translates domain errors to HTTP status codes. Storage
// failures are surfaced as 500 so the UI layer can degrade to an empty
// history instead of crashing.
func mapServiceError(err error) error {
	if history.IsValidation(err) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if history.IsPersistence(err) {
		return fiber.NewError(fiber.StatusInternalServerError, "history storage unavailable")
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string
}

func (l locationQuery) toLocation() history.Location {
	return history.Location{
		City:    l.City,
		Country: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = c.Query("city")
	q.Country = c.Query("country")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// historyQuery holds query parameters for the history endpoints.
type historyQuery struct {
	City  string `validate:"required"`
	Count int    `validate:"min=1,max=365"`
}

func parseHistoryQuery(c *fiber.Ctx, defaultWindow int) (historyQuery, error) {
	q := historyQuery{
		City:  c.Query("city"),
		Count: defaultWindow,
	}

	if v := c.Query("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, errors.New("count must be an integer")
		}
		q.Count = n
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// locationBody is the JSON body for registering a location.
type locationBody struct {
	City    string `json:"city" validate:"required"`
	Country string `json:"country"`
}
