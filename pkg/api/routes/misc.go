package routes

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/busradar/pkg/arrivals"
	"github.com/travigo/busradar/pkg/dataaggregator/source"
	"github.com/travigo/busradar/pkg/routing"
	"github.com/travigo/busradar/pkg/schedule"
)

const (
	LiveDataUnavailableCode    = "LIVE_DATA_UNAVAILABLE"
	LiveDataUnavailableMessage = "Canlı veriye ulaşılamadı. Lütfen daha sonra tekrar deneyin."
	ScheduleUnavailableMessage = "GTFS verileri yüklenemedi"
	RouteNotFoundMessage       = "Hat bulunamadı"
	StopNotFoundMessage        = "Durak bulunamadı"
	NoRouteMessage             = "Rota bulunamadı"
)

func errorResponse(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	return c.JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// lookupError maps an aggregator error onto the API status and message
func lookupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, arrivals.ErrLiveDataUnavailable):
		c.Status(fiber.StatusServiceUnavailable)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   LiveDataUnavailableMessage,
			"code":    LiveDataUnavailableCode,
		})
	case errors.Is(err, source.ErrScheduleUnavailable):
		return errorResponse(c, fiber.StatusServiceUnavailable, ScheduleUnavailableMessage)
	case errors.Is(err, schedule.ErrRouteNotFound):
		return errorResponse(c, fiber.StatusNotFound, RouteNotFoundMessage)
	case errors.Is(err, schedule.ErrStopNotFound):
		return errorResponse(c, fiber.StatusNotFound, StopNotFoundMessage)
	case errors.Is(err, routing.ErrNoRoute):
		return errorResponse(c, fiber.StatusNotFound, NoRouteMessage)
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("Lookup failed")
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
}

// reduce strips fields outside the requested view. view=basic keeps the compact fields only.
func reduce(c *fiber.Ctx, value interface{}) (map[string]interface{}, error) {
	groups := []string{"basic", "detailed"}
	if c.Query("view") == "basic" {
		groups = []string{"basic"}
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, value)
	if err != nil {
		return nil, err
	}

	reducedMap, ok := reduced.(map[string]interface{})
	if !ok {
		return nil, errors.New("reduced value is not an object")
	}

	return reducedMap, nil
}

// queryFloat reads a float query parameter, reporting whether it was present and valid
func queryFloat(c *fiber.Ctx, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}
