package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"clinicport/config"
	"clinicport/models"
	"clinicport/services/appointment"
	"clinicport/services/schedule"
	"clinicport/utils"
)

const availabilityCachePrefix = "availability:"

// ScheduleHandler serves the slot picker: the day's schedule config
// and which slots are still free.
type ScheduleHandler struct {
	Service appointment.SchedulingService
	Cache   *redis.Client
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(svc appointment.SchedulingService, cache *redis.Client) *ScheduleHandler {
	return &ScheduleHandler{Service: svc, Cache: cache}
}

// ConfigHandler returns the working hours and approval policy for a
// date, for "hours available today" messaging.
func (h *ScheduleHandler) ConfigHandler(c *gin.Context) {
	day, err := schedule.ParseDate(c.Param("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", "must be YYYY-MM-DD")
		return
	}
	c.JSON(http.StatusOK, schedule.ResolveConfig(day))
}

// AvailabilityHandler returns the free slots for a date. Responses are
// cached briefly; the reservation transaction is what prevents double
// booking, so a slightly stale picker is acceptable.
func (h *ScheduleHandler) AvailabilityHandler(c *gin.Context) {
	date := c.Param("date")

	if cached := h.readCache(c.Request.Context(), date); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	day, err := h.Service.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	h.writeCache(c.Request.Context(), date, day)
	c.JSON(http.StatusOK, day)
}

func (h *ScheduleHandler) readCache(ctx context.Context, date string) *models.DayAvailability {
	if h.Cache == nil {
		return nil
	}
	data, err := h.Cache.Get(ctx, availabilityCachePrefix+date).Result()
	if err != nil {
		return nil
	}
	var day models.DayAvailability
	if err := json.Unmarshal([]byte(data), &day); err != nil {
		return nil
	}
	return &day
}

func (h *ScheduleHandler) writeCache(ctx context.Context, date string, day *models.DayAvailability) {
	if h.Cache == nil {
		return
	}
	ttl := time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(day)
	if err != nil {
		return
	}
	if err := h.Cache.Set(ctx, availabilityCachePrefix+date, data, ttl).Err(); err != nil {
		utils.GetLogger().Warn("availability cache write failed",
			zap.String("date", date), zap.Error(err))
	}
}
