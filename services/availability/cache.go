package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// Day availability is cheap to recompute but hot on booking pages, so the
// calculator keeps a short-TTL Redis cache. Keys embed the staff member's
// index generation: any interval registration or retraction bumps it,
// leaving stale entries unreachable until their TTL reaps them.
func (c *DefaultCalculator) dayKey(service models.Service, staff models.Staff, date time.Time) string {
	return fmt.Sprintf("avail:%s:%d:%s:%s", staff.ID, c.index.generation(staff.ID), date.Format("2006-01-02"), service.ID)
}

func (c *DefaultCalculator) cachedDay(ctx context.Context, service models.Service, staff models.Staff, date time.Time) ([]models.TimeSlot, bool) {
	if c.cache == nil {
		return nil, false
	}

	data, err := c.cache.Get(ctx, c.dayKey(service, staff, date)).Result()
	if err != nil {
		return nil, false
	}
	var slots []models.TimeSlot
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		utils.GetLogger().Warn("discarding undecodable availability cache entry",
			zap.String("staffID", staff.ID), zap.Error(err))
		return nil, false
	}
	return slots, true
}

func (c *DefaultCalculator) storeDay(ctx context.Context, service models.Service, staff models.Staff, date time.Time, slots []models.TimeSlot) {
	if c.cache == nil || len(slots) == 0 {
		return
	}

	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, c.dayKey(service, staff, date), data, c.cacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache day availability",
			zap.String("staffID", staff.ID), zap.Error(err))
	}
}
