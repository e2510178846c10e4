package holidays

import (
	"time"

	"go.uber.org/zap"
)

// Composite queries a primary source and falls back to a secondary one when
// the primary fails, logging the failure.
type Composite struct {
	primary  Source
	fallback Source
	logger   *zap.Logger
}

// NewComposite creates a Composite over primary and fallback.
func NewComposite(primary, fallback Source, logger *zap.Logger) *Composite {
	return &Composite{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Holidays returns the primary source's holidays for year, or the fallback's
// when the primary fails.
func (c *Composite) Holidays(year int) ([]time.Time, error) {
	dates, err := c.primary.Holidays(year)
	if err == nil {
		return dates, nil
	}

	c.logger.Warn("Primary holiday source failed, falling back",
		zap.Int("year", year),
		zap.Error(err))

	return c.fallback.Holidays(year)
}
