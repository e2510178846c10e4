package holidays

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// HTTPSource fetches holidays from a year-calendar service that serves the
// xmlcalendar compact JSON format:
//
//	{"year":2024,"months":[{"month":1,"days":"1,2,3+,8*,13,14"}]}
//
// Day markers: "*" flags a shortened working day (kept as a working day, so
// excluded here), "+" flags a transferred day off (included). Unmarked days
// are plain non-working days.
type HTTPSource struct {
	urlTemplate string
	loc         *time.Location
	httpClient  *http.Client
	logger      *zap.Logger
	cacheTTL    time.Duration
	cacheMu     sync.RWMutex
	cache       map[int]*cachedYear
}

type cachedYear struct {
	dates     []time.Time
	fetchedAt time.Time
}

type yearPayload struct {
	Year   int            `json:"year"`
	Months []monthPayload `json:"months"`
}

type monthPayload struct {
	Month int    `json:"month"`
	Days  string `json:"days"`
}

// NewHTTPSource creates an HTTPSource. urlTemplate must contain a "{year}"
// placeholder; dates are constructed in loc.
func NewHTTPSource(urlTemplate string, loc *time.Location, cacheTTL time.Duration, logger *zap.Logger) *HTTPSource {
	if loc == nil {
		loc = time.Local
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &HTTPSource{
		urlTemplate: urlTemplate,
		loc:         loc,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:   logger,
		cacheTTL: cacheTTL,
		cache:    make(map[int]*cachedYear),
	}
}

// Holidays returns the holidays of year, fetching and caching the year
// payload on first use.
func (hs *HTTPSource) Holidays(year int) ([]time.Time, error) {
	hs.cacheMu.RLock()
	if cached, ok := hs.cache[year]; ok {
		if time.Since(cached.fetchedAt) < hs.cacheTTL {
			hs.cacheMu.RUnlock()
			hs.logger.Debug("Using cached holiday data", zap.Int("year", year))
			return cached.dates, nil
		}
	}
	hs.cacheMu.RUnlock()

	payload, err := hs.fetchYear(year)
	if err != nil {
		return nil, err
	}

	dates, err := hs.parseYear(payload)
	if err != nil {
		return nil, err
	}

	hs.cacheMu.Lock()
	hs.cache[year] = &cachedYear{dates: dates, fetchedAt: time.Now()}
	hs.cacheMu.Unlock()

	hs.logger.Info("Holiday data fetched",
		zap.Int("year", year),
		zap.Int("holidays", len(dates)))

	return dates, nil
}

// ClearCache drops all cached year data.
func (hs *HTTPSource) ClearCache() {
	hs.cacheMu.Lock()
	defer hs.cacheMu.Unlock()

	hs.cache = make(map[int]*cachedYear)
	hs.logger.Info("Holiday cache cleared")
}

func (hs *HTTPSource) fetchYear(year int) (*yearPayload, error) {
	url := strings.ReplaceAll(hs.urlTemplate, "{year}", strconv.Itoa(year))

	hs.logger.Debug("Fetching holiday calendar",
		zap.String("url", url),
		zap.Int("year", year))

	resp, err := hs.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holiday data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d", resp.StatusCode)
	}

	var payload yearPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse holiday JSON: %w", err)
	}

	return &payload, nil
}

// parseYear expands the compact month-day strings into concrete dates.
// Unparseable entries are logged and skipped.
func (hs *HTTPSource) parseYear(payload *yearPayload) ([]time.Time, error) {
	if payload.Year == 0 {
		return nil, fmt.Errorf("holiday payload has no year")
	}

	var dates []time.Time
	for _, month := range payload.Months {
		if month.Month < 1 || month.Month > 12 {
			hs.logger.Warn("Skipping month outside 1..12",
				zap.Int("month", month.Month))
			continue
		}
		if month.Days == "" {
			continue
		}

		for _, part := range strings.Split(month.Days, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			if strings.HasSuffix(part, "*") {
				// Shortened working day, not a holiday.
				continue
			}
			part = strings.TrimSuffix(part, "+")

			day, err := strconv.Atoi(part)
			if err != nil {
				hs.logger.Warn("Failed to parse day number",
					zap.Int("month", month.Month),
					zap.String("part", part),
					zap.Error(err))
				continue
			}

			dates = append(dates, time.Date(payload.Year, time.Month(month.Month),
				day, 0, 0, 0, 0, hs.loc))
		}
	}

	return dates, nil
}
