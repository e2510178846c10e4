package holidays

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileSource reads holiday dates from a local text file.
//
// File format, one holiday per line:
//
//	# comment
//	2024-07-04 Independence Day
//	2024-12-25
//
// The trailing note is optional and ignored beyond logging.
type FileSource struct {
	filePath string
	loc      *time.Location
	logger   *zap.Logger
	byYear   map[int][]time.Time
}

// NewFileSource creates a FileSource for filePath; dates are constructed in
// loc. Call Load before requesting holidays.
func NewFileSource(filePath string, loc *time.Location, logger *zap.Logger) *FileSource {
	if loc == nil {
		loc = time.Local
	}
	return &FileSource{
		filePath: filePath,
		loc:      loc,
		logger:   logger,
		byYear:   make(map[int][]time.Time),
	}
}

// Load parses the holiday file. Malformed lines are logged and skipped so a
// single bad entry does not discard the rest of the file.
func (fs *FileSource) Load() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	loaded := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		dateStr, _, _ := strings.Cut(line, " ")
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, fs.loc)
		if err != nil {
			fs.logger.Warn("Failed to parse holiday date",
				zap.String("line", line),
				zap.Error(err))
			continue
		}

		fs.byYear[parsed.Year()] = append(fs.byYear[parsed.Year()], parsed)
		loaded++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	fs.logger.Info("Holiday file loaded",
		zap.String("file", fs.filePath),
		zap.Int("holidays", loaded),
		zap.Int("years", len(fs.byYear)))

	return nil
}

// Holidays returns the loaded holidays for year. A year with no entries in
// the file yields an empty slice, not an error; the file is authoritative
// for whatever span it covers.
func (fs *FileSource) Holidays(year int) ([]time.Time, error) {
	dates := fs.byYear[year]
	out := make([]time.Time, len(dates))
	copy(out, dates)
	return out, nil
}
