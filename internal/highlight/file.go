package highlight

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/username/calview/pkg/dateutil"
	"go.uber.org/zap"
)

// LoadDates reads highlight dates from a line-oriented text file.
//
// Format: one date per line, in any format dateutil.ParseDate accepts.
// Blank lines and lines starting with "#" are skipped. Lines that fail to
// parse are logged and skipped rather than failing the whole file.
func LoadDates(path string, logger *zap.Logger) ([]time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open highlight file: %w", err)
	}
	defer file.Close()

	var dates []time.Time

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		date, err := dateutil.ParseDate(line)
		if err != nil {
			logger.Warn("Skipping invalid highlight date",
				zap.String("file", path),
				zap.String("line", line))
			continue
		}

		dates = append(dates, date)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading highlight file: %w", err)
	}

	logger.Info("Highlight file loaded",
		zap.String("file", path),
		zap.Int("dates", len(dates)))

	return dates, nil
}
