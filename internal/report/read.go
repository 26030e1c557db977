// internal/report/read.go
package report

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
)

// ReadStats counts what happened to each input line.
type ReadStats struct {
	Lines        int
	Blank        int
	Parsed       int
	TooFewFields int
	BadNumber    int
}

// Skipped is the number of non-blank lines that produced no record.
func (s ReadStats) Skipped() int { return s.TooFewFields + s.BadNumber }

// ctxCheckEvery bounds how many lines are read between cancellation checks.
const ctxCheckEvery = 4096

// Read parses every line of r in order. Malformed lines are logged at debug
// level and counted, never returned as errors. Only read failures and
// context cancellation end the scan early.
func Read(ctx context.Context, r io.Reader, log *zap.Logger) ([]Record, ReadStats, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var (
		out   []Record
		stats ReadStats
	)
	br := bufio.NewReader(r)
	for {
		if stats.Lines%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return out, stats, err
			}
		}
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			stats.Lines++
			handleLine(line, stats.Lines, &out, &stats, log)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, stats, err
		}
	}
	return out, stats, nil
}

func handleLine(line string, n int, out *[]Record, stats *ReadStats, log *zap.Logger) {
	if strings.TrimSpace(line) == "" {
		stats.Blank++
		return
	}
	rec, err := ParseLine(line)
	switch {
	case err == nil:
		stats.Parsed++
		*out = append(*out, rec)
		return
	case errors.Is(err, ErrTooFewFields):
		stats.TooFewFields++
	case errors.Is(err, ErrBadNumber):
		stats.BadNumber++
	}
	log.Debug("skipping report line", zap.Int("line", n), zap.Error(err))
}
