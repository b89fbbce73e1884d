package bulk

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/procuramart/backoffice/internal/core/domain"
)

// Line is one normalized "<qty> <code>" pair from pasted text.
type Line struct {
	Quantity int
	Code     string
}

var lineRe = regexp.MustCompile(`^(\d+)\s+(.+)$`)

// ParseLines splits pasted text into quantity/code pairs. Blank lines
// and lines without a leading integer quantity are dropped without an
// error, as are lines whose quantity is zero. Codes keep internal
// whitespace and are trimmed and upper-cased.
func ParseLines(text string) []Line {
	var lines []Line

	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		m := lineRe.FindStringSubmatch(raw)
		if m == nil {
			continue
		}

		qty, err := strconv.Atoi(m[1])
		if err != nil || qty == 0 {
			continue
		}

		code := domain.NormalizeCode(m[2])
		if code == "" {
			continue
		}

		lines = append(lines, Line{Quantity: qty, Code: code})
	}

	return lines
}
