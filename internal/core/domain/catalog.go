package domain

import (
	"strings"
	"time"
)

// CatalogReference is a canonical product code record. Codes are
// unique after normalization.
type CatalogReference struct {
	ID        uint64
	Code      string
	Comment   string
	CreatedAt time.Time
}

// NormalizeCode trims and upper-cases a product code to its canonical
// form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
