package specification

import (
	"strings"

	"gorm.io/gorm"
)

type ByDocumentNumber struct {
	DocumentNumber string
}

func (s ByDocumentNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_number = ?", s.DocumentNumber)
}

// MatchAnyKeyword filters rows where title, abstract or full text contains at
// least one keyword, case-insensitive. Ranking by match count happens in Go
// afterwards.
type MatchAnyKeyword struct {
	Keywords []string
}

func (s MatchAnyKeyword) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Keywords) == 0 {
		return db
	}
	var clauses []string
	var args []interface{}
	for _, kw := range s.Keywords {
		pattern := "%" + strings.ToLower(kw) + "%"
		clauses = append(clauses, "(LOWER(title) LIKE ? OR LOWER(abstract) LIKE ? OR LOWER(full_text) LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}

// MostRecentFirst orders by publication date descending. Rows without a
// publication date sort last; document number breaks ties for stable output.
type MostRecentFirst struct{}

func (s MostRecentFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("publication_date DESC NULLS LAST").Order("document_number DESC")
}

type Limit struct {
	Count int
}

func (s Limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Count)
}
