package specification

import "gorm.io/gorm"

// Specification narrows a query. Repositories apply them in order, so
// callers compose filters, ordering and paging from small pieces.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
