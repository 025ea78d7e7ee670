package scope

import "gorm.io/gorm"

// OrderByCreatedAsc keeps duplicate scans deterministic: the grouper's
// tie-break follows input order, so contacts are always loaded oldest first.
func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
