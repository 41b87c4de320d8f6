package helper

import (
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"pos_manager/model"
)

// GenerateUniqueOrgSlug derives a URL slug from the organization name,
// appending a counter until it is free.
func GenerateUniqueOrgSlug(tx *gorm.DB, name string) string {
	base := slug.Make(name)
	result := base
	i := 1

	for {
		var count int64
		tx.Model(&model.Organization{}).
			Where("slug = ?", result).
			Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}
