package dedupe

import (
	"sort"

	"brandlink-be/internal/entity"
)

// DuplicateGroup is a key shared by two or more contacts. Count always
// equals len(Contacts).
type DuplicateGroup struct {
	Key      string
	Count    int
	Contacts []*entity.Contact
}

// FindDuplicateGroups returns every bucket with more than one member,
// largest first. Equal sizes keep the grouper's key order.
func FindDuplicateGroups(contacts []*entity.Contact) []DuplicateGroup {
	grouping := GroupByKey(contacts)

	groups := make([]DuplicateGroup, 0)
	for _, key := range grouping.keys {
		bucket := grouping.buckets[key]
		if len(bucket) <= 1 {
			continue
		}
		groups = append(groups, DuplicateGroup{
			Key:      key,
			Count:    len(bucket),
			Contacts: bucket,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	return groups
}
