package dedupe

import "brandlink-be/internal/entity"

// Grouping is an insertion-ordered mapping of identity key to contacts.
type Grouping struct {
	keys    []string
	buckets map[string][]*entity.Contact
}

// GroupByKey buckets contacts by DeriveKey in a single pass. Buckets keep
// the relative input order of their members and keys are remembered in
// first-seen order.
func GroupByKey(contacts []*entity.Contact) *Grouping {
	g := &Grouping{
		keys:    make([]string, 0),
		buckets: make(map[string][]*entity.Contact),
	}

	for _, c := range contacts {
		key := DeriveKey(c)
		if _, ok := g.buckets[key]; !ok {
			g.keys = append(g.keys, key)
			g.buckets[key] = make([]*entity.Contact, 0, 1)
		}
		g.buckets[key] = append(g.buckets[key], c)
	}

	return g
}

// Keys returns bucket keys in first-seen order.
func (g *Grouping) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Bucket returns the contacts under key in input order, or nil for an unknown key.
func (g *Grouping) Bucket(key string) []*entity.Contact {
	return g.buckets[key]
}

// Len is the number of buckets.
func (g *Grouping) Len() int {
	return len(g.keys)
}

// Total is the number of contacts across all buckets.
func (g *Grouping) Total() int {
	total := 0
	for _, bucket := range g.buckets {
		total += len(bucket)
	}
	return total
}
