package dedupe

import (
	"fmt"

	"brandlink-be/internal/entity"

	"github.com/google/uuid"
)

func str(s string) *string {
	return &s
}

func id(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

func contactIds(contacts []*entity.Contact) []uuid.UUID {
	ids := make([]uuid.UUID, len(contacts))
	for i, c := range contacts {
		ids[i] = c.Id
	}
	return ids
}
