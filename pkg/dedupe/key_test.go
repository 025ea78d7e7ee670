package dedupe

import (
	"testing"

	"brandlink-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(str("")))
	assert.True(t, IsBlank(str(" \t\n ")))
	assert.False(t, IsBlank(str("x")))
	assert.False(t, IsBlank(str("  x  ")))
}

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name    string
		contact *entity.Contact
		want    string
	}{
		{
			name:    "email wins over everything",
			contact: &entity.Contact{Id: id(1), Email: str("  John@X.com "), Name: str("John"), Company: str("Acme")},
			want:    "john@x.com",
		},
		{
			name:    "name and company",
			contact: &entity.Contact{Id: id(2), Name: str(" Bob "), Company: str("Co1")},
			want:    "bob|co1",
		},
		{
			name:    "blank email falls through",
			contact: &entity.Contact{Id: id(3), Email: str("   "), Name: str("Bob"), Company: str("CO1")},
			want:    "bob|co1",
		},
		{
			name:    "name only",
			contact: &entity.Contact{Id: id(4), Name: str("Alice"), Company: str(" ")},
			want:    "alice",
		},
		{
			name:    "company only",
			contact: &entity.Contact{Id: id(5), Company: str(" Tech Corp ")},
			want:    "tech corp",
		},
		{
			name:    "no identity falls back to id",
			contact: &entity.Contact{Id: id(6), Title: str("CEO")},
			want:    id(6).String(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveKey(tt.contact))
		})
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	c := &entity.Contact{Id: id(1), Name: str("Jane"), Company: str("Tech")}
	first := DeriveKey(c)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, DeriveKey(c))
	}
}

func TestDeriveKey_EmailPrecedence(t *testing.T) {
	a := &entity.Contact{Id: id(1), Email: str("SAME@example.com"), Name: str("A"), Company: str("One"), Title: str("CEO")}
	b := &entity.Contact{Id: id(2), Email: str("same@EXAMPLE.com "), Name: str("B"), Company: str("Two")}

	assert.Equal(t, DeriveKey(a), DeriveKey(b))
}
