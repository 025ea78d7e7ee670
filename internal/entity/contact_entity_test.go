package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagSetUnion(t *testing.T) {
	tests := []struct {
		name  string
		left  TagSet
		right TagSet
		want  TagSet
	}{
		{name: "overlap", left: TagSet{"a", "b"}, right: TagSet{"b", "c"}, want: TagSet{"a", "b", "c"}},
		{name: "case sensitive", left: TagSet{"vip"}, right: TagSet{"VIP"}, want: TagSet{"vip", "VIP"}},
		{name: "collapses duplicates inside input", left: TagSet{"x", "x"}, right: nil, want: TagSet{"x"}},
		{name: "both empty", left: nil, right: nil, want: TagSet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.left.Union(tt.right))
		})
	}
}

func TestTagSetUnion_DoesNotAlias(t *testing.T) {
	left := TagSet{"a"}
	out := left.Union(TagSet{"b"})
	out[0] = "z"

	assert.Equal(t, TagSet{"a"}, left)
	assert.True(t, left.Contains("a"))
	assert.False(t, left.Contains("b"))
}
