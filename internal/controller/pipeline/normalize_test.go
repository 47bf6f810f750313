package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		stored string
		want   string
	}{
		{"applied", "applied"},
		{"interview", "interview"},
		{"rejected", "rejected"},
		{"hired", "hired"},
		{"shortlisted", "interview"},
		{"received", "applied"},
		{"reviewed", "applied"},
		{"", "applied"},
		{"on-hold", "applied"},
		{"HIRED", "applied"}, // matching is exact, not case-folded
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeStatus(tc.stored), "normalize(%q)", tc.stored)
	}
}

func TestNormalizeStatusIsStable(t *testing.T) {
	// Two reads of the same stored value must always bucket identically.
	for _, stored := range []string{"shortlisted", "whatever", "hired"} {
		assert.Equal(t, NormalizeStatus(stored), NormalizeStatus(stored))
	}
}
