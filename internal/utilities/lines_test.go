package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinesToArray(t *testing.T) {
	assert.Equal(t,
		[]string{"5+ years Go", "Postgres", "Gin"},
		LinesToArray("5+ years Go\n  Postgres  \n\nGin\n"))
	assert.Empty(t, LinesToArray(""))
	assert.Empty(t, LinesToArray("\n \n"))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"Yes", "No"}, "No"))
	assert.False(t, Contains([]string{"Yes", "No"}, "no"))
}
