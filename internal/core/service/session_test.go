package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Filters(t *testing.T) {
	s := NewSession()
	assert.NotEmpty(t, s.ID)

	s.SetFilters("Shirt", "M")
	product, size := s.Filters()
	assert.Equal(t, "Shirt", product)
	assert.Equal(t, "M", size)

	// "All" means unfiltered.
	s.SetFilters("All", "All")
	product, size = s.Filters()
	assert.Empty(t, product)
	assert.Empty(t, size)
}

func TestSession_ToggleView(t *testing.T) {
	s := NewSession()
	assert.False(t, s.ViewingLog())
	assert.True(t, s.ToggleView())
	assert.True(t, s.ViewingLog())
	assert.False(t, s.ToggleView())
}

func TestSession_Reset(t *testing.T) {
	s := NewSession()
	s.SetFilters("Shirt", "M")
	s.ToggleView()

	s.Reset()
	product, size := s.Filters()
	assert.Empty(t, product)
	assert.Empty(t, size)
	assert.False(t, s.ViewingLog())
}
