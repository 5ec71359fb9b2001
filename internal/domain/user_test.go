package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceValue(t *testing.T) {
	tests := []struct {
		price string
		want  float64
		ok    bool
	}{
		{"$35/hr", 35, true},
		{"$42.50", 42.5, true},
		{"60", 60, true},
		{"договорная", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			subj := TutorSubject{Price: tt.price}
			got, ok := subj.PriceValue()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestPriceRangeContains(t *testing.T) {
	r := PriceRange{Min: 30, Max: 50}

	// Границы коридора включаются.
	assert.True(t, r.Contains(30))
	assert.True(t, r.Contains(50))
	assert.True(t, r.Contains(35))
	assert.False(t, r.Contains(29.99))
	assert.False(t, r.Contains(60))
}

func TestFullName(t *testing.T) {
	u := User{FirstName: "Анна", LastName: "Тьюторова"}
	assert.Equal(t, "Анна Тьюторова", u.FullName())
}
