package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	r := Rect{Min: Point{X: 10, Y: 10}, Max: Point{X: 230, Y: 140}}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{X: 100, Y: 50}, true},
		{"left edge", Point{X: 10, Y: 50}, false},
		{"right edge", Point{X: 230, Y: 50}, false},
		{"top edge", Point{X: 100, Y: 10}, false},
		{"bottom edge", Point{X: 100, Y: 140}, false},
		{"outside", Point{X: 300, Y: 300}, false},
		{"corner", Point{X: 10, Y: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}
}

func TestRectValid(t *testing.T) {
	assert.True(t, Rect{Max: Point{X: 1, Y: 1}}.Valid())
	assert.False(t, Rect{Max: Point{X: 1, Y: 0}}.Valid())
	assert.False(t, Rect{Min: Point{X: 2, Y: 0}, Max: Point{X: 1, Y: 1}}.Valid())
}

func TestRectExtent(t *testing.T) {
	r := Rect{Min: Point{X: 10, Y: 20}, Max: Point{X: 230, Y: 150}}
	assert.Equal(t, 220.0, r.Width())
	assert.Equal(t, 130.0, r.Height())
}
