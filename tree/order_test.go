package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	assert.Equal(t, Less, Compare(1, 2))
	assert.Equal(t, Equal, Compare(2, 2))
	assert.Equal(t, Greater, Compare(3, 2))
	assert.Equal(t, Less, Compare("a", "b"))
	assert.Equal(t, Greater, Compare(1.5, -1.5))
}

func TestOrder_Then(t *testing.T) {
	tests := []struct {
		name  string
		first Order
		next  Order
		want  Order
	}{
		{name: "less wins", first: Less, next: Greater, want: Less},
		{name: "greater wins", first: Greater, next: Less, want: Greater},
		{name: "equal defers less", first: Equal, next: Less, want: Less},
		{name: "equal defers equal", first: Equal, next: Equal, want: Equal},
		{name: "equal defers greater", first: Equal, next: Greater, want: Greater},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.first.Then(tt.next))
		})
	}
}

func TestOrder_String(t *testing.T) {
	assert.Equal(t, "Less", Less.String())
	assert.Equal(t, "Equal", Equal.String())
	assert.Equal(t, "Greater", Greater.String())
	assert.Equal(t, "Order(?)", Order(7).String())
}
