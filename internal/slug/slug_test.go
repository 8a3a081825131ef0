package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Summer Favorites", "summer-favorites"},
		{"Café au Lait", "cafe-au-lait"},
		{"Vinyl/Tapes", "vinyl-tapes"},
		{"  Spaced  Out  ", "spaced-out"},
		{"UPPER", "upper"},
		{"already-a-slug", "already-a-slug"},
		{"100% Cotton!", "100-cotton"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Make(tt.in), "Make(%q)", tt.in)
	}
}
