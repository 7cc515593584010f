package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/movilidad/internal/textnorm"
)

func TestStripAccents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Acute", input: "Ángela Ruíz", want: "Angela Ruiz"},
		{name: "Tilde", input: "Ñúñez", want: "Nunez"},
		{name: "Diaeresis", input: "Güemes", want: "Guemes"},
		{name: "Plain", input: "Centro de Costo", want: "Centro de Costo"},
		{name: "Empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.StripAccents(tt.input))
		})
	}
}
