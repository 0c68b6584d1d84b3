package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveCompanyName(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"dotted local part", "obras.del-norte@acme.co", "Obras Del Norte"},
		{"single word", "constructora@acme.co", "Constructora"},
		{"underscores and plus tags", "ferre_sur+ventas@acme.co", "Ferre Sur Ventas"},
		{"no at sign", "proveedora", "Proveedora"},
		{"only separators", "...@acme.co", "Empresa"},
		{"empty", "", "Empresa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveCompanyName(tt.email))
		})
	}
}
