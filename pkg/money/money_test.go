package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	es := NewFormatter("es")
	assert.Equal(t, "$ 12.345,50", es.Format(decimal.RequireFromString("12345.5")))
	assert.Equal(t, "$ 30,00", es.Format(decimal.NewFromInt(30)))

	en := NewFormatter("en")
	assert.Equal(t, "$ 1,234.57", en.Format(decimal.RequireFromString("1234.567")))
}

func TestFormat_TagInvalido(t *testing.T) {
	f := NewFormatter("%%")
	assert.Equal(t, "$ 10,00", f.Format(decimal.NewFromInt(10)))
}
