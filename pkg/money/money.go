// Package money formatea importes para documentos legibles (comprobantes).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter imprime importes con separadores de miles y dos decimales según el idioma.
type Formatter struct {
	p *message.Printer
}

// NewFormatter construye el formateador para un tag BCP 47 (ej. "es-AR").
func NewFormatter(tag string) *Formatter {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.Spanish
	}
	return &Formatter{p: message.NewPrinter(t)}
}

// Format devuelve "$ 12.345,50" (según idioma). Se redondea a centavos.
func (f *Formatter) Format(amount decimal.Decimal) string {
	v, _ := amount.Round(2).Float64()
	return f.p.Sprintf("$ %v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
