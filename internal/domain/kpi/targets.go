package kpi

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var esCL = message.NewPrinter(language.MustParse("es-CL"))

// FormatKg cantidad con separador de miles chileno, hasta 3 decimales.
func FormatKg(v decimal.Decimal) string {
	return esCL.Sprint(number.Decimal(v.InexactFloat64(), number.MaxFractionDigits(3)))
}

// FormatUsd monto en USD con separador de miles chileno y 2 decimales.
func FormatUsd(v decimal.Decimal) string {
	return esCL.Sprint(number.Decimal(v.Round(2).InexactFloat64(), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Attainment real/meta × 100 redondeado a entero. nil si la meta es nil o cero.
func Attainment(actual decimal.Decimal, target *decimal.Decimal) *decimal.Decimal {
	if target == nil || target.IsZero() {
		return nil
	}
	pct := actual.Mul(hundred).Div(*target).Round(0)
	return &pct
}

// ToneFor warning solo si hay meta positiva y el real queda bajo ella.
func ToneFor(actual decimal.Decimal, target *decimal.Decimal) Tone {
	if target != nil && target.IsPositive() && actual.LessThan(*target) {
		return ToneWarning
	}
	return ToneGood
}

func ordersTile(actual int, target *decimal.Decimal) TargetTile {
	a := decimal.NewFromInt(int64(actual))
	tile := TargetTile{Actual: a, Target: target, Tone: ToneFor(a, target), Text: "Meta: sin definir"}
	if pct := Attainment(a, target); pct != nil {
		tile.AttainmentPct = pct
		tile.Text = fmt.Sprintf("%d/%s (%s%%)", actual, target.String(), pct.String())
	}
	return tile
}

func kgTile(actual decimal.Decimal, target *decimal.Decimal) TargetTile {
	tile := TargetTile{Actual: actual, Target: target, Tone: ToneFor(actual, target), Text: "Meta kg: sin definir"}
	if pct := Attainment(actual, target); pct != nil {
		tile.AttainmentPct = pct
		tile.Text = fmt.Sprintf("%s / %s (%s%%)", FormatKg(actual), FormatKg(*target), pct.String())
	}
	return tile
}

func otifTile(otif OTIF, target *decimal.Decimal) TargetTile {
	tile := TargetTile{Actual: otif.Pct, Target: target, Tone: ToneFor(otif.Pct, target)}
	tile.AttainmentPct = Attainment(otif.Pct, target)
	if otif.Total == 0 {
		tile.Text = "Sin cierres en período"
		return tile
	}
	meta := "-"
	if target != nil && !target.IsZero() {
		meta = target.String() + "%"
	}
	tile.Text = fmt.Sprintf("%d/%d (meta %s)", otif.OK, otif.Total, meta)
	return tile
}
