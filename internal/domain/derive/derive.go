// Package derive contiene las funciones puras que calculan campos derivados
// de pedidos, solicitudes y embarques. Ningún campo derivado se guarda sin
// recalcularse desde sus entradas.
package derive

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/mf-comercial/internal/domain"
	"github.com/jhoicas/mf-comercial/internal/domain/entity"
)

// LbPerKg factor USD/lb → USD/kg.
var LbPerKg = decimal.RequireFromString("2.20462262")

// ETDRisk semáforo de ETD.
type ETDRisk string

const (
	RiskRed    ETDRisk = "red"
	RiskYellow ETDRisk = "yellow"
	RiskGreen  ETDRisk = "green"
)

// etdYellowDays días hasta ETD que todavía se consideran en riesgo.
const etdYellowDays = 14

// ETABucket tramo de días hasta ETA.
type ETABucket string

const (
	ETAOverdue ETABucket = "OVERDUE"
	ETA0to7    ETABucket = "0-7D"
	ETA8to14   ETABucket = "8-14D"
	ETA15to30  ETABucket = "15-30D"
	ETAOver30  ETABucket = "30+D"
	ETAMissing ETABucket = "NO_ETA"
)

// ETABuckets orden fijo de los tramos para gráficos.
var ETABuckets = []ETABucket{ETAOverdue, ETA0to7, ETA8to14, ETA15to30, ETAOver30, ETAMissing}

// Label texto visible del tramo.
func (b ETABucket) Label() string {
	switch b {
	case ETAOverdue:
		return "VENCIDA"
	case ETAMissing:
		return "SIN ETA"
	default:
		return string(b)
	}
}

// ShippingInstructionsOK true si consignee y notify tienen contenido.
func ShippingInstructionsOK(consignee, notify string) bool {
	return strings.TrimSpace(consignee) != "" && strings.TrimSpace(notify) != ""
}

// ShippingStatus versión de ShippingInstructionsOK para Solicitudes.
func ShippingStatus(consignee, notify string) entity.ShippingStatus {
	if ShippingInstructionsOK(consignee, notify) {
		return entity.ShippingOK
	}
	return entity.ShippingPending
}

// ETDRiskBucket rojo si la ETD ya pasó, amarillo si faltan 14 días o menos.
// ETD ausente o mal formada es verde.
func ETDRiskBucket(etd string, now time.Time, loc *time.Location) ETDRisk {
	diff, ok := DayDiff(etd, now, loc)
	if !ok {
		return RiskGreen
	}
	switch {
	case diff < 0:
		return RiskRed
	case diff <= etdYellowDays:
		return RiskYellow
	default:
		return RiskGreen
	}
}

// ETARiskBucket tramo de la ETA respecto de hoy.
func ETARiskBucket(eta string, now time.Time, loc *time.Location) ETABucket {
	diff, ok := DayDiff(eta, now, loc)
	if !ok {
		return ETAMissing
	}
	switch {
	case diff < 0:
		return ETAOverdue
	case diff <= 7:
		return ETA0to7
	case diff <= 14:
		return ETA8to14
	case diff <= 30:
		return ETA15to30
	default:
		return ETAOver30
	}
}

// PriceToUsdPerKg convierte un precio a USD/kg.
func PriceToUsdPerKg(p entity.Price) decimal.Decimal {
	if strings.EqualFold(p.UOM, entity.UOMLb) {
		return p.Value.Mul(LbPerKg)
	}
	return p.Value
}

// WeightedAvgPriceUsdPerKg Σ(precio_i × kg_i) / Σ kg_i. Cero si no hay volumen.
func WeightedAvgPriceUsdPerKg(items []entity.RequestItem) decimal.Decimal {
	totalKg := decimal.Zero
	acc := decimal.Zero
	for _, it := range items {
		totalKg = totalKg.Add(it.Volume.Value)
		acc = acc.Add(PriceToUsdPerKg(it.Price).Mul(it.Volume.Value))
	}
	if totalKg.IsZero() {
		return decimal.Zero
	}
	return acc.Div(totalKg)
}

// DeriveSpecie heurística por texto: "coho" → COHO; "atlantic" o "salar" → ATLANTIC.
// La agrupación de mix en KPI depende de esta regla exacta.
func DeriveSpecie(product string) entity.Specie {
	p := fold(product)
	switch {
	case strings.Contains(p, "coho"):
		return entity.SpecieCoho
	case strings.Contains(p, "atlantic"), strings.Contains(p, "salar"):
		return entity.SpecieAtlantic
	default:
		return entity.SpecieOther
	}
}

// CountryOther país no reconocido.
const CountryOther = "OTRO"

// countryKeywords tabla de palabras clave → país, evaluada en orden.
var countryKeywords = []struct {
	keyword string
	country string
}{
	{"vietnam", "VIETNAM"},
	{"china", "CHINA"},
	{"brazil", "BRAZIL"},
	{"russia", "RUSSIA"},
	{"korea", "KOREA"},
	{"philippines", "PHILIPPINES"},
	{"thailand", "THAILAND"},
	{"malaysia", "MALAYSIA"},
	{"singapore", "SINGAPORE"},
}

// GuessCountry deduce el país desde el texto de destino.
func GuessCountry(destination string) string {
	d := fold(destination)
	for _, kw := range countryKeywords {
		if strings.Contains(d, kw.keyword) {
			return kw.country
		}
	}
	return CountryOther
}

var piPattern = regexp.MustCompile(`^[A-Za-z0-9]{4,10}(-[A-Za-z0-9]{4,10})?$`)

// ValidatePI devuelve el PI sin espacios o ErrInvalidPI.
func ValidatePI(pi string) (string, error) {
	v := strings.TrimSpace(pi)
	if v == "" {
		return "", fmt.Errorf("PI vacío: %w", domain.ErrInvalidPI)
	}
	if !piPattern.MatchString(v) {
		return "", fmt.Errorf("PI %q: %w", v, domain.ErrInvalidPI)
	}
	return v, nil
}

// ProductSummary "producto (calibre)" para una línea, "MIX (n líneas)" para varias.
func ProductSummary(items []entity.RequestItem) string {
	if len(items) == 1 {
		return fmt.Sprintf("%s (%s)", items[0].Product, items[0].Size)
	}
	return fmt.Sprintf("MIX (%d líneas)", len(items))
}

// MatchesFilter coincidencia por subcadena sin distinguir mayúsculas. Filtro vacío siempre coincide.
func MatchesFilter(field, filter string) bool {
	f := fold(strings.TrimSpace(filter))
	if f == "" {
		return true
	}
	return strings.Contains(fold(strings.TrimSpace(field)), f)
}

func fold(s string) string {
	return cases.Fold().String(s)
}
