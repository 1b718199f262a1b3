package extract

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	monedaSoles   = "soles"
	monedaDolares = "dólares"

	// Defaults for the payment extractor.
	defaultDiaPago             = 5
	defaultMesesIncumplimiento = 2
	cuentaGenerica             = "Cuenta bancaria"
)

var (
	numeroRe        = regexp.MustCompile(`(\d+[\d\.,]*)`)
	rentaMensualRe  = regexp.MustCompile(`(?i)(\d+[\d\.,]*)\s*.*(mensual|renta)`)
	garantiaRe      = regexp.MustCompile(`(?i)(garant[ií]a|adelanto)\s*(de\s*)?(\d+[\d\.,]*)`)
	garantiaAltRe   = regexp.MustCompile(`(?i)(\d+[\d\.,]*)\s*.*(garant[ií]a|adelanto)`)
	rentaSolesRe    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*soles?`)
	garantiaSolesRe = regexp.MustCompile(`(?i)garant[ií]a.*?(\d+(?:\.\d+)?)\s*soles?`)
	diaPagoRe       = regexp.MustCompile(`(?i)\b(\d{1,2})\b\s*(de\s*cada\s*mes|d[ií]a)?`)
	mesesRe         = regexp.MustCompile(`(?i)(\d+)\s*mes`)
	cuentaRe        = regexp.MustCompile(`\b(\d{8,20})\b`)
)

// detectarMoneda defaults to the local currency unless a foreign-currency
// marker appears anywhere in the text.
func detectarMoneda(text string) string {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "dólares") || strings.Contains(lower, "dolares") || strings.Contains(lower, "usd") {
		return monedaDolares
	}
	return monedaSoles
}

func parseMonto(token string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// MontoSimpleField is a single amount with its formal spelling.
type MontoSimpleField struct {
	MontoNum   float64 `json:"monto_num"`
	MontoTexto string  `json:"monto_texto"`
	Moneda     string  `json:"moneda"`
}

// MontoSimple extracts the first numeric token as the amount. Nothing
// numeric means a zero amount, spelled out as such.
func MontoSimple(text string) any {
	moneda := detectarMoneda(text)
	var monto float64
	if m := numeroRe.FindStringSubmatch(text); m != nil {
		monto = parseMonto(m[1])
	}
	return MontoSimpleField{
		MontoNum:   monto,
		MontoTexto: montoEnLetras(monto, moneda),
		Moneda:     capitalizar(moneda),
	}
}

// MontoCondicionesField keeps the full conditions text next to the amount.
type MontoCondicionesField struct {
	MontoNum    float64 `json:"monto_num"`
	MontoTexto  string  `json:"monto_texto"`
	Condiciones string  `json:"condiciones"`
}

// MontoCondiciones extracts the principal amount and preserves the whole
// answer as the payment conditions.
func MontoCondiciones(text string) any {
	moneda := detectarMoneda(text)
	var monto float64
	if m := numeroRe.FindStringSubmatch(text); m != nil {
		monto = parseMonto(m[1])
	}
	return MontoCondicionesField{
		MontoNum:    monto,
		MontoTexto:  montoEnLetras(monto, moneda),
		Condiciones: strings.TrimSpace(text),
	}
}

// MontoRentaGarantiaField carries both the rent and the deposit.
type MontoRentaGarantiaField struct {
	MontoAlquilerNum   float64 `json:"monto_alquiler_num"`
	MontoAlquilerTexto string  `json:"monto_alquiler_texto"`
	MontoGarantiaNum   float64 `json:"monto_garantia_num"`
	MontoGarantiaTexto string  `json:"monto_garantia_texto"`
	Moneda             string  `json:"moneda"`
}

// MontoRentaGarantia extracts the monthly rent ("400 soles mensuales") and
// the deposit ("garantía de 200") from one sentence.
func MontoRentaGarantia(text string) any {
	moneda := detectarMoneda(text)
	var alquiler, garantia float64

	if m := rentaMensualRe.FindStringSubmatch(text); m != nil {
		alquiler = parseMonto(m[1])
	} else if m := numeroRe.FindStringSubmatch(text); m != nil {
		alquiler = parseMonto(m[1])
	}
	if m := garantiaRe.FindStringSubmatch(text); m != nil {
		garantia = parseMonto(m[3])
	} else if m := garantiaAltRe.FindStringSubmatch(text); m != nil {
		garantia = parseMonto(m[1])
	}

	return MontoRentaGarantiaField{
		MontoAlquilerNum:   alquiler,
		MontoAlquilerTexto: montoEnLetras(alquiler, moneda),
		MontoGarantiaNum:   garantia,
		MontoGarantiaTexto: montoEnLetras(garantia, moneda),
		Moneda:             capitalizar(moneda),
	}
}

// RentaField matches the rendering template's rent block.
type RentaField struct {
	Tramo1        RentaTramo    `json:"tramo1"`
	MonedaSimbolo string        `json:"moneda_simbolo"`
	Garantia      RentaGarantia `json:"garantia"`
}

type RentaTramo struct {
	MontoLetras  string `json:"monto_letras"`
	MontoNumeros int    `json:"monto_numeros"`
	Periodo      string `json:"periodo"`
}

type RentaGarantia struct {
	MontoLetras  string `json:"monto_letras"`
	MontoNumeros int    `json:"monto_numeros"`
}

// Renta parses "Se pagan 400 soles mensuales y una garantía de 200 soles"
// into the template's tramo/garantía structure.
func Renta(text string) any {
	if strings.TrimSpace(text) == "" {
		return RentaField{
			Tramo1:        RentaTramo{MontoLetras: "No especificado", Periodo: "mensual"},
			MonedaSimbolo: "S/",
			Garantia:      RentaGarantia{MontoLetras: "No especificada"},
		}
	}
	lower := strings.ToLower(text)
	periodo := "mensual"
	if strings.Contains(lower, "mensuales") {
		periodo = "mensuales"
	}

	var renta, garantia float64
	if m := rentaSolesRe.FindStringSubmatch(lower); m != nil {
		renta = parseMonto(m[1])
	} else if m := numeroRe.FindStringSubmatch(lower); m != nil {
		renta = parseMonto(m[1])
	}
	if m := garantiaSolesRe.FindStringSubmatch(lower); m != nil {
		garantia = parseMonto(m[1])
	} else if m := garantiaRe.FindStringSubmatch(lower); m != nil {
		garantia = parseMonto(m[3])
	}

	out := RentaField{
		Tramo1:        RentaTramo{MontoLetras: "No especificado", MontoNumeros: int(renta), Periodo: periodo},
		MonedaSimbolo: "S/",
		Garantia:      RentaGarantia{MontoLetras: "No especificada", MontoNumeros: int(garantia)},
	}
	if renta > 0 {
		out.Tramo1.MontoLetras = capitalizar(Cardinal(int64(renta)))
	}
	if garantia > 0 {
		out.Garantia.MontoLetras = capitalizar(Cardinal(int64(garantia)))
	}
	return out
}

// PagoField is the structured payment schedule and bank account.
type PagoField struct {
	Descripcion                   string      `json:"descripcion"`
	DiaLimiteNumero               int         `json:"dia_limite_numero"`
	DiaLimiteTexto                string      `json:"dia_limite_texto"`
	MesesIncumplimientoResolucion string      `json:"meses_incumplimiento_resolucion"`
	Cuenta                        CuentaField `json:"cuenta"`
}

type CuentaField struct {
	Tipo   string `json:"tipo"`
	Numero string `json:"numero"`
	Banco  string `json:"banco"`
}

var bancos = []string{"BCP", "BBVA", "Interbank", "Scotiabank", "BanBif", "Banco de la Nación"}

// Pago extracts the payment day (default 5th), the months of arrears that
// trigger resolution (default 2) and the landlord's bank account. Missing
// pieces fall back to "No especificado" or the generic account type.
func Pago(text string) any {
	lower := strings.ToLower(strings.TrimSpace(text))

	dia := defaultDiaPago
	if m := diaPagoRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v >= 1 && v <= 31 {
			dia = v
		}
	}

	meses := defaultMesesIncumplimiento
	if m := mesesRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			meses = v
		}
	}

	numero := "No especificado"
	if m := cuentaRe.FindStringSubmatch(lower); m != nil {
		numero = m[1]
	}

	tipo := cuentaGenerica
	if strings.Contains(lower, "ahorro") {
		tipo = "Cuenta de Ahorros"
	} else if strings.Contains(lower, "corriente") {
		tipo = "Cuenta Corriente"
	}

	banco := "No especificado"
	for _, b := range bancos {
		if strings.Contains(lower, strings.ToLower(b)) {
			banco = b
			break
		}
	}

	return PagoField{
		Descripcion:                   strings.TrimSpace(text),
		DiaLimiteNumero:               dia,
		DiaLimiteTexto:                capitalizar(Cardinal(int64(dia))),
		MesesIncumplimientoResolucion: capitalizar(Cardinal(int64(meses))),
		Cuenta:                        CuentaField{Tipo: tipo, Numero: numero, Banco: banco},
	}
}
