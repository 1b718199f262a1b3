package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMontoSimple_Dolares(t *testing.T) {
	v := MontoSimple("800 dólares").(MontoSimpleField)
	assert.Equal(t, 800.0, v.MontoNum)
	assert.Equal(t, "Ochocientos y 00/100 dólares", v.MontoTexto)
	assert.Equal(t, "Dólares", v.Moneda)
}

func TestMontoSimple_SolesPorDefecto(t *testing.T) {
	v := MontoSimple("1500").(MontoSimpleField)
	assert.Equal(t, 1500.0, v.MontoNum)
	assert.Equal(t, "Mil quinientos y 00/100 soles", v.MontoTexto)
	assert.Equal(t, "Soles", v.Moneda)
}

func TestMontoSimple_SinNumero(t *testing.T) {
	v := MontoSimple("todavía no lo sé").(MontoSimpleField)
	assert.Equal(t, 0.0, v.MontoNum)
	assert.Equal(t, "Cero y 00/100 soles", v.MontoTexto)
}

func TestMontoCondiciones(t *testing.T) {
	v := MontoCondiciones("5000 soles pagaderos en dos armadas").(MontoCondicionesField)
	assert.Equal(t, 5000.0, v.MontoNum)
	assert.Equal(t, "Cinco mil y 00/100 soles", v.MontoTexto)
	assert.Equal(t, "5000 soles pagaderos en dos armadas", v.Condiciones)
}

func TestMontoRentaGarantia(t *testing.T) {
	v := MontoRentaGarantia("400 soles mensuales y garantía de 200").(MontoRentaGarantiaField)
	assert.Equal(t, 400.0, v.MontoAlquilerNum)
	assert.Equal(t, 200.0, v.MontoGarantiaNum)
	assert.Equal(t, "Cuatrocientos y 00/100 soles", v.MontoAlquilerTexto)
	assert.Equal(t, "Doscientos y 00/100 soles", v.MontoGarantiaTexto)
	assert.Equal(t, "Soles", v.Moneda)
}

func TestMontoRentaGarantia_SoloRenta(t *testing.T) {
	v := MontoRentaGarantia("1200 mensuales").(MontoRentaGarantiaField)
	assert.Equal(t, 1200.0, v.MontoAlquilerNum)
	assert.Equal(t, 0.0, v.MontoGarantiaNum)
}

func TestRenta(t *testing.T) {
	v := Renta("Se pagan 400 soles mensuales y una garantía de 200 soles").(RentaField)
	assert.Equal(t, 400, v.Tramo1.MontoNumeros)
	assert.Equal(t, "Cuatrocientos", v.Tramo1.MontoLetras)
	assert.Equal(t, "mensuales", v.Tramo1.Periodo)
	assert.Equal(t, 200, v.Garantia.MontoNumeros)
	assert.Equal(t, "Doscientos", v.Garantia.MontoLetras)
	assert.Equal(t, "S/", v.MonedaSimbolo)
}

func TestRenta_Vacia(t *testing.T) {
	v := Renta("   ").(RentaField)
	assert.Equal(t, "No especificado", v.Tramo1.MontoLetras)
	assert.Equal(t, "No especificada", v.Garantia.MontoLetras)
	assert.Equal(t, "S/", v.MonedaSimbolo)
}

func TestPago_Completo(t *testing.T) {
	v := Pago("Pago hasta el 10 de cada mes, resolución a los 3 meses, cuenta de ahorros 19412345678901 del BCP").(PagoField)
	assert.Equal(t, 10, v.DiaLimiteNumero)
	assert.Equal(t, "Diez", v.DiaLimiteTexto)
	assert.Equal(t, "Tres", v.MesesIncumplimientoResolucion)
	assert.Equal(t, "Cuenta de Ahorros", v.Cuenta.Tipo)
	assert.Equal(t, "19412345678901", v.Cuenta.Numero)
	assert.Equal(t, "BCP", v.Cuenta.Banco)
}

func TestPago_Defaults(t *testing.T) {
	v := Pago("como siempre").(PagoField)
	assert.Equal(t, 5, v.DiaLimiteNumero)
	assert.Equal(t, "Cinco", v.DiaLimiteTexto)
	assert.Equal(t, "Dos", v.MesesIncumplimientoResolucion)
	assert.Equal(t, "Cuenta bancaria", v.Cuenta.Tipo)
	assert.Equal(t, "No especificado", v.Cuenta.Numero)
	assert.Equal(t, "No especificado", v.Cuenta.Banco)
}

func TestDetectarMoneda(t *testing.T) {
	assert.Equal(t, "dólares", detectarMoneda("500 DOLARES"))
	assert.Equal(t, "dólares", detectarMoneda("usd 300"))
	assert.Equal(t, "soles", detectarMoneda("900"))
}
