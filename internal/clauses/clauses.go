// Package clauses maps free-text special clauses onto a catalog of standard
// legal clauses by base-word overlap, passing unmatched ones through as
// ad-hoc clauses.
package clauses

import "github.com/notarialabs/intake/internal/nlp"

// Mapped is one resolved clause. OrigenUsuario always carries the raw text
// the user typed, whether or not a standard clause matched.
type Mapped struct {
	Titulo        string `json:"titulo"`
	Texto         string `json:"texto"`
	OrigenUsuario string `json:"origen_usuario"`
}

// AdHocTitle marks clauses that did not match the standard catalog.
const AdHocTitle = "Cláusula Adicional (A solicitud)"

type standardClause struct {
	key      string
	keywords []string
	titulo   string
	texto    string
}

// The catalog is a slice, not a map: matching walks it in order and the
// first keyword hit wins.
var standardClauses = []standardClause{
	{
		key:      "prohibicion_subarriendo",
		keywords: []string{"subarrendar", "subarriendo", "alquilar", "tercero"},
		titulo:   "Cláusula de Prohibición de Subarriendo",
		texto: "EL ARRENDATARIO queda terminantemente prohibido de subarrendar, ceder o " +
			"transferir total o parcialmente el inmueble a terceros, sin el consentimiento " +
			"expreso y por escrito de EL ARRENDADOR.",
	},
	{
		key:      "prohibicion_mascotas",
		keywords: []string{"mascota", "perro", "gato", "animal"},
		titulo:   "Cláusula de Tenencia de Mascotas",
		texto: "EL ARRENDATARIO se compromete a no introducir ni mantener mascotas de " +
			"ninguna especie en el inmueble, salvo autorización expresa y por escrito de " +
			"EL ARRENDADOR.",
	},
	{
		key:      "danos_deterioro",
		keywords: []string{"daño", "romper", "malograr", "deterioro", "reparacion"},
		titulo:   "Cláusula de Deterioro y Daños",
		texto: "EL ARRENDATARIO se compromete a devolver el inmueble en el mismo estado en " +
			"que lo recibió, salvo el deterioro normal por el uso. Cualquier daño intencional " +
			"o negligente causado al inmueble será reparado por cuenta y costo de EL ARRENDATARIO.",
	},
	{
		key:      "penalidad_moratoria",
		keywords: []string{"mora", "retraso", "tardanza", "penalidad", "multa", "interes"},
		titulo:   "Cláusula de Penalidad Moratoria",
		texto: "En caso de retraso en el pago de la renta mensual, EL ARRENDATARIO incurrirá " +
			"en mora automática sin necesidad de previo aviso, aplicándose una penalidad " +
			"moratoria equivalente al 0.5% del monto de la renta por cada día de retraso, " +
			"hasta un máximo acumulable del 15% de la renta.",
	},
}

// Map resolves each raw clause against the standard catalog. Output order
// follows input order and output length equals input length. With no NLP
// model the base forms degrade to plain folded tokens.
func Map(raw []string) []Mapped {
	out := make([]Mapped, 0, len(raw))
	m := nlp.Get()
	for _, text := range raw {
		lemmas := m.Lemmas(text)
		mapped := Mapped{Titulo: AdHocTitle, Texto: text, OrigenUsuario: text}
		for _, std := range standardClauses {
			if overlaps(lemmas, std.keywords, m) {
				mapped.Titulo = std.titulo
				mapped.Texto = std.texto
				break
			}
		}
		out = append(out, mapped)
	}
	return out
}

func overlaps(lemmas map[string]bool, keywords []string, m *nlp.Model) bool {
	for _, kw := range keywords {
		if lemmas[m.Lemma(kw)] {
			return true
		}
	}
	return false
}
