package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed contracts.yaml
var defaultCatalogYAML []byte

// Question is a single intake question of a contract type. TipoDato selects
// the extractor strategy applied to the raw answer at materialization time;
// unregistered tags fall back to passthrough text.
type Question struct {
	Key         string `yaml:"key" json:"key"`
	Texto       string `yaml:"texto" json:"texto"`
	TipoDato    string `yaml:"tipo_dato" json:"tipo_dato"`
	EsFirmante  bool   `yaml:"es_firmante,omitempty" json:"es_firmante,omitempty"`
	RolFirmante string `yaml:"rol_firmante,omitempty" json:"rol_firmante,omitempty"`
}

// ContractType is one entry of the contract catalog. The catalog is static
// configuration: the core never mutates it.
type ContractType struct {
	ID                   string     `yaml:"id" json:"id"`
	Nombre               string     `yaml:"nombre" json:"nombre"`
	Descripcion          string     `yaml:"descripcion" json:"descripcion"`
	Validez              string     `yaml:"validez,omitempty" json:"validez,omitempty"`
	Preguntas            []Question `yaml:"preguntas" json:"preguntas"`
	Sinonimos            []string   `yaml:"sinonimos,omitempty" json:"sinonimos,omitempty"`
	DocumentosRequeridos []string   `yaml:"documentos_requeridos,omitempty" json:"documentos_requeridos,omitempty"`
	ClausulasMinimas     []string   `yaml:"clausulas_minimas,omitempty" json:"clausulas_minimas,omitempty"`
	Advertencias         []string   `yaml:"advertencias,omitempty" json:"advertencias,omitempty"`
	Jurisdiccion         string     `yaml:"jurisdiccion,omitempty" json:"jurisdiccion,omitempty"`
	PlantillaAlias       string     `yaml:"plantilla_alias" json:"plantilla_alias"`
}

// Catalog is an ordered list of contract types. Order matters: the type
// detector resolves ties by catalog position.
type Catalog struct {
	Types []ContractType `yaml:"contratos"`
}

// Get returns the contract type with the given id.
func (c *Catalog) Get(id string) (ContractType, bool) {
	for _, t := range c.Types {
		if t.ID == id {
			return t, true
		}
	}
	return ContractType{}, false
}

// Validate checks the catalog invariants: non-empty ids and names, at least
// one question per type, and question keys unique within each type.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	for _, t := range c.Types {
		if t.ID == "" {
			return fmt.Errorf("catalog: contract type with empty id")
		}
		if seen[t.ID] {
			return fmt.Errorf("catalog: duplicate contract type %q", t.ID)
		}
		seen[t.ID] = true
		if t.Nombre == "" {
			return fmt.Errorf("catalog: %s: empty nombre", t.ID)
		}
		if len(t.Preguntas) == 0 {
			return fmt.Errorf("catalog: %s: no questions", t.ID)
		}
		keys := make(map[string]bool)
		for _, q := range t.Preguntas {
			if q.Key == "" {
				return fmt.Errorf("catalog: %s: question with empty key", t.ID)
			}
			if keys[q.Key] {
				return fmt.Errorf("catalog: %s: duplicate question key %q", t.ID, q.Key)
			}
			keys[q.Key] = true
			if q.Texto == "" {
				return fmt.Errorf("catalog: %s: question %q has no prompt", t.ID, q.Key)
			}
		}
	}
	return nil
}

// Parse decodes a YAML catalog payload and validates it.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a catalog from disk. An empty path loads the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalogYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

// Default returns the embedded catalog. It panics only if the embedded data
// is itself broken, which is a build defect.
func Default() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}
