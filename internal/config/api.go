package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/notarialabs/intake/internal/catalog"
)

// ConfigAPI provides HTTP endpoints to inspect the running configuration
// and the contract catalog.
type ConfigAPI struct {
	cfg    *Config
	cat    *catalog.Catalog
	mu     sync.RWMutex
	router *mux.Router
}

func NewConfigAPI(cfg *Config, cat *catalog.Catalog) *ConfigAPI {
	api := &ConfigAPI{
		cfg:    cfg,
		cat:    cat,
		router: mux.NewRouter(),
	}
	api.routes()
	return api
}

func (api *ConfigAPI) Router() *mux.Router {
	return api.router
}

func (api *ConfigAPI) routes() {
	api.router.HandleFunc("/configure", api.getConfig).Methods("GET")
	api.router.HandleFunc("/configure/", api.getConfig).Methods("GET")
	api.router.HandleFunc("/configure/validate", api.validateConfig).Methods("POST")
	api.router.HandleFunc("/configure/contratos", api.listContractTypes).Methods("GET")
	api.router.HandleFunc("/configure/contratos/{tipo}", api.getContractType).Methods("GET")
}

func (api *ConfigAPI) getConfig(w http.ResponseWriter, r *http.Request) {
	api.mu.RLock()
	defer api.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(api.cfg)
}

func (api *ConfigAPI) validateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, fmt.Sprintf("invalid config payload: %v", err), http.StatusBadRequest)
		return
	}
	if err := cfg.Validate(); err != nil {
		http.Error(w, fmt.Sprintf("invalid configuration: %v", err), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"valid": true, "message": "configuration is valid"})
}

// listContractTypes returns one id/name/synonyms summary per supported
// contract type, in catalog order.
func (api *ConfigAPI) listContractTypes(w http.ResponseWriter, r *http.Request) {
	type summary struct {
		ID        string   `json:"id"`
		Nombre    string   `json:"nombre"`
		Sinonimos []string `json:"sinonimos,omitempty"`
	}
	out := make([]summary, 0, len(api.cat.Types))
	for _, t := range api.cat.Types {
		out = append(out, summary{ID: t.ID, Nombre: t.Nombre, Sinonimos: t.Sinonimos})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (api *ConfigAPI) getContractType(w http.ResponseWriter, r *http.Request) {
	tipo := mux.Vars(r)["tipo"]
	t, ok := api.cat.Get(tipo)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown contract type: %s", tipo), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}
