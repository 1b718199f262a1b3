package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Calle Leoncio Prado 162 Miraflores", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"address":{
			"suburb":"Miraflores",
			"county":"Lima",
			"state":"Lima",
			"country":"Perú"
		}}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	addr, err := c.Lookup(context.Background(), "Calle Leoncio Prado 162 Miraflores")
	require.NoError(t, err)

	assert.Equal(t, "Miraflores", addr.Distrito)
	assert.Equal(t, "Lima", addr.Provincia)
	assert.Equal(t, "Lima", addr.Departamento)
	assert.Equal(t, "Perú", addr.Pais)
}

func TestLookup_PreferenceChains(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"address":{
			"city_district":"Cercado de Lima",
			"town":"Lima",
			"state_district":"Provincia de Lima",
			"state":"Lima"
		}}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	addr, err := c.Lookup(context.Background(), "Jirón de la Unión")
	require.NoError(t, err)

	// the most specific field of each chain wins
	assert.Equal(t, "Cercado de Lima", addr.Distrito)
	assert.Equal(t, "Provincia de Lima", addr.Provincia)
}

func TestLookup_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), "xyz")
	assert.Error(t, err)
}

func TestLookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), "xyz")
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", 0)
	require.NotNil(t, c)
}
