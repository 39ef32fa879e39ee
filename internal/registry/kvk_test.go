package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderdesk/tenderdesk/internal/domain"
)

const profileJSON = `{
  "kvkNummer": "12345678",
  "naam": "Bouwbedrijf De Vries B.V.",
  "formeleRegistratiedatum": "19980415",
  "handelsnamen": [{"naam": "De Vries Bouw"}],
  "sbiActiviteiten": [
    {"sbiOmschrijving": "Projectontwikkeling", "indHoofdactiviteit": "Nee"},
    {"sbiOmschrijving": "Algemene burgerlijke en utiliteitsbouw", "indHoofdactiviteit": "Ja"}
  ],
  "_embedded": {"hoofdvestiging": {"adressen": [
    {"type": "postadres", "plaats": "Postbusdorp"},
    {"type": "bezoekadres", "plaats": "Utrecht"}
  ]}}
}`

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		switch r.URL.Path {
		case "/basisprofielen/12345678":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(profileJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewKvKClient(srv.URL+"/", "secret", time.Second)

	t.Run("known number", func(t *testing.T) {
		p, err := c.Lookup(context.Background(), "12345678")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Bouwbedrijf De Vries B.V.", p.Name)
		assert.Equal(t, "Utrecht", p.City)
		assert.Equal(t, "Algemene burgerlijke en utiliteitsbouw", p.Sector)
		assert.Equal(t, []string{"De Vries Bouw"}, p.TradeNames)
		require.NotNil(t, p.RegisteredAt)
		assert.Equal(t, 1998, p.RegisteredAt.Year())
	})

	t.Run("unknown number", func(t *testing.T) {
		p, err := c.Lookup(context.Background(), "87654321")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("malformed number", func(t *testing.T) {
		_, err := c.Lookup(context.Background(), "1234")
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}

func TestLookupUpstreamFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewKvKClient(srv.URL, "secret", time.Second)
	c.maxTries = 2

	_, err := c.Lookup(context.Background(), "12345678")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExternalService))

	var ext *domain.ExternalServiceError
	require.True(t, errors.As(err, &ext))
	assert.Equal(t, "kvk", ext.Service)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLookupClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewKvKClient(srv.URL, "wrong", time.Second)

	_, err := c.Lookup(context.Background(), "12345678")
	assert.True(t, errors.Is(err, domain.ErrExternalService))
	assert.Equal(t, int32(1), calls.Load())
}
