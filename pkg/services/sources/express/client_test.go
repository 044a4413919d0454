package express

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

func TestListParcels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parcels", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("start"))
		assert.NotEmpty(t, r.URL.Query().Get("end"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"priceMAD": 250.5, "weightKg": 12, "totalPaid": 250.5, "status": "delivered", "tripDestination": "Casablanca"},
			{"priceMAD": 180, "weightKg": 8.5, "totalPaid": 0, "status": "in_transit", "tripDestination": "Dakar"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	r, err := domain.NewDateRange(
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	parcels, err := client.ListParcels(context.Background(), r)

	require.NoError(t, err)
	require.Len(t, parcels, 2)
	assert.Equal(t, "250.5", parcels[0].PriceMAD.String())
	assert.Equal(t, "delivered", parcels[0].Status)
	assert.Equal(t, "Dakar", parcels[1].TripDestination)
	assert.Equal(t, 8.5, parcels[1].WeightKg)
}

func TestListParcels_EmptyWindow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	r, _ := domain.NewDateRange(time.Now().Add(-time.Hour), time.Now())

	parcels, err := client.ListParcels(context.Background(), r)

	require.NoError(t, err)
	assert.Empty(t, parcels)
}

func TestListParcels_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	r, _ := domain.NewDateRange(time.Now().Add(-time.Hour), time.Now())

	_, err := client.ListParcels(context.Background(), r)

	assert.Error(t, err)
}
