package mtgjson

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/LEA.json", r.URL.Path)
		w.Write([]byte(`{"data":{"cards":[
			{"name":"Black Lotus","uuid":"uuid-1","rarity":"rare"},
			{"name":"Lightning Bolt","manaCost":"{R}","purchaseUrls":{"cardKingdom":"https://example.com/bolt"}}
		]}}`))
	}))
	defer srv.Close()

	client := NewClient(zerolog.Nop(), srv.URL, 1000)

	doc, err := client.FetchSet(context.Background(), "LEA")
	require.NoError(t, err)
	assert.Equal(t, "LEA", doc.SetCode)
	require.Len(t, doc.Cards, 2)
	assert.Equal(t, "Black Lotus", doc.Cards[0].Name)
	assert.Equal(t, "uuid-1", doc.Cards[0].UUID)
	require.NotNil(t, doc.Cards[1].PurchaseURLs)
	assert.Equal(t, "https://example.com/bolt", doc.Cards[1].PurchaseURLs.CardKingdom)
}

func TestFetchSet_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(zerolog.Nop(), srv.URL, 1000)

	_, err := client.FetchSet(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchAllPrintings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/AllPrintings.json", r.URL.Path)
		w.Write([]byte(`{"data":{
			"lea":{"cards":[{"name":"Black Lotus"}]},
			"ICE":{"cards":[{"name":"Brainstorm"}]}
		}}`))
	}))
	defer srv.Close()

	client := NewClient(zerolog.Nop(), srv.URL, 1000)

	docs, err := client.FetchAllPrintings(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	// Sorted by uppercased set code for a deterministic load order.
	assert.Equal(t, "ICE", docs[0].SetCode)
	assert.Equal(t, "LEA", docs[1].SetCode)
}

func TestFetchPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/AllPrices.json", r.URL.Path)
		w.Write([]byte(`{"data":{"uuid-1":{"buylist":{"cardKingdom":2.5,"cardKingdomFoil":9}}}}`))
	}))
	defer srv.Close()

	client := NewClient(zerolog.Nop(), srv.URL, 1000)

	prices, err := client.FetchPrices(context.Background())
	require.NoError(t, err)
	require.Contains(t, prices.ByUUID, "uuid-1")
	require.NotNil(t, prices.ByUUID["uuid-1"].Buylist.CardKingdom)
	assert.Equal(t, 2.5, *prices.ByUUID["uuid-1"].Buylist.CardKingdom)
	require.NotNil(t, prices.ByUUID["uuid-1"].Buylist.CardKingdomFoil)
	assert.Equal(t, 9.0, *prices.ByUUID["uuid-1"].Buylist.CardKingdomFoil)
}
