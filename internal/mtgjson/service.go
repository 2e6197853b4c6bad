package mtgjson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mtgtools/buylistdb/internal/domain"
)

const defaultBaseURL = "https://mtgjson.com/api/v5"

// Client fetches catalog and price documents from the MTGJSON v5 API.
// Fetches are paced by a rate limiter with burst 1: callers issue them
// sequentially and the limiter keeps that single lane from bursting the
// remote source.
type Client struct {
	log        zerolog.Logger
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a catalog source. fetchRate is requests per second;
// values <= 0 fall back to one request per second.
func NewClient(log zerolog.Logger, baseURL string, fetchRate float64) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if fetchRate <= 0 {
		fetchRate = 1
	}

	return &Client{
		log:        log.With().Str("module", "mtgjson").Logger(),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(fetchRate), 1),
	}
}

var _ domain.CatalogSource = (*Client)(nil)

// setResponse is the per-set document shape: { data: { cards: [...] } }.
type setResponse struct {
	Data struct {
		Cards []domain.CatalogEntry `json:"cards"`
	} `json:"data"`
}

// allPrintingsResponse is the all-sets variant: { data: { <code>: { cards: [...] } } }.
type allPrintingsResponse struct {
	Data map[string]struct {
		Cards []domain.CatalogEntry `json:"cards"`
	} `json:"data"`
}

// priceResponse is the price document shape:
// { data: { <uuid>: { buylist: { cardKingdom?, cardKingdomFoil? } } } }.
type priceResponse struct {
	Data map[string]domain.PriceEntry `json:"data"`
}

func (c *Client) FetchSet(ctx context.Context, setCode string) (*domain.SetDocument, error) {
	body, err := c.fetch(ctx, fmt.Sprintf("%s/%s.json", c.baseURL, setCode))
	if err != nil {
		return nil, err
	}

	resp := &setResponse{}
	if err := json.Unmarshal(body, resp); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal set %s", setCode)
	}

	c.log.Debug().Str("set", setCode).Int("cards", len(resp.Data.Cards)).Msg("fetched set document")
	return &domain.SetDocument{SetCode: setCode, Cards: resp.Data.Cards}, nil
}

func (c *Client) FetchAllPrintings(ctx context.Context) ([]domain.SetDocument, error) {
	body, err := c.fetch(ctx, c.baseURL+"/AllPrintings.json")
	if err != nil {
		return nil, err
	}

	resp := &allPrintingsResponse{}
	if err := json.Unmarshal(body, resp); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal all printings")
	}

	docs := make([]domain.SetDocument, 0, len(resp.Data))
	for code, set := range resp.Data {
		docs = append(docs, domain.SetDocument{
			SetCode: strings.ToUpper(code),
			Cards:   set.Cards,
		})
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].SetCode < docs[j].SetCode
	})

	c.log.Debug().Int("sets", len(docs)).Msg("fetched all printings")
	return docs, nil
}

func (c *Client) FetchPrices(ctx context.Context) (*domain.PriceDataset, error) {
	body, err := c.fetch(ctx, c.baseURL+"/AllPrices.json")
	if err != nil {
		return nil, err
	}

	resp := &priceResponse{}
	if err := json.Unmarshal(body, resp); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal prices")
	}

	c.log.Debug().Int("uuids", len(resp.Data)).Msg("fetched price dataset")
	return &domain.PriceDataset{ByUUID: resp.Data}, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	c.log.Debug().Str("url", url).Msg("fetching")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	return body, nil
}
