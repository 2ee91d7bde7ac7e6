package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"bricsbtc/internal/domain"
	"bricsbtc/pkg/logger"
)

const (
	tickerCacheKey = "ticker:snapshot"
	tickerCacheTTL = 30 * time.Second
)

// TickerPrice is one entry of the landing-page ticker
type TickerPrice struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// TickerService fetches spot prices for listed cryptos from the Binance
// public API and keeps a snapshot in Redis. The landing page polls the
// snapshot every 10 seconds; the refresh job runs on the same cadence.
type TickerService struct {
	httpClient *http.Client
	baseURL    string
	rdb        *redis.Client
	catalog    domain.CatalogRepository
}

// NewTickerService creates a new TickerService
func NewTickerService(rdb *redis.Client, catalog domain.CatalogRepository) *TickerService {
	return &TickerService{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://api.binance.com",
		rdb:     rdb,
		catalog: catalog,
	}
}

// Refresh fetches fresh prices for every listed crypto, writes them through
// to the catalog, and replaces the cached snapshot.
func (s *TickerService) Refresh(ctx context.Context) error {
	cryptos, err := s.catalog.GetCryptos(ctx)
	if err != nil {
		return fmt.Errorf("failed to load listed cryptos: %w", err)
	}
	if len(cryptos) == 0 {
		return nil
	}

	symbols := make([]string, 0, len(cryptos))
	for _, c := range cryptos {
		symbols = append(symbols, c.Symbol+"USDT")
	}

	prices, err := s.fetchPrices(ctx, symbols)
	if err != nil {
		return err
	}

	snapshot := make([]TickerPrice, 0, len(cryptos))
	for _, c := range cryptos {
		price, ok := prices[strings.ToUpper(c.Symbol+"USDT")]
		if !ok {
			continue
		}
		snapshot = append(snapshot, TickerPrice{Symbol: c.Symbol, Price: price})

		if err := s.catalog.UpdateCryptoPrice(ctx, c.Symbol, price); err != nil {
			logger.Warn().Err(err).Str("symbol", c.Symbol).Msg("failed to persist ticker price")
		}
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal ticker snapshot: %w", err)
	}

	if err := s.rdb.Set(ctx, tickerCacheKey, payload, tickerCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache ticker snapshot: %w", err)
	}

	return nil
}

// Snapshot returns the cached ticker. An empty cache yields an empty slice,
// not an error; the ticker is cosmetic.
func (s *TickerService) Snapshot(ctx context.Context) ([]TickerPrice, error) {
	payload, err := s.rdb.Get(ctx, tickerCacheKey).Bytes()
	if err == redis.Nil {
		return []TickerPrice{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ticker snapshot: %w", err)
	}

	var snapshot []TickerPrice
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticker snapshot: %w", err)
	}
	return snapshot, nil
}

// fetchPrices fetches current prices for multiple symbols from Binance
func (s *TickerService) fetchPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/api/v3/ticker/price", s.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices from Binance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Binance API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Binance returns an array of all tickers
	var tickers []struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.Unmarshal(body, &tickers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	wanted := make(map[string]bool, len(symbols))
	for _, symbol := range symbols {
		wanted[strings.ToUpper(symbol)] = true
	}

	prices := make(map[string]float64, len(symbols))
	for _, ticker := range tickers {
		if !wanted[ticker.Symbol] {
			continue
		}
		price, err := strconv.ParseFloat(ticker.Price, 64)
		if err != nil {
			continue
		}
		prices[ticker.Symbol] = price
	}

	return prices, nil
}
