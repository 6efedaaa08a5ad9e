package refdata

// sp500.go — directorio de constituyentes del S&P 500 (nombre → ticker).
//
// Se consume una vez para poblar la lista de selección de instrumentos; el
// core de cálculo nunca lo toca.

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/alejandrodnm/greekbot/internal/domain"
)

const (
	defaultReferenceBase = "https://raw.githubusercontent.com/datasets/s-and-p-500-companies/main/data"
	constituentsPath     = "/constituents.json"
)

// constituent es el wire format del dataset de constituyentes.
type constituent struct {
	Symbol string `json:"Symbol"`
	Name   string `json:"Name"`
}

// Client implementa ports.ReferenceProvider contra el dataset público de
// constituyentes.
type Client struct {
	http *http.Client
	base string
}

// NewClient crea un Client con el base URL dado. Si base está vacío, usa el
// dataset de producción.
func NewClient(base string) *Client {
	if base == "" {
		base = defaultReferenceBase
	}
	return &Client{
		http: &http.Client{Timeout: 15 * time.Second},
		base: base,
	}
}

// FetchConstituents devuelve el directorio completo, ordenado por nombre.
func (c *Client) FetchConstituents(ctx context.Context) ([]domain.Instrument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+constituentsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("refdata.FetchConstituents: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refdata.FetchConstituents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("refdata.FetchConstituents: status %d: %s", resp.StatusCode, string(body))
	}

	var raw []constituent
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("refdata.FetchConstituents: decode: %w", err)
	}

	instruments := make([]domain.Instrument, 0, len(raw))
	for _, c := range raw {
		if c.Symbol == "" || c.Name == "" {
			continue
		}
		instruments = append(instruments, domain.Instrument{Name: c.Name, Symbol: c.Symbol})
	}

	sort.Slice(instruments, func(i, j int) bool {
		return instruments[i].Name < instruments[j].Name
	})
	return instruments, nil
}

// Static implementa ports.ReferenceProvider con una lista fija, para
// dry-run y tests.
type Static []domain.Instrument

// FetchConstituents devuelve la lista fija.
func (s Static) FetchConstituents(_ context.Context) ([]domain.Instrument, error) {
	return s, nil
}
