package marketdata

// types.go — DTOs del wire format de la API de quotes.

// chartResponse es la respuesta de /v8/finance/chart/{symbol}. Solo se
// decodifica lo que usamos: el precio regular de mercado del meta.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// summaryResponse es la respuesta de /v10/finance/quoteSummary/{symbol}
// con el módulo summaryDetail.
type summaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				DividendYield struct {
					Raw float64 `json:"raw"`
				} `json:"dividendYield"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"quoteSummary"`
}
