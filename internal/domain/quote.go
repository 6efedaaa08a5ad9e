package domain

import "time"

// Quote es el estado de mercado "actual" de un instrumento, tal como lo
// entrega el market-data provider. Todos los campos en decimal (el adapter
// normaliza porcentajes antes de construir el Quote).
type Quote struct {
	Symbol        string
	Spot          float64
	DividendYield float64
	RiskFree      float64
	AsOf          time.Time
}

// Instrument mapea un nombre legible a su identificador negociable.
// Se consume una vez para poblar la lista de selección; el core de cálculo
// no depende de él.
type Instrument struct {
	Name   string
	Symbol string
}

// RunSummary es el resumen ligero de una ejecución (pricing puntual o
// sweep) que se persiste como histórico.
type RunSummary struct {
	ID       string // uuid
	Kind     string // "price" | "surface"
	Symbol   string
	Metric   Metric
	Points   int
	Duration time.Duration
	At       time.Time
}
