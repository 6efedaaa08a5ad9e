package domain

// RiskGrid es el resultado de re-evaluar el engine sobre un rango de uno o
// dos factores: una serie 1D (solo eje primario) o una tabla 2D indexada por
// (valor del eje secundario, valor del eje primario).
//
// Convención de superficie: los valores del eje primario son columnas y los
// del secundario filas — Values[i][j] corresponde a (SecondaryAxis[i],
// PrimaryAxis[j]). Para una serie 1D, Values tiene una única fila.
type RiskGrid struct {
	Metric          Metric
	PrimaryFactor   Factor
	SecondaryFactor Factor // "" para sweeps 1D
	PrimaryAxis     []float64
	SecondaryAxis   []float64 // nil para sweeps 1D
	Values          [][]float64
}

// IsSurface devuelve true si el grid tiene dos ejes.
func (g RiskGrid) IsSurface() bool {
	return g.SecondaryFactor != ""
}

// Series devuelve los valores de un sweep 1D.
func (g RiskGrid) Series() []float64 {
	if len(g.Values) == 0 {
		return nil
	}
	return g.Values[0]
}

// Empty devuelve true si el grid no tiene puntos; un grid vacío no se
// renderiza.
func (g RiskGrid) Empty() bool {
	if len(g.PrimaryAxis) == 0 || len(g.Values) == 0 {
		return true
	}
	if g.IsSurface() && len(g.SecondaryAxis) == 0 {
		return true
	}
	return false
}
