package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/greekbot/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// daysYear convierte ejes de Maturity de años a días para display.
const daysYear = 365

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// NotifyEvaluation imprime una evaluación puntual en el modo configurado.
func (c *Console) NotifyEvaluation(_ context.Context, symbol string, contract domain.OptionContract, r domain.EvaluationResult) error {
	if c.table {
		c.printEvaluationFull(symbol, contract, r)
	} else {
		c.printEvaluationCompact(symbol, contract, r)
	}
	return nil
}

// printEvaluationCompact imprime lo esencial en una línea.
func (c *Console) printEvaluationCompact(symbol string, contract domain.OptionContract, r domain.EvaluationResult) {
	now := time.Now().Format("15:04:05")

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s %s K=%.2f T=%.4fy σ=%.2f%%", now, symbol, contract.Type,
		contract.Strike, contract.Maturity, contract.Volatility*100)
	fmt.Fprintf(&sb, " → $%.4f Δ%.4f Γ%.4f ν%.4f θ%.5f ρ%.4f",
		r.Price, r.Delta, r.Gamma, r.Vega, r.Theta, r.Rho)

	fmt.Fprintln(c.out, sb.String())
}

// printEvaluationFull imprime el panel completo de griegas.
func (c *Console) printEvaluationFull(symbol string, contract domain.OptionContract, r domain.EvaluationResult) {
	now := time.Now().Format("15:04:05")
	fmt.Fprintf(c.out, "\n[%s] %s %s %s — S=%.2f K=%.2f T=%.4fy r=%.2f%% q=%.2f%% σ=%.2f%%\n",
		now, symbol, contract.Style, contract.Type,
		contract.Spot, contract.Strike, contract.Maturity,
		contract.Rate*100, contract.DividendYield*100, contract.Volatility*100)

	table := tablewriter.NewWriter(c.out)
	table.Header("Metric", "Value", "Convention")

	rows := []struct {
		metric     domain.Metric
		convention string
	}{
		{domain.MetricPrice, "$"},
		{domain.MetricDelta, "per $1 spot"},
		{domain.MetricGamma, "per $1 spot"},
		{domain.MetricVega, "per 1pt vol"},
		{domain.MetricTheta, "per day"},
		{domain.MetricRho, "per 1pt rate"},
		{domain.MetricVanna, "per 1pt vol"},
		{domain.MetricVolga, "per 1pt² vol"},
		{domain.MetricCharm, "per day"},
		{domain.MetricColor, "per day"},
		{domain.MetricSpeed, "per $1² spot"},
		{domain.MetricGearing, "elasticity"},
		{domain.MetricEpsilon, "div elasticity"},
	}
	for _, row := range rows {
		v, _ := r.Metric(row.metric)
		table.Append(row.metric.Label(), fmt.Sprintf("%.6f", v), row.convention)
	}
	table.Render()

	fmt.Fprintf(c.out, "  d1=%.6f  d2=%.6f  intrinsic=$%.4f\n",
		r.D1, r.D2, contract.Payoff(contract.Spot))
}

// NotifySurface imprime una serie 1D o superficie 2D como tabla.
// Un grid vacío no se renderiza.
func (c *Console) NotifySurface(_ context.Context, g domain.RiskGrid) error {
	if g.Empty() {
		fmt.Fprintf(c.out, "[%s] empty grid — nothing to render\n", time.Now().Format("15:04:05"))
		return nil
	}

	if g.IsSurface() {
		c.printSurface(g)
	} else {
		c.printSeries(g)
	}
	return nil
}

// printSeries imprime el sweep 1D: una fila por valor del eje primario.
func (c *Console) printSeries(g domain.RiskGrid) {
	fmt.Fprintf(c.out, "\n%s as function of %s (%d points)\n",
		g.Metric.Label(), g.PrimaryFactor.Label(), len(g.PrimaryAxis))

	table := tablewriter.NewWriter(c.out)
	table.Header(g.PrimaryFactor.Label(), g.Metric.Label())

	series := g.Series()
	for i, v := range g.PrimaryAxis {
		table.Append(formatAxisValue(g.PrimaryFactor, v), fmt.Sprintf("%.6f", series[i]))
	}
	table.Render()
}

// printSurface imprime la superficie 2D: primario en columnas, secundario
// en filas.
func (c *Console) printSurface(g domain.RiskGrid) {
	fmt.Fprintf(c.out, "\n%s as function of %s and %s (%d×%d)\n",
		g.Metric.Label(), g.PrimaryFactor.Label(), g.SecondaryFactor.Label(),
		len(g.SecondaryAxis), len(g.PrimaryAxis))

	table := tablewriter.NewWriter(c.out)

	header := make([]any, 0, len(g.PrimaryAxis)+1)
	header = append(header, fmt.Sprintf("%s \\ %s", g.SecondaryFactor.Label(), g.PrimaryFactor.Label()))
	for _, v := range g.PrimaryAxis {
		header = append(header, formatAxisValue(g.PrimaryFactor, v))
	}
	table.Header(header...)

	for i, sv := range g.SecondaryAxis {
		row := make([]any, 0, len(g.PrimaryAxis)+1)
		row = append(row, formatAxisValue(g.SecondaryFactor, sv))
		for _, v := range g.Values[i] {
			row = append(row, fmt.Sprintf("%.4f", v))
		}
		table.Append(row...)
	}
	table.Render()
}

// PrintInstruments imprime el directorio de instrumentos seleccionables.
func (c *Console) PrintInstruments(instruments []domain.Instrument) {
	fmt.Fprintf(c.out, "%d instruments available\n", len(instruments))

	table := tablewriter.NewWriter(c.out)
	table.Header("Name", "Symbol")
	for _, in := range instruments {
		table.Append(in.Name, in.Symbol)
	}
	table.Render()
}

// PrintRuns imprime el histórico de ejecuciones persistidas.
func (c *Console) PrintRuns(runs []domain.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(c.out, "no runs recorded")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("At", "Kind", "Symbol", "Metric", "Points", "Duration")
	for _, r := range runs {
		table.Append(
			r.At.Format("2006-01-02 15:04:05"),
			r.Kind,
			r.Symbol,
			string(r.Metric),
			fmt.Sprintf("%d", r.Points),
			r.Duration.Round(time.Millisecond).String(),
		)
	}
	table.Render()
}

// formatAxisValue formatea un valor de eje para display. Maturity se
// muestra en días (valor interno en años × 365), el resto tal cual.
func formatAxisValue(f domain.Factor, v float64) string {
	if f == domain.FactorMaturity {
		return fmt.Sprintf("%.1fd", v*daysYear)
	}
	return fmt.Sprintf("%.4f", v)
}
