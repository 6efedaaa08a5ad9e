package surface

// concurrent.go — worker pool para el sweep 2D.
//
// Cada celda del producto cartesiano es una evaluación closed-form
// independiente sin estado compartido, así que granularity² evaluaciones se
// reparten entre workers sin más sincronización que recoger los resultados
// por índice (fila, columna).

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/alejandrodnm/greekbot/internal/domain"
)

// sweep2D evalúa la métrica sobre primario × secundario usando un worker
// pool. El primer error de evaluación aborta el sweep completo (política
// atómica). Si workers <= 0 usa runtime.NumCPU() × 2.
func (b *Builder) sweep2D(
	ctx context.Context,
	base domain.OptionContract,
	req Request,
	primaryAxis, secondaryAxis []float64,
) ([][]float64, error) {
	workers := b.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}

	type cell struct {
		row, col int
		contract domain.OptionContract
	}
	type result struct {
		row, col int
		value    float64
	}

	total := len(primaryAxis) * len(secondaryAxis)
	workCh := make(chan cell, total)
	resultCh := make(chan result, total)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for w := range workCh {
				res, err := domain.Evaluate(w.contract)
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					continue
				}
				value, err := res.Metric(req.Metric)
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					continue
				}
				resultCh <- result{row: w.row, col: w.col, value: value}
			}
		}()
	}

	// Alimentar el pool: una celda por par (secundario, primario).
	for i, sv := range secondaryAxis {
		for j, pv := range primaryAxis {
			c := req.Primary.Apply(base, pv)
			c = req.Secondary.Apply(c, sv)
			select {
			case <-ctx.Done():
				close(workCh)
				wg.Wait()
				return nil, ctx.Err()
			case workCh <- cell{row: i, col: j, contract: c}:
			}
		}
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Filas = eje secundario, columnas = eje primario.
	values := make([][]float64, len(secondaryAxis))
	for i := range values {
		values[i] = make([]float64, len(primaryAxis))
	}
	for r := range resultCh {
		values[r.row][r.col] = r.value
	}

	if firstErr != nil {
		return nil, fmt.Errorf("surface.sweep2D: %w", firstErr)
	}
	return values, nil
}
