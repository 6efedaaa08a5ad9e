package storage

// sqlite.go — caché de evaluaciones y histórico de ejecuciones.
//
// Estrategia:
//   - `evaluations`: UNA fila por tupla completa de parámetros (UPSERT).
//     El engine es determinista: misma tupla → mismo resultado, así que la
//     fila solo actualiza last_seen/hits en repeticiones.
//   - `runs`: resumen ligero por ejecución (pricing puntual o sweep).
//   - Caché en memoria de keys ya escritas: una tupla repetida dentro del
//     proceso solo toca la DB para el bump de last_seen.
//   - Prune automático al arrancar: evaluations y runs > 30d.

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/alejandrodnm/greekbot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Resumen ligero por ejecución
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    kind        TEXT NOT NULL,
    symbol      TEXT,
    metric      TEXT,
    points      INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    created_at  DATETIME NOT NULL
);

-- Una fila por tupla de parámetros, sin duplicados
CREATE TABLE IF NOT EXISTS evaluations (
    param_key      TEXT PRIMARY KEY,
    symbol         TEXT,
    option_type    TEXT NOT NULL,
    spot           REAL NOT NULL,
    strike         REAL NOT NULL,
    maturity       REAL NOT NULL,
    rate           REAL NOT NULL,
    dividend_yield REAL NOT NULL,
    volatility     REAL NOT NULL,
    d1             REAL NOT NULL,
    d2             REAL NOT NULL,
    price          REAL NOT NULL,
    delta          REAL NOT NULL,
    gamma          REAL NOT NULL,
    vega           REAL NOT NULL,
    theta          REAL NOT NULL,
    rho            REAL NOT NULL,
    vanna          REAL NOT NULL,
    volga          REAL NOT NULL,
    charm          REAL NOT NULL,
    color          REAL NOT NULL,
    speed          REAL NOT NULL,
    gearing        REAL NOT NULL,
    epsilon        REAL NOT NULL,
    first_seen     DATETIME NOT NULL,
    last_seen      DATETIME NOT NULL,
    hits           INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_runs_at    ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_eval_sym   ON evaluations(symbol);
CREATE INDEX IF NOT EXISTS idx_eval_last  ON evaluations(last_seen DESC);
`

const retention = 30 * 24 * time.Hour

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db    *sql.DB
	cache map[string]bool // param_key → ya escrita en esta sesión
	mu    sync.Mutex
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia datos antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{
		db:    db,
		cache: make(map[string]bool),
	}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveEvaluation hace upsert de la evaluación keyed por la tupla completa de
// parámetros del contrato.
func (s *SQLiteStorage) SaveEvaluation(ctx context.Context, symbol string, c domain.OptionContract, r domain.EvaluationResult) error {
	key := paramKey(c)
	now := time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	seen := s.cache[key]
	s.cache[key] = true
	s.mu.Unlock()

	if seen {
		// El resultado es determinista: solo refrescar last_seen/hits.
		_, err := s.db.ExecContext(ctx,
			`UPDATE evaluations SET last_seen = ?, hits = hits + 1 WHERE param_key = ?`,
			now, key,
		)
		if err != nil {
			return fmt.Errorf("storage.SaveEvaluation: bump: %w", err)
		}
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (
			param_key, symbol, option_type,
			spot, strike, maturity, rate, dividend_yield, volatility,
			d1, d2,
			price, delta, gamma, vega, theta, rho,
			vanna, volga, charm, color, speed, gearing, epsilon,
			first_seen, last_seen, hits
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(param_key) DO UPDATE SET
			symbol    = excluded.symbol,
			last_seen = excluded.last_seen,
			hits      = hits + 1`,
		key, symbol, string(c.Type),
		c.Spot, c.Strike, c.Maturity, c.Rate, c.DividendYield, c.Volatility,
		r.D1, r.D2,
		r.Price, r.Delta, r.Gamma, r.Vega, r.Theta, r.Rho,
		r.Vanna, r.Volga, r.Charm, r.Color, r.Speed, r.Gearing, r.Epsilon,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("storage.SaveEvaluation: upsert: %w", err)
	}
	return nil
}

// Lookup devuelve la evaluación cacheada para un contrato idéntico.
func (s *SQLiteStorage) Lookup(ctx context.Context, c domain.OptionContract) (domain.EvaluationResult, bool, error) {
	var r domain.EvaluationResult
	err := s.db.QueryRowContext(ctx, `
		SELECT d1, d2, price, delta, gamma, vega, theta, rho,
		       vanna, volga, charm, color, speed, gearing, epsilon
		FROM evaluations WHERE param_key = ?`,
		paramKey(c),
	).Scan(
		&r.D1, &r.D2,
		&r.Price, &r.Delta, &r.Gamma, &r.Vega, &r.Theta, &r.Rho,
		&r.Vanna, &r.Volga, &r.Charm, &r.Color, &r.Speed, &r.Gearing, &r.Epsilon,
	)
	if err == sql.ErrNoRows {
		return domain.EvaluationResult{}, false, nil
	}
	if err != nil {
		return domain.EvaluationResult{}, false, fmt.Errorf("storage.Lookup: %w", err)
	}
	return r, true, nil
}

// SaveRun persiste el resumen de una ejecución.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run domain.RunSummary) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, symbol, metric, points, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Kind, run.Symbol, string(run.Metric),
		run.Points, run.Duration.Milliseconds(), run.At.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: %w", err)
	}
	return nil
}

// RecentRuns devuelve las últimas ejecuciones, más reciente primero.
func (s *SQLiteStorage) RecentRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, symbol, metric, points, duration_ms, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage.RecentRuns: query: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunSummary
	for rows.Next() {
		var (
			run        domain.RunSummary
			metric     string
			durationMs int64
			createdAt  string
		)
		if err := rows.Scan(&run.ID, &run.Kind, &run.Symbol, &metric, &run.Points, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage.RecentRuns: scan row: %w", err)
		}
		run.Metric = domain.Metric(metric)
		run.Duration = time.Duration(durationMs) * time.Millisecond
		run.At, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld elimina datos antiguos para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retention).Format(time.RFC3339)
	s.db.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE last_seen < ?`, cutoff)
}

// paramKey serializa la tupla completa de parámetros de entrada. Dos
// contratos con la misma key producen exactamente el mismo resultado.
func paramKey(c domain.OptionContract) string {
	fields := []float64{c.Spot, c.Strike, c.Maturity, c.Rate, c.DividendYield, c.Volatility}
	key := string(c.Type) + "|" + string(c.Style)
	for _, f := range fields {
		key += "|" + strconv.FormatFloat(f, 'g', -1, 64)
	}
	return key
}
