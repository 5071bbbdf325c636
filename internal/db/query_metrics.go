package db

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/fr0stylo/gamecatalog/internal/observability"
)

const maxSamplesPerQuery = 512

// QueryLatencyStats summarizes recent samples for one statement shape.
type QueryLatencyStats struct {
	Name  string
	Count int
	P50   time.Duration
	P95   time.Duration
	Max   time.Duration
}

type queryLatencyTracker struct {
	mu      sync.Mutex
	samples map[string][]time.Duration
}

func newQueryLatencyTracker() *queryLatencyTracker {
	return &queryLatencyTracker{samples: make(map[string][]time.Duration)}
}

func (t *queryLatencyTracker) observe(name string, duration time.Duration) {
	if t == nil {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "unknown"
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	window := append(t.samples[name], duration)
	if len(window) > maxSamplesPerQuery {
		window = window[len(window)-maxSamplesPerQuery:]
	}
	t.samples[name] = window
}

func (t *queryLatencyTracker) snapshot() []QueryLatencyStats {
	if t == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	stats := make([]QueryLatencyStats, 0, len(t.samples))
	for name, durations := range t.samples {
		if len(durations) == 0 {
			continue
		}
		sorted := make([]time.Duration, len(durations))
		copy(sorted, durations)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		stats = append(stats, QueryLatencyStats{
			Name:  name,
			Count: len(sorted),
			P50:   sorted[(len(sorted)-1)/2],
			P95:   sorted[int(float64(len(sorted)-1)*0.95)],
			Max:   sorted[len(sorted)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].P95 == stats[j].P95 {
			return stats[i].Name < stats[j].Name
		}
		return stats[i].P95 > stats[j].P95
	})

	return stats
}

// instrumentedConn is the connection pool handed to GORM. Every statement is
// traced and its latency sampled under a name derived from the SQL.
type instrumentedConn struct {
	inner   gorm.ConnPool
	system  string
	tracker *queryLatencyTracker
}

func newInstrumentedConn(inner gorm.ConnPool, system string, tracker *queryLatencyTracker) gorm.ConnPool {
	if tracker == nil {
		return inner
	}
	return &instrumentedConn{inner: inner, system: system, tracker: tracker}
}

func (d *instrumentedConn) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	name := queryName(query)
	ctx, span := observability.StartDBSpan(ctx, d.system, name, "exec")
	defer span.End()

	start := time.Now()
	result, err := d.inner.ExecContext(ctx, query, args...)
	d.tracker.observe(name, time.Since(start))
	span.RecordError(err)
	return result, err
}

func (d *instrumentedConn) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	name := queryName(query)
	ctx, span := observability.StartDBSpan(ctx, d.system, name, "prepare")
	defer span.End()

	start := time.Now()
	stmt, err := d.inner.PrepareContext(ctx, query)
	d.tracker.observe(name, time.Since(start))
	span.RecordError(err)
	return stmt, err
}

func (d *instrumentedConn) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	name := queryName(query)
	ctx, span := observability.StartDBSpan(ctx, d.system, name, "query")
	defer span.End()

	start := time.Now()
	rows, err := d.inner.QueryContext(ctx, query, args...)
	d.tracker.observe(name, time.Since(start))
	span.RecordError(err)
	return rows, err
}

func (d *instrumentedConn) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	name := queryName(query)
	ctx, span := observability.StartDBSpan(ctx, d.system, name, "query_row")
	start := time.Now()
	row := d.inner.QueryRowContext(ctx, query, args...)
	d.tracker.observe(name, time.Since(start))
	span.End()
	return row
}

// queryName labels a statement as verb_table, e.g. "select_games".
func queryName(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	verb := strings.ToLower(fields[0])
	var table string
	switch verb {
	case "select", "delete":
		table = tokenAfter(fields, "from")
	case "insert":
		table = tokenAfter(fields, "into")
	case "update":
		if len(fields) > 1 {
			table = fields[1]
		}
	default:
		return verb
	}
	table = strings.Trim(table, "\"`'()")
	if table == "" {
		return verb
	}
	return verb + "_" + strings.ToLower(table)
}

func tokenAfter(fields []string, keyword string) string {
	for index := 0; index < len(fields)-1; index++ {
		if strings.EqualFold(fields[index], keyword) {
			return fields[index+1]
		}
	}
	return ""
}

// BeginTx lets GORM open transactions on the wrapped pool. Statements inside a
// transaction bypass instrumentation.
func (d *instrumentedConn) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	beginner, ok := d.inner.(gorm.TxBeginner)
	if !ok {
		return nil, gorm.ErrInvalidTransaction
	}
	return beginner.BeginTx(ctx, opts)
}
