package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson"
)

const uniqueViolation = "23505"

// PostgresDatabase stores each collection as a table of (id, jsonb) rows.
// Documents are serialised as relaxed extended JSON so bson tags apply.
type PostgresDatabase struct {
	pool *pgxpool.Pool
}

// NewPostgres opens a pool against dbURL.
func NewPostgres(ctx context.Context, dbURL string) (*PostgresDatabase, error) {
	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresDatabase{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool.
func NewPostgresFromPool(pool *pgxpool.Pool) *PostgresDatabase {
	return &PostgresDatabase{pool: pool}
}

func (p *PostgresDatabase) Collection(name string) Collection {
	return &pgCollection{pool: p.pool, table: pgx.Identifier{name}.Sanitize()}
}

// EnsureIndexes creates the backing tables and expression indexes.
func (p *PostgresDatabase) EnsureIndexes(ctx context.Context, indexes []Index) error {
	seen := map[string]bool{}
	for _, idx := range indexes {
		if seen[idx.Collection] {
			continue
		}
		seen[idx.Collection] = true
		table := pgx.Identifier{idx.Collection}.Sanitize()
		query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, doc JSONB NOT NULL)`, table)
		if _, err := p.pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", idx.Collection, err)
		}
	}

	for _, idx := range indexes {
		exprs := make([]string, 0, len(idx.Fields))
		for _, f := range idx.Fields {
			exprs = append(exprs, fmt.Sprintf("(doc->>'%s')", strings.ReplaceAll(f, "'", "''")))
		}
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		query := fmt.Sprintf(`CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)`,
			unique,
			pgx.Identifier{idx.Name()}.Sanitize(),
			pgx.Identifier{idx.Collection}.Sanitize(),
			strings.Join(exprs, ", "),
		)
		if _, err := p.pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.Name(), err)
		}
	}
	return nil
}

func (p *PostgresDatabase) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresDatabase) Close(ctx context.Context) error {
	p.pool.Close()
	return nil
}

type pgCollection struct {
	pool  *pgxpool.Pool
	table string
}

func (c *pgCollection) Insert(ctx context.Context, id string, doc any) error {
	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb)`, c.table)
	if _, err := c.pool.Exec(ctx, query, id, data); err != nil {
		return translatePgError(err)
	}
	return nil
}

func (c *pgCollection) Replace(ctx context.Context, id string, doc any) error {
	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	query := fmt.Sprintf(`UPDATE %s SET doc = $2::jsonb WHERE id = $1`, c.table)
	tag, err := c.pool.Exec(ctx, query, id, data)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *pgCollection) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table)
	tag, err := c.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *pgCollection) Get(ctx context.Context, id string, out any) error {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.table)
	var data []byte
	if err := c.pool.QueryRow(ctx, query, id).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return bson.UnmarshalExtJSON(data, false, out)
}

func (c *pgCollection) Find(ctx context.Context, filter Filter) (Cursor, error) {
	where, args, err := containment(filter)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT doc FROM %s%s ORDER BY id`, c.table, where)
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &pgCursor{rows: rows}, nil
}

func (c *pgCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	where, args, err := containment(filter)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, c.table, where)
	var n int64
	if err := c.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// containment turns an equality filter into a jsonb @> predicate.
func containment(filter Filter) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	data, err := json.Marshal(filter)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode filter: %w", err)
	}
	return " WHERE doc @> $1::jsonb", []any{data}, nil
}

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

type pgCursor struct {
	rows pgx.Rows
	buf  []byte
	err  error
}

func (c *pgCursor) Next(ctx context.Context) bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}
	if err := c.rows.Scan(&c.buf); err != nil {
		c.err = err
		return false
	}
	return true
}

func (c *pgCursor) Decode(v any) error {
	return bson.UnmarshalExtJSON(c.buf, false, v)
}

func (c *pgCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *pgCursor) Close(ctx context.Context) error {
	c.rows.Close()
	return nil
}
