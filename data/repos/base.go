package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pxdata/data/cache"
	q "pxdata/data/queries"
)

const (
	DefaultMaxConns         = 4
	DefaultStatementTimeout = 10 * time.Second
)

type Options struct {
	MaxConns         int32
	StatementTimeout time.Duration
	InstrumentIds    *cache.InstrumentIds // optional, nil disables id caching
}

// Postgres is the persistence gateway. Every operation runs a single
// autocommit statement on a pooled connection, bounded by StatementTimeout.
type Postgres struct {
	db               *pgxpool.Pool
	ids              *cache.InstrumentIds
	statementTimeout time.Duration
}

func GetPostgresConnection(ctx context.Context, connectionString string, opts Options) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("error parsing pgx connection string: %w", err)
	}

	config.MaxConns = DefaultMaxConns
	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("error making new pgx pool: %w", err)
	}

	timeout := opts.StatementTimeout
	if timeout <= 0 {
		timeout = DefaultStatementTimeout
	}

	return &Postgres{
		db:               pool,
		ids:              opts.InstrumentIds,
		statementTimeout: timeout,
	}, nil
}

func (pg *Postgres) Ping(ctx context.Context) error {
	ctx, cancel := pg.statementContext(ctx)
	defer cancel()
	return pg.db.Ping(ctx)
}

func (pg *Postgres) Close() {
	pg.db.Close()
}

// EnsureSchema creates the Instruments and PriceData tables when missing.
func (pg *Postgres) EnsureSchema(ctx context.Context) error {
	ctx, cancel := pg.statementContext(ctx)
	defer cancel()

	// no arguments, so pgx uses the simple protocol and the file may hold several statements
	if _, err := pg.db.Exec(ctx, q.Get(q.QueryHelper.Create.Schema)); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}

func (pg *Postgres) statementContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, pg.statementTimeout)
}

func Query[T any](ctx context.Context, pg *Postgres, query string, args pgx.NamedArgs) ([]*T, error) {
	ctx, cancel := pg.statementContext(ctx)
	defer cancel()

	rows, err := pg.db.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("unable to query: %w", err)
	}
	defer rows.Close()

	res, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("error occured while collecting rows in query: %w", err)
	}

	result := make([]*T, len(res))
	for i := range res {
		result[i] = &res[i]
	}

	return result, nil
}

func Exec(ctx context.Context, pg *Postgres, query string, args pgx.NamedArgs) (int64, error) {
	ctx, cancel := pg.statementContext(ctx)
	defer cancel()

	tag, err := pg.db.Exec(ctx, query, args)
	if err != nil {
		return 0, classify(err)
	}
	return tag.RowsAffected(), nil
}
