package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens the pool and verifies connectivity before returning it.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	config.MaxConns = 10
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// schema is applied idempotently at startup. The bookings EXCLUDE constraint
// is the database-level backstop for the in-transaction overlap probe: two
// concurrent inserts that both passed the probe cannot both commit.
const schema = `
CREATE EXTENSION IF NOT EXISTS btree_gist;

CREATE TABLE IF NOT EXISTS dishes (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT,
	price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
	country_of_origin TEXT,
	photo_object TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS products (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	weight NUMERIC(12,3),
	expiry_date TIMESTAMPTZ,
	quantity NUMERIC(14,3) NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	category TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS suppliers (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT,
	contact_person TEXT,
	phone TEXT,
	email TEXT
);

CREATE TABLE IF NOT EXISTS recipes (
	dish_id UUID NOT NULL REFERENCES dishes(id) ON DELETE CASCADE,
	product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	amount NUMERIC(14,3) NOT NULL CHECK (amount > 0),
	PRIMARY KEY (dish_id, product_id)
);

CREATE TABLE IF NOT EXISTS tables (
	id UUID PRIMARY KEY,
	table_number INT NOT NULL UNIQUE,
	seats INT NOT NULL CHECK (seats > 0),
	status TEXT NOT NULL DEFAULT 'free'
);

CREATE TABLE IF NOT EXISTS waiters (
	id UUID PRIMARY KEY,
	last_name TEXT NOT NULL,
	first_name TEXT NOT NULL,
	middle_name TEXT,
	salary NUMERIC(12,2)
);

CREATE TABLE IF NOT EXISTS guests (
	id UUID PRIMARY KEY,
	last_name TEXT NOT NULL,
	first_name TEXT NOT NULL,
	middle_name TEXT,
	birth_date DATE,
	total_orders INT NOT NULL DEFAULT 0,
	total_discount NUMERIC(12,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	table_id UUID NOT NULL REFERENCES tables(id) ON DELETE CASCADE,
	guest_id UUID NOT NULL REFERENCES guests(id) ON DELETE CASCADE,
	booking_date DATE NOT NULL,
	guests_count INT NOT NULL CHECK (guests_count > 0),
	booking_start TIME NOT NULL,
	booking_end TIME NOT NULL,
	CHECK (booking_start < booking_end),
	CONSTRAINT bookings_no_overlap EXCLUDE USING gist (
		table_id WITH =,
		booking_date WITH =,
		timerange(booking_start, booking_end) WITH &&
	)
);

CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	guest_id UUID NOT NULL REFERENCES guests(id),
	table_id UUID REFERENCES tables(id),
	waiter_id UUID REFERENCES waiters(id),
	booking_id UUID REFERENCES bookings(id) ON DELETE SET NULL,
	order_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'created',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS order_items (
	order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	dish_id UUID NOT NULL REFERENCES dishes(id),
	quantity INT NOT NULL CHECK (quantity > 0),
	unit_price NUMERIC(12,2) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (order_id, dish_id)
);

CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	login TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	guest_id UUID REFERENCES guests(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_guest ON orders(guest_id);
CREATE INDEX IF NOT EXISTS idx_orders_status_time ON orders(status, order_time);
CREATE INDEX IF NOT EXISTS idx_bookings_table_date ON bookings(table_id, booking_date);
CREATE INDEX IF NOT EXISTS idx_products_expiry ON products(expiry_date);
`

// timerange is a helper domain for the exclusion constraint; created before
// the schema because the constraint definition references it.
const timeRangeFn = `
CREATE OR REPLACE FUNCTION timerange(t1 TIME, t2 TIME) RETURNS tsrange AS $$
	SELECT tsrange('2000-01-01'::timestamp + t1, '2000-01-01'::timestamp + t2, '[)')
$$ LANGUAGE sql IMMUTABLE;
`

// Migrate applies the schema. Statements are idempotent, so repeated startup
// runs are safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, timeRangeFn); err != nil {
		return fmt.Errorf("create timerange helper: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
