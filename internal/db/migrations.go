package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		code VARCHAR(32) NOT NULL,
		name TEXT NOT NULL,
		customer_name TEXT NOT NULL DEFAULT '',
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'planning',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_projects_code ON projects (code);`,
	`CREATE TABLE IF NOT EXISTS parts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		code VARCHAR(64) NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		material VARCHAR(64) NOT NULL DEFAULT '',
		form_type VARCHAR(32) NOT NULL DEFAULT '',
		dimensions JSONB,
		manufacturing_methods JSONB NOT NULL DEFAULT '[]',
		status VARCHAR(32) NOT NULL DEFAULT 'pending',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_parts_project_id ON parts (project_id);`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name TEXT NOT NULL,
		contact_person TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		tax_id VARCHAR(32) NOT NULL DEFAULT '',
		specializations JSONB NOT NULL DEFAULT '[]',
		payment_terms INTEGER NOT NULL DEFAULT 30,
		perf_total_orders INTEGER NOT NULL DEFAULT 0 CHECK (perf_total_orders >= 0),
		perf_on_time_deliveries INTEGER NOT NULL DEFAULT 0,
		perf_quality_rejections INTEGER NOT NULL DEFAULT 0,
		perf_average_price_ratio NUMERIC(10,4) NOT NULL DEFAULT 1.0,
		perf_delivery_score NUMERIC(5,1) NOT NULL DEFAULT 40.0,
		perf_quality_score NUMERIC(5,1) NOT NULL DEFAULT 30.0,
		perf_price_score NUMERIC(5,1) NOT NULL DEFAULT 15.0,
		perf_payment_score NUMERIC(5,1) NOT NULL DEFAULT 10.0,
		perf_total_score NUMERIC(5,1) NOT NULL DEFAULT 95.0,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (perf_on_time_deliveries <= perf_total_orders),
		CHECK (perf_quality_rejections <= perf_total_orders)
	);`,
	`CREATE TABLE IF NOT EXISTS quote_requests (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		part_id UUID NOT NULL REFERENCES parts(id) ON DELETE CASCADE,
		manufacturing_method VARCHAR(16) NOT NULL,
		deadline TIMESTAMPTZ NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'requested',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_quote_requests_part_id ON quote_requests (part_id);`,
	`CREATE TABLE IF NOT EXISTS quote_request_suppliers (
		quote_request_id UUID NOT NULL REFERENCES quote_requests(id) ON DELETE CASCADE,
		supplier_id UUID NOT NULL,
		token_id UUID NOT NULL,
		used_at TIMESTAMPTZ,
		PRIMARY KEY (quote_request_id, supplier_id)
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_quote_request_suppliers_token ON quote_request_suppliers (token_id);`,
	`CREATE TABLE IF NOT EXISTS quote_responses (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		quote_request_id UUID NOT NULL REFERENCES quote_requests(id) ON DELETE CASCADE,
		supplier_id UUID NOT NULL,
		unit_price NUMERIC(18,4) NOT NULL,
		currency VARCHAR(3) NOT NULL DEFAULT 'TRY',
		total_price NUMERIC(18,4) NOT NULL,
		delivery_date TIMESTAMPTZ NOT NULL,
		payment_terms INTEGER NOT NULL DEFAULT 30,
		status VARCHAR(16) NOT NULL DEFAULT 'received',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_quote_responses_request_supplier ON quote_responses (quote_request_id, supplier_id);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		code VARCHAR(32) NOT NULL,
		quote_response_id UUID NOT NULL REFERENCES quote_responses(id),
		part_id UUID NOT NULL,
		supplier_id UUID NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(18,4) NOT NULL,
		currency VARCHAR(3) NOT NULL DEFAULT 'TRY',
		total_price NUMERIC(18,4) NOT NULL,
		expected_delivery TIMESTAMPTZ,
		actual_delivery TIMESTAMPTZ,
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_orders_code ON orders (code);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_supplier_id ON orders (supplier_id);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);`,
	`CREATE TABLE IF NOT EXISTS currency_rates (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		usd_to_try NUMERIC(12,4) NOT NULL CHECK (usd_to_try > 0),
		eur_to_try NUMERIC(12,4) NOT NULL CHECK (eur_to_try > 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_by VARCHAR(64) NOT NULL DEFAULT 'manual'
	);`,
	`CREATE INDEX IF NOT EXISTS idx_currency_rates_updated_at ON currency_rates (updated_at DESC);`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		type VARCHAR(32) NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		reference_type VARCHAR(32) NOT NULL DEFAULT '',
		reference_id UUID,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications (created_at DESC) WHERE is_read = FALSE;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
