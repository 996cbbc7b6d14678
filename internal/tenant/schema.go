package tenant

import "fmt"

const ticketsTableDDL = `CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	customer_name VARCHAR(200) NOT NULL,
	customer_phone VARCHAR(40) NOT NULL DEFAULT '',
	customer_email VARCHAR(255) NOT NULL DEFAULT '',
	device_type VARCHAR(100) NOT NULL DEFAULT '',
	device_brand VARCHAR(100) NOT NULL DEFAULT '',
	device_model VARCHAR(100) NOT NULL DEFAULT '',
	issue_description TEXT NOT NULL DEFAULT '',
	estimated_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
	status VARCHAR(20) NOT NULL DEFAULT 'pending'
		CHECK (status IN ('pending', 'in_progress', 'completed', 'delivered', 'cancelled')),
	is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
	deleted_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const teamTableDDL = `CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(200) NOT NULL,
	email VARCHAR(255) NOT NULL DEFAULT '',
	phone VARCHAR(40) NOT NULL DEFAULT '',
	role VARCHAR(20) NOT NULL DEFAULT 'technician'
		CHECK (role IN ('technician', 'manager', 'receptionist')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// CreateStatements returns the DDL that creates the tenant's tables, in
// execution order.
func (t TableSet) CreateStatements() []string {
	return []string{
		fmt.Sprintf(ticketsTableDDL, t.Tickets),
		fmt.Sprintf(teamTableDDL, t.Team),
	}
}
