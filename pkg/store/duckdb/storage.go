package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const OrganizationsSchema = `
	CREATE TABLE IF NOT EXISTS organizations (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL,
		code VARCHAR NOT NULL UNIQUE,
		type VARCHAR NOT NULL DEFAULT 'district',
		parent_id BIGINT,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const IndicatorsSchema = `
	CREATE TABLE IF NOT EXISTS indicators (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL,
		code VARCHAR NOT NULL UNIQUE
	);
`

const ProjectsSchema = `
	CREATE TABLE IF NOT EXISTS projects (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL,
		code VARCHAR NOT NULL UNIQUE
	);
`

const AggregatesSchema = `
	CREATE SEQUENCE IF NOT EXISTS aggregates_id_seq;
	CREATE TABLE IF NOT EXISTS aggregates (
		id BIGINT PRIMARY KEY DEFAULT nextval('aggregates_id_seq'),
		indicator_id BIGINT NOT NULL,
		project_id BIGINT NOT NULL,
		organization_id BIGINT NOT NULL,
		period_start DATE NOT NULL,
		period_end DATE NOT NULL,
		value JSON NOT NULL,
		notes VARCHAR,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_by VARCHAR,
		UNIQUE (indicator_id, project_id, organization_id, period_start, period_end)
	);
`

const ReportsSchema = `
	CREATE TABLE IF NOT EXISTS reports (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL,
		description VARCHAR,
		report_type VARCHAR NOT NULL DEFAULT 'custom',
		parameters JSON,
		cached_data JSON,
		last_generated TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_by VARCHAR
	);
`

const ScheduledReportsSchema = `
	CREATE SEQUENCE IF NOT EXISTS scheduled_reports_id_seq;
	CREATE TABLE IF NOT EXISTS scheduled_reports (
		id BIGINT PRIMARY KEY DEFAULT nextval('scheduled_reports_id_seq'),
		report_name VARCHAR NOT NULL,
		report_type VARCHAR NOT NULL DEFAULT 'custom',
		frequency VARCHAR NOT NULL,
		recipients JSON,
		is_active BOOLEAN NOT NULL DEFAULT true,
		next_run TIMESTAMP NOT NULL,
		last_run TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_by VARCHAR
	);
`

var bootQueries = []string{
	OrganizationsSchema,
	IndicatorsSchema,
	ProjectsSchema,
	AggregatesSchema,
	ReportsSchema,
	ScheduledReportsSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
