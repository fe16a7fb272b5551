package database

import (
	"strings"
)

// InitEnums creates the postgres enum types used by the explicit schema
func (s *PostgreSQLStore) InitEnums() error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'college_type') THEN
				CREATE TYPE college_type AS ENUM ('ENGINEERING', 'MEDICINE', 'ARTS', 'SCIENCE', 'BUSINESS', 'LAW', 'OTHER');
			END IF;
		END $$;

		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'section_type') THEN
				CREATE TYPE section_type AS ENUM ('HERO', 'GALLERY', 'TEXT', 'PROGRAMS', 'CONTACT', 'CUSTOM');
			END IF;
		END $$;

		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'field_type') THEN
				CREATE TYPE field_type AS ENUM ('TEXT', 'TEXTAREA', 'EMAIL', 'NUMBER', 'SELECT', 'RADIO', 'CHECKBOX', 'DATE');
			END IF;
		END $$;

		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_type') THEN
				CREATE TYPE user_type AS ENUM ('ADMIN', 'SUPERADMIN', 'GUEST');
			END IF;
		END $$;
	`
	_, err := s.db.Exec(query)

	return err
}

// InitTables creates all tables with explicit SQL, child tables reference
// parents with ON DELETE CASCADE so manual cascade walks stay cheap
func (s *PostgreSQLStore) InitTables() error {

	universities_table := `
	CREATE TABLE IF NOT EXISTS universities (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) UNIQUE NOT NULL,
		logo_url VARCHAR(512),
		social_media JSONB,
		description TEXT,
		news_items JSONB,
		content JSONB,
		created_at TIMESTAMPTZ DEFAULT now(),
		updated_at TIMESTAMPTZ DEFAULT now(),
		deleted_at TIMESTAMPTZ
	);
	`

	users_table := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		external_id VARCHAR(255) UNIQUE,
		email VARCHAR(512) UNIQUE NOT NULL,
		password_hash TEXT,
		name VARCHAR(255) NOT NULL,
		avatar_url VARCHAR(512),
		user_type VARCHAR(20) DEFAULT 'GUEST',
		college_id BIGINT,
		created_at TIMESTAMPTZ DEFAULT now(),
		updated_at TIMESTAMPTZ DEFAULT now(),
		deleted_at TIMESTAMPTZ
	);
	`

	colleges_table := `
	CREATE TABLE IF NOT EXISTS colleges (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) UNIQUE NOT NULL,
		type VARCHAR(30) NOT NULL,
		theme JSONB,
		gallery_images JSONB,
		projects JSONB,
		faq JSONB,
		university_id BIGINT REFERENCES universities(id) ON DELETE SET NULL,
		created_by_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ DEFAULT now(),
		updated_at TIMESTAMPTZ DEFAULT now(),
		deleted_at TIMESTAMPTZ
	);
	`

	sections_table := `
	CREATE TABLE IF NOT EXISTS sections (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		college_id BIGINT NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		content TEXT DEFAULT '',
		display_order INT DEFAULT 0,
		section_type VARCHAR(30) NOT NULL,
		settings JSONB,
		created_at TIMESTAMPTZ DEFAULT now(),
		updated_at TIMESTAMPTZ DEFAULT now(),
		deleted_at TIMESTAMPTZ
	);
	`

	programs_table := `
	CREATE TABLE IF NOT EXISTS programs (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		college_id BIGINT NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		slug VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ DEFAULT now(),
		updated_at TIMESTAMPTZ DEFAULT now(),
		deleted_at TIMESTAMPTZ
	);
	`

	form_sections_table := `
	CREATE TABLE IF NOT EXISTS form_sections (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		college_id BIGINT REFERENCES colleges(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		description TEXT DEFAULT '',
		active BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMPTZ DEFAULT now(),
		updated_at TIMESTAMPTZ DEFAULT now(),
		deleted_at TIMESTAMPTZ
	);
	`

	form_fields_table := `
	CREATE TABLE IF NOT EXISTS form_fields (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		form_section_id BIGINT NOT NULL REFERENCES form_sections(id) ON DELETE CASCADE,
		label VARCHAR(255) NOT NULL,
		type VARCHAR(30) NOT NULL,
		is_required BOOLEAN DEFAULT FALSE,
		options JSONB,
		validation JSONB,
		display_order INT DEFAULT 0,
		created_at TIMESTAMPTZ DEFAULT now(),
		updated_at TIMESTAMPTZ DEFAULT now(),
		deleted_at TIMESTAMPTZ
	);
	`

	form_submissions_table := `
	CREATE TABLE IF NOT EXISTS form_submissions (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		form_section_id BIGINT NOT NULL REFERENCES form_sections(id) ON DELETE CASCADE,
		college_id BIGINT NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
		data JSONB NOT NULL,
		submitted_at TIMESTAMPTZ DEFAULT now()
	);
	`

	audit_logs_table := `
	CREATE TABLE IF NOT EXISTS audit_logs (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		action VARCHAR(50) NOT NULL,
		entity VARCHAR(100) NOT NULL,
		entity_id BIGINT,
		user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
		metadata JSONB,
		created_at TIMESTAMPTZ DEFAULT now()
	);
	`

	all_tables := strings.Join([]string{
		universities_table,
		users_table,
		colleges_table,
		sections_table,
		programs_table,
		form_sections_table,
		form_fields_table,
		form_submissions_table,
		audit_logs_table,
	}, "")

	_, err := s.db.Exec(all_tables)
	return err
}
