// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk — no network, no
// separate server process, nothing to install beyond the driver. The
// blank import below registers the sqlite3 driver with database/sql;
// its init() does that automatically when the package loads.
//
// This package is also where the user-specific persistence rules live:
// passwords go through a one-way salted bcrypt hash before they touch
// the database, and emails are stored lowercased behind a UNIQUE index
// so duplicate registration fails regardless of case.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/karuna-foundation/outreach-api/internal/config"
	"github.com/karuna-foundation/outreach-api/internal/storage"
	"github.com/karuna-foundation/outreach-api/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is a connection pool, safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, creates the three
// collection tables if they do not already exist, and returns a
// ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe on every boot.
	// One table per entity kind, flat columns matching the record
	// fields. created_at is recorded on insert, RFC 3339 UTC.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS donations (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL,
			amount        REAL NOT NULL,
			donation_type TEXT NOT NULL,
			cause         TEXT NOT NULL,
			fund_type     TEXT NOT NULL,
			message       TEXT NOT NULL DEFAULT '',
			communication TEXT NOT NULL,
			interaction   TEXT NOT NULL,
			mentorship    TEXT NOT NULL,
			tax_exemption TEXT NOT NULL,
			motivation    TEXT NOT NULL,
			created_at    TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS applications (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			full_name           TEXT NOT NULL,
			email               TEXT NOT NULL,
			phone               TEXT NOT NULL,
			grade               TEXT NOT NULL,
			essay               TEXT NOT NULL,
			adhaar_card         TEXT NOT NULL,
			ration_card         TEXT NOT NULL,
			income_certificate  TEXT NOT NULL,
			marksheet           TEXT NOT NULL,
			attendance_sheet    TEXT NOT NULL,
			father_name         TEXT NOT NULL DEFAULT '',
			father_occupation   TEXT NOT NULL DEFAULT '',
			mother_name         TEXT NOT NULL DEFAULT '',
			mother_occupation   TEXT NOT NULL DEFAULT '',
			annual_income       REAL NOT NULL DEFAULT 0,
			bank_account_number TEXT NOT NULL DEFAULT '',
			ifsc_code           TEXT NOT NULL DEFAULT '',
			created_at          TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db}, nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// CreateDonation inserts a new row into the donations table and returns
// the auto-generated primary key. Identical submissions insert distinct
// rows; this system performs no deduplication.
func (s *SQLite) CreateDonation(d types.Donation) (int64, error) {
	stmt, err := s.Db.Prepare(`
		INSERT INTO donations (
			name, email, amount, donation_type, cause, fund_type,
			message, communication, interaction, mentorship,
			tax_exemption, motivation, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("CreateDonation: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(
		d.Name, d.Email, d.Amount, d.DonationType, d.Cause, d.FundType,
		d.Message, d.Communication, d.Interaction, d.Mentorship,
		d.TaxExemption, d.Motivation, now(),
	)
	if err != nil {
		return 0, fmt.Errorf("CreateDonation: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateDonation: last insert id: %w", err)
	}

	return lastID, nil
}

// GetDonations returns all donation rows, newest first.
func (s *SQLite) GetDonations() ([]types.Donation, error) {
	stmt, err := s.Db.Prepare(`
		SELECT id, name, email, amount, donation_type, cause, fund_type,
		       message, communication, interaction, mentorship,
		       tax_exemption, motivation, created_at
		FROM donations ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("GetDonations: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetDonations: query: %w", err)
	}
	defer rows.Close()

	// Pre-allocate an empty (non-nil) slice so the JSON encoding is
	// [] rather than null when there are no rows.
	donations := make([]types.Donation, 0)

	for rows.Next() {
		var d types.Donation
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Email, &d.Amount, &d.DonationType,
			&d.Cause, &d.FundType, &d.Message, &d.Communication,
			&d.Interaction, &d.Mentorship, &d.TaxExemption,
			&d.Motivation, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("GetDonations: scan row: %w", err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetDonations: rows iteration: %w", err)
	}

	return donations, nil
}

// CreateApplication inserts a scholarship application. The caller is
// responsible for having stored the five attachments first; by the time
// a record reaches this method its file-handle fields are plain text.
func (s *SQLite) CreateApplication(a types.ScholarshipApplication) (int64, error) {
	stmt, err := s.Db.Prepare(`
		INSERT INTO applications (
			full_name, email, phone, grade, essay,
			adhaar_card, ration_card, income_certificate, marksheet,
			attendance_sheet, father_name, father_occupation,
			mother_name, mother_occupation, annual_income,
			bank_account_number, ifsc_code, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("CreateApplication: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(
		a.FullName, a.Email, a.Phone, a.Grade, a.Essay,
		a.AdhaarCard, a.RationCard, a.IncomeCertificate, a.Marksheet,
		a.AttendanceSheet, a.FatherName, a.FatherOccupation,
		a.MotherName, a.MotherOccupation, a.AnnualIncome,
		a.BankAccountNumber, a.IFSCCode, now(),
	)
	if err != nil {
		return 0, fmt.Errorf("CreateApplication: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateApplication: last insert id: %w", err)
	}

	return lastID, nil
}

// GetApplications returns all scholarship applications, newest first.
func (s *SQLite) GetApplications() ([]types.ScholarshipApplication, error) {
	stmt, err := s.Db.Prepare(`
		SELECT id, full_name, email, phone, grade, essay,
		       adhaar_card, ration_card, income_certificate, marksheet,
		       attendance_sheet, father_name, father_occupation,
		       mother_name, mother_occupation, annual_income,
		       bank_account_number, ifsc_code, created_at
		FROM applications ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("GetApplications: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetApplications: query: %w", err)
	}
	defer rows.Close()

	applications := make([]types.ScholarshipApplication, 0)

	for rows.Next() {
		var a types.ScholarshipApplication
		if err := rows.Scan(
			&a.ID, &a.FullName, &a.Email, &a.Phone, &a.Grade, &a.Essay,
			&a.AdhaarCard, &a.RationCard, &a.IncomeCertificate,
			&a.Marksheet, &a.AttendanceSheet, &a.FatherName,
			&a.FatherOccupation, &a.MotherName, &a.MotherOccupation,
			&a.AnnualIncome, &a.BankAccountNumber, &a.IFSCCode,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("GetApplications: scan row: %w", err)
		}
		applications = append(applications, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetApplications: rows iteration: %w", err)
	}

	return applications, nil
}

// CreateUser registers a new account.
//
// The email is lowercased before both the duplicate check and the
// insert, so "User@Example.com" and "user@example.com" are the same
// account. The UNIQUE index backs the explicit check up against two
// concurrent signups racing past the SELECT.
//
// The password never reaches the database: bcrypt produces a salted,
// one-way hash and only the hash is stored.
func (s *SQLite) CreateUser(email, password string) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing int64
	err := s.Db.QueryRow(
		"SELECT id FROM users WHERE email = ? LIMIT 1", email,
	).Scan(&existing)
	if err == nil {
		return 0, storage.ErrDuplicateEmail
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("CreateUser: lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("CreateUser: hash password: %w", err)
	}

	stmt, err := s.Db.Prepare(
		"INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateUser: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(email, string(hash), now())
	if err != nil {
		// Lost the race against a concurrent signup with the same
		// email: the UNIQUE index rejects the second insert.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, storage.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("CreateUser: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateUser: last insert id: %w", err)
	}

	return lastID, nil
}

// AuthenticateUser verifies a login attempt. Unknown email and wrong
// password both come back as storage.ErrInvalidCredentials — callers
// cannot tell which check failed, and neither can their users.
func (s *SQLite) AuthenticateUser(email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var hash string
	err := s.Db.QueryRow(
		"SELECT password_hash FROM users WHERE email = ? LIMIT 1", email,
	).Scan(&hash)
	if err == sql.ErrNoRows {
		return storage.ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("AuthenticateUser: lookup: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return storage.ErrInvalidCredentials
	}

	return nil
}
