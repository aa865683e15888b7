// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, schema, storage, and utils can all import types without
// depending on each other.
package types

// Donation is one donation-form submission. All fields except Message
// are required at write time; Amount must be non-negative. Records are
// created once via POST /api/donate and never mutated or deleted.
//
// The json:"..." tags mirror the field names the donation form posts,
// so a decoded request body maps straight onto this struct.
type Donation struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Amount        float64 `json:"amount"`
	DonationType  string  `json:"donation_type"` // "One-Time" or "Recurring"
	Cause         string  `json:"cause"`
	FundType      string  `json:"fund_type"`
	Message       string  `json:"message,omitempty"` // the only optional field
	Communication string  `json:"communication"`
	Interaction   string  `json:"interaction"`   // "Yes" or "No"
	Mentorship    string  `json:"mentorship"`    // "Yes" or "No"
	TaxExemption  string  `json:"tax_exemption"` // "Yes" or "No"
	Motivation    string  `json:"motivation"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

// ScholarshipApplication is one scholarship submission. The five *Card /
// *Certificate / *Sheet fields hold file handles: the generated names the
// upload store returned after writing each attachment to the content
// directory. They must all be non-empty before the record is persisted.
type ScholarshipApplication struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Grade    string `json:"grade"`
	Essay    string `json:"essay"`

	// Stored file handles, one per required attachment slot.
	AdhaarCard        string `json:"adhaarCard"`
	RationCard        string `json:"rationCard"`
	IncomeCertificate string `json:"incomeCertificate"`
	Marksheet         string `json:"marksheet"`
	AttendanceSheet   string `json:"attendanceSheet"`

	// Optional guardian / financial details.
	FatherName        string  `json:"fatherName,omitempty"`
	FatherOccupation  string  `json:"fatherOccupation,omitempty"`
	MotherName        string  `json:"motherName,omitempty"`
	MotherOccupation  string  `json:"motherOccupation,omitempty"`
	AnnualIncome      float64 `json:"annualIncome,omitempty"`
	BankAccountNumber string  `json:"bankAccountNumber,omitempty"`
	IFSCCode          string  `json:"ifscCode,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
}

// Credentials is the payload for both POST /signup and POST /login.
//
// validate:"..." tags are checked with go-playground/validator before the
// storage layer sees the value. The password has no format rule — only
// presence — matching the signup form.
type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
