package schema

// Allowed values for the donation enum fields.
var (
	donationTypes = []string{"One-Time", "Recurring"}
	yesNo         = []string{"Yes", "No"}
)

// AttachmentSlots are the five named file parts a scholarship submission
// must carry, in the order they are reported when missing.
var AttachmentSlots = []string{
	"adhaarCard",
	"rationCard",
	"incomeCertificate",
	"marksheet",
	"attendanceSheet",
}

// Donation is the schema for POST /api/donate. Every field except
// message is required; amount must be a non-negative number and the
// four choice fields only accept their form values.
var Donation = Schema{
	Entity: "donation",
	Fields: []Field{
		{Name: "name", Required: true},
		{Name: "email", Required: true, Format: "email"},
		{Name: "amount", Type: Number, Required: true, NonNegative: true},
		{Name: "donation_type", Required: true, Enum: donationTypes},
		{Name: "cause", Required: true},
		{Name: "fund_type", Required: true},
		{Name: "message"},
		{Name: "communication", Required: true},
		{Name: "interaction", Required: true, Enum: yesNo},
		{Name: "mentorship", Required: true, Enum: yesNo},
		{Name: "tax_exemption", Required: true, Enum: yesNo},
		{Name: "motivation", Required: true},
	},
}

// Scholarship is the schema for POST /submit_application. The five
// attachment slots appear as required text fields: by the time the
// validator runs, a successfully stored upload has been replaced by its
// generated file handle, so a missing upload surfaces here as a plain
// missing field.
var Scholarship = Schema{
	Entity: "scholarship_application",
	Fields: []Field{
		{Name: "fullName", Required: true},
		{Name: "email", Required: true, Format: "email"},
		{Name: "phone", Required: true},
		{Name: "grade", Required: true},
		{Name: "essay", Required: true},
		{Name: "adhaarCard", Required: true},
		{Name: "rationCard", Required: true},
		{Name: "incomeCertificate", Required: true},
		{Name: "marksheet", Required: true},
		{Name: "attendanceSheet", Required: true},
		{Name: "fatherName"},
		{Name: "fatherOccupation"},
		{Name: "motherName"},
		{Name: "motherOccupation"},
		{Name: "annualIncome", Type: Number, NonNegative: true},
		{Name: "bankAccountNumber"},
		{Name: "ifscCode"},
	},
}
