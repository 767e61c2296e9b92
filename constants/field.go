package constants

// Canonical field keys scraped from insurance card OCR text.
// Stable values (these exact strings appear in API responses).
const (
	FieldSubscriberName   = "subscriber_name"
	FieldSubscriberID     = "subscriber_id"
	FieldGroupNo          = "group_no"
	FieldRxBinGroup       = "rxbin_group"
	FieldDateIssued       = "date_issued"
	FieldPrimary          = "primary"
	FieldSpecialist       = "specialist"
	FieldUrgentCare       = "urgent_care"
	FieldER               = "er"
	FieldPrescriptionDrug = "prescription_drug"
	FieldPreventiveCare   = "preventive_care"
	FieldCopay            = "copay"
	FieldDeductible       = "deductible"
)

// RawTextKey is the reserved debug key holding the full OCR text.
// It is kept on the internal field map for diagnostics and stripped
// before presentation.
const RawTextKey = "raw_text"

// PriorityFields is the fixed order in which the router probes card
// fields for a "what is my X" style question.
var PriorityFields = []string{
	FieldCopay,
	FieldDeductible,
	FieldPrimary,
	FieldSpecialist,
	FieldUrgentCare,
	FieldER,
}
