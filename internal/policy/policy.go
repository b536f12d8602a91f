// Package policy holds the per-variant field policy table and the
// validation controller that applies it to form values. It performs no I/O;
// server-side checks (personal code checksum, uniqueness) stay server-side.
package policy

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/attendify/attendify/internal/domain"
)

// Field names the form fields. Values match the backend JSON field names so
// the same constants serve validation, error targeting, and search requests.
type Field string

const (
	FieldType             Field = "type"
	FieldFirstName        Field = "firstName"
	FieldLastName         Field = "lastName"
	FieldPersonalCode     Field = "personalCode"
	FieldCompanyName      Field = "companyName"
	FieldRegistrationCode Field = "registrationCode"
	FieldParticipantCount Field = "participantCount"
	FieldContactPerson    Field = "contactPerson"
	FieldPaymentMethod    Field = "paymentMethod"
	FieldEmail            Field = "email"
	FieldPhone            Field = "phone"
	FieldAdditionalInfo   Field = "additionalInfo"
)

// Problem is a client-side validation failure for a single field.
type Problem string

const (
	ProblemRequired    Problem = "required"
	ProblemPattern     Problem = "pattern"
	ProblemNotPositive Problem = "not_positive"
	ProblemTooLong     Problem = "too_long"
)

// Note length limits per variant.
const (
	IndividualNoteLimit   = 1000
	OrganizationNoteLimit = 5000
)

// Rule describes the policy for one field under one variant.
type Rule struct {
	Required bool
	// Pattern is a go-playground/validator tag applied to non-empty values.
	Pattern string
}

// registrationCodePattern matches the backend's "8 digits" constraint.
const registrationCodePattern = "len=8,numeric"

var validate = validator.New()

// Rules returns the field policy table for a variant. Fields absent from
// the map carry no requirement and no pattern. The registration code
// pattern applies whenever the field holds a value, independent of variant,
// mirroring how the backend rejects malformed codes on any record.
func Rules(v domain.Variant) map[Field]Rule {
	rules := map[Field]Rule{
		FieldRegistrationCode: {Pattern: registrationCodePattern},
		FieldPaymentMethod:    {Required: true},
		FieldEmail:            {Pattern: "email"},
	}

	switch v {
	case domain.VariantIndividual:
		rules[FieldFirstName] = Rule{Required: true}
		rules[FieldLastName] = Rule{Required: true}
		rules[FieldPersonalCode] = Rule{Required: true}
	case domain.VariantOrganization:
		rules[FieldCompanyName] = Rule{Required: true}
		rules[FieldRegistrationCode] = Rule{Required: true, Pattern: registrationCodePattern}
	}

	return rules
}

// NoteLimit returns the maximum length of the free-text note for a variant.
// The unset variant gets the individual limit, matching the form's default.
func NoteLimit(v domain.Variant) int {
	if v == domain.VariantOrganization {
		return OrganizationNoteLimit
	}
	return IndividualNoteLimit
}

// Apply runs the policy table against the current field values and returns
// a map of failing fields. An empty map means the form is valid. The note
// length check always runs against the variant's limit, so switching
// variant re-validates an already-accepted note.
func Apply(v domain.Variant, values map[Field]string) map[Field]Problem {
	problems := make(map[Field]Problem)

	for field, rule := range Rules(v) {
		value := strings.TrimSpace(values[field])
		if rule.Required && value == "" {
			problems[field] = ProblemRequired
			continue
		}
		if rule.Pattern != "" && value != "" {
			if err := validate.Var(value, rule.Pattern); err != nil {
				problems[field] = ProblemPattern
			}
		}
	}

	// Participant count: optional, but must be a positive integer when set.
	if raw := strings.TrimSpace(values[FieldParticipantCount]); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			problems[FieldParticipantCount] = ProblemNotPositive
		}
	}

	if utf8.RuneCountInString(values[FieldAdditionalInfo]) > NoteLimit(v) {
		problems[FieldAdditionalInfo] = ProblemTooLong
	}

	return problems
}
