package register

import (
	"strconv"
	"strings"

	"github.com/attendify/attendify/internal/domain"
	"github.com/attendify/attendify/internal/policy"
)

// allFields lists every editable form field, in no particular order. Used
// for bulk operations like MarkAllTouched.
var allFields = []policy.Field{
	policy.FieldFirstName,
	policy.FieldLastName,
	policy.FieldPersonalCode,
	policy.FieldCompanyName,
	policy.FieldRegistrationCode,
	policy.FieldParticipantCount,
	policy.FieldContactPerson,
	policy.FieldPaymentMethod,
	policy.FieldEmail,
	policy.FieldPhone,
	policy.FieldAdditionalInfo,
}

// Form holds the registration form state: the variant, raw field values,
// client-side validation problems, server-reported field errors, and the
// form-level error banner.
type Form struct {
	Variant domain.Variant
	Values  map[policy.Field]string

	// Touched gates whether a client-side problem is shown for a field.
	// Untouched fields stay quiet until submit marks everything touched.
	Touched map[policy.Field]bool

	// Problems is recomputed from the policy table on every change.
	Problems map[policy.Field]policy.Problem

	// ServerErrors are backend rejections pinned to a field. Editing that
	// field clears its entry; client-side revalidation never touches them.
	ServerErrors map[policy.Field]string

	// Err is the form-level banner. Any change clears it.
	Err string

	// Pending is true while a submission attempt is in flight.
	Pending bool
}

// NewForm returns a fresh individual-variant form.
func NewForm() Form {
	f := Form{
		Variant:      domain.VariantIndividual,
		Values:       make(map[policy.Field]string),
		Touched:      make(map[policy.Field]bool),
		ServerErrors: make(map[policy.Field]string),
	}
	f.revalidate()
	return f
}

func (f *Form) revalidate() {
	f.Problems = policy.Apply(f.Variant, f.Values)
}

// SetValue records a user edit. It marks the field touched, clears the
// field's server error and the form banner, and revalidates. Returns false
// when the value did not change.
func (f *Form) SetValue(field policy.Field, value string) bool {
	if f.Values[field] == value {
		return false
	}
	f.Values[field] = value
	f.Touched[field] = true
	delete(f.ServerErrors, field)
	f.Err = ""
	f.revalidate()
	return true
}

// SetVariant switches the participant kind. Field values survive the switch;
// the policy table is re-applied so requirements and the note limit follow
// the new variant.
func (f *Form) SetVariant(v domain.Variant) bool {
	if f.Variant == v {
		return false
	}
	f.Variant = v
	f.Err = ""
	f.revalidate()
	return true
}

// PatchFrom fills the form from an existing participant, as when the user
// picks an autocomplete suggestion. The variant is re-derived from which
// side of the record is populated. Patched fields are not marked touched, so
// no stale problems surface; server errors and the banner are cleared.
func (f *Form) PatchFrom(p domain.Participant) {
	set := func(field policy.Field, value string) {
		f.Values[field] = value
	}

	set(policy.FieldFirstName, p.FirstName)
	set(policy.FieldLastName, p.LastName)
	set(policy.FieldPersonalCode, p.PersonalCode)
	set(policy.FieldCompanyName, p.CompanyName)
	set(policy.FieldRegistrationCode, p.RegistrationCode)
	set(policy.FieldContactPerson, p.ContactPerson)
	set(policy.FieldEmail, p.Email)
	set(policy.FieldPhone, p.Phone)
	set(policy.FieldAdditionalInfo, p.AdditionalInfo)
	if p.ParticipantCount > 0 {
		set(policy.FieldParticipantCount, strconv.Itoa(p.ParticipantCount))
	} else {
		set(policy.FieldParticipantCount, "")
	}
	if p.PaymentMethod != "" {
		set(policy.FieldPaymentMethod, string(p.PaymentMethod))
	}

	if v := domain.DeriveVariant(p); v != domain.VariantUnset {
		f.Variant = v
	}

	f.ServerErrors = make(map[policy.Field]string)
	f.Err = ""
	f.revalidate()
}

// Reset restores the pristine state after a successful submission.
func (f *Form) Reset() {
	*f = NewForm()
}

// Valid reports whether the policy table passes on the current values.
func (f *Form) Valid() bool {
	return len(f.Problems) == 0
}

// MarkAllTouched reveals every outstanding problem, used when a submit
// attempt is rejected client-side.
func (f *Form) MarkAllTouched() {
	for _, field := range allFields {
		f.Touched[field] = true
	}
}

// PaymentMethod returns the selected payment method, or "" when unset.
func (f *Form) PaymentMethod() domain.PaymentMethod {
	return domain.PaymentMethod(f.Values[policy.FieldPaymentMethod])
}

// Record builds the participant to submit. Fields belonging to the other
// variant are left zero even if the user typed into them before switching.
func (f *Form) Record() domain.Participant {
	get := func(field policy.Field) string {
		return strings.TrimSpace(f.Values[field])
	}

	p := domain.Participant{
		Type:           f.Variant,
		PaymentMethod:  f.PaymentMethod(),
		Email:          get(policy.FieldEmail),
		Phone:          get(policy.FieldPhone),
		AdditionalInfo: f.Values[policy.FieldAdditionalInfo],
	}

	switch f.Variant {
	case domain.VariantOrganization:
		p.CompanyName = get(policy.FieldCompanyName)
		p.RegistrationCode = get(policy.FieldRegistrationCode)
		p.ContactPerson = get(policy.FieldContactPerson)
		if n, err := strconv.Atoi(get(policy.FieldParticipantCount)); err == nil && n > 0 {
			p.ParticipantCount = n
		}
	default:
		p.FirstName = get(policy.FieldFirstName)
		p.LastName = get(policy.FieldLastName)
		p.PersonalCode = get(policy.FieldPersonalCode)
	}

	return p
}

// ErrorFor returns the error message to show under a field: a server error
// when present, otherwise the client-side problem if the field was touched.
func (f *Form) ErrorFor(field policy.Field) string {
	if msg, ok := f.ServerErrors[field]; ok {
		return msg
	}
	if !f.Touched[field] {
		return ""
	}
	problem, ok := f.Problems[field]
	if !ok {
		return ""
	}
	return problemMessage(field, problem)
}

func problemMessage(field policy.Field, problem policy.Problem) string {
	switch problem {
	case policy.ProblemRequired:
		return "Kohustuslik väli"
	case policy.ProblemPattern:
		switch field {
		case policy.FieldRegistrationCode:
			return msgInvalidRegistrationCode
		case policy.FieldEmail:
			return "Vigane e-posti aadress"
		}
		return "Vigane väärtus"
	case policy.ProblemNotPositive:
		return "Osalejate arv peab olema positiivne täisarv"
	case policy.ProblemTooLong:
		return msgNoteTooLong
	default:
		return ""
	}
}
