// Package domain defines the core Attendify data model shared by the API
// client and the UI modes.
package domain

import "strings"

// Variant discriminates the two participant kinds. The zero value is
// VariantUnset, which never appears on the wire.
type Variant string

const (
	// VariantIndividual is a natural person ("PERSON" on the wire).
	VariantIndividual Variant = "PERSON"
	// VariantOrganization is a company ("COMPANY" on the wire).
	VariantOrganization Variant = "COMPANY"
	// VariantUnset means the variant could not be derived.
	VariantUnset Variant = ""
)

// PaymentMethod is the backend payment method enum.
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCash         PaymentMethod = "CASH"
)

// PaymentMethods lists all valid payment methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCard, PaymentBankTransfer, PaymentCash}
}

// Label returns the Estonian display label for the payment method.
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentCard:
		return "Pangakaart"
	case PaymentBankTransfer:
		return "Ülekanne"
	case PaymentCash:
		return "Sularaha"
	default:
		return string(p)
	}
}

// Participant is a registrant, either an individual or an organization.
// Exactly one identity key (PersonalCode or RegistrationCode) is populated,
// matching Type. ID is zero until the backend assigns one.
type Participant struct {
	ID               int64         `json:"id,omitempty"`
	Type             Variant       `json:"type"`
	FirstName        string        `json:"firstName,omitempty"`
	LastName         string        `json:"lastName,omitempty"`
	PersonalCode     string        `json:"personalCode,omitempty"`
	CompanyName      string        `json:"companyName,omitempty"`
	RegistrationCode string        `json:"registrationCode,omitempty"`
	ParticipantCount int           `json:"participantCount,omitempty"`
	ContactPerson    string        `json:"contactPerson,omitempty"`
	PaymentMethod    PaymentMethod `json:"paymentMethod,omitempty"`
	Email            string        `json:"email,omitempty"`
	Phone            string        `json:"phone,omitempty"`
	AdditionalInfo   string        `json:"additionalInfo,omitempty"`
}

// DisplayName renders the participant for lists and suggestion rows.
func (p Participant) DisplayName() string {
	if p.Type == VariantOrganization {
		return p.CompanyName
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// IdentityKey returns the value of the identity field for the participant's
// variant: the personal code for individuals, the registration code for
// organizations.
func (p Participant) IdentityKey() string {
	if p.Type == VariantOrganization {
		return p.RegistrationCode
	}
	return p.PersonalCode
}

// DeriveVariant infers the variant from which identity and display fields
// are populated. Person fields win when both sides are present.
func DeriveVariant(p Participant) Variant {
	switch {
	case p.FirstName != "" || p.LastName != "" || p.PersonalCode != "":
		return VariantIndividual
	case p.CompanyName != "" || p.RegistrationCode != "":
		return VariantOrganization
	default:
		return VariantUnset
	}
}
