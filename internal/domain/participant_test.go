package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParticipant_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		p    Participant
		want string
	}{
		{
			name: "individual with both names",
			p:    Participant{Type: VariantIndividual, FirstName: "Jane", LastName: "Smith"},
			want: "Jane Smith",
		},
		{
			name: "individual with only last name",
			p:    Participant{Type: VariantIndividual, LastName: "Smith"},
			want: "Smith",
		},
		{
			name: "organization",
			p:    Participant{Type: VariantOrganization, CompanyName: "OÜ Näidis"},
			want: "OÜ Näidis",
		},
		{
			name: "empty",
			p:    Participant{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.p.DisplayName())
		})
	}
}

func TestParticipant_IdentityKey(t *testing.T) {
	person := Participant{Type: VariantIndividual, PersonalCode: "38712345678"}
	require.Equal(t, "38712345678", person.IdentityKey())

	company := Participant{Type: VariantOrganization, RegistrationCode: "12345678"}
	require.Equal(t, "12345678", company.IdentityKey())
}

func TestDeriveVariant(t *testing.T) {
	tests := []struct {
		name string
		p    Participant
		want Variant
	}{
		{"first name set", Participant{FirstName: "Jane"}, VariantIndividual},
		{"last name set", Participant{LastName: "Smith"}, VariantIndividual},
		{"personal code set", Participant{PersonalCode: "38712345678"}, VariantIndividual},
		{"company name set", Participant{CompanyName: "OÜ Näidis"}, VariantOrganization},
		{"registration code set", Participant{RegistrationCode: "12345678"}, VariantOrganization},
		{"names win over company", Participant{FirstName: "Jane", CompanyName: "OÜ Näidis"}, VariantIndividual},
		{"nothing set", Participant{}, VariantUnset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DeriveVariant(tt.p))
		})
	}
}

func TestPaymentMethods_Order(t *testing.T) {
	require.Equal(t,
		[]PaymentMethod{PaymentCard, PaymentBankTransfer, PaymentCash},
		PaymentMethods())
}
