package register

import (
	"net/http"
	"strings"

	"github.com/attendify/attendify/internal/api"
	"github.com/attendify/attendify/internal/domain"
	"github.com/attendify/attendify/internal/policy"
)

// User-facing messages, matching the backend's Estonian audience.
const (
	msgInvalidForm         = "Palun täitke kohustuslikud väljad korrektselt"
	msgAddFailed           = "Osaleja lisamine ebaõnnestus"
	msgAlreadyAdded        = "Osaleja on juba üritusele lisatud"
	msgNoteTooLong         = "Lisainfo on liiga pikk"
	msgDeleteFailed        = "Osaleja kustutamine ebaõnnestus"
	msgEventLoadFailed     = "Ürituse andmete laadimine ebaõnnestus"
	msgListLoadFailed      = "Osalejate nimekirja laadimine ebaõnnestus"
	msgAdded               = "Osaleja lisatud"
	msgRemoved             = "Osaleja eemaldatud"
	msgDuplicatePersonal   = "See isikukood on juba registreeritud"
	msgDuplicateRegCode    = "See registrikood on juba registreeritud"
	msgInvalidPersonalCode = "Isikukood on vigane"

	msgInvalidRegistrationCode = "Registrikood peab olema 8-kohaline number"
)

// Stage identifies which submission step produced an error. The same status
// can mean different things per stage: a 409 on create is a recoverable
// duplicate identity, a 409 on associate means the participant is already on
// the event.
type Stage int

const (
	StageCreate Stage = iota
	StageAssociate
)

// ErrorKind is the classified failure category.
type ErrorKind int

const (
	// KindUnknown covers transport failures and unrecognized responses.
	KindUnknown ErrorKind = iota
	// KindDuplicateIdentity is a create-stage 409: the identity key already
	// exists. The orchestrator recovers by searching for the existing record.
	KindDuplicateIdentity
	// KindAlreadyAssociated is an associate-stage 409.
	KindAlreadyAssociated
	// KindNoteTooLong is the backend rejecting the free-text note length.
	KindNoteTooLong
	// KindInvalidIdentity is a malformed personal or registration code.
	KindInvalidIdentity
	// KindTypeMismatch means the identity key exists under the other variant.
	KindTypeMismatch
)

// Classified is the outcome of classifying a backend error: the category,
// the form-level banner, and optionally a field to pin a message on.
type Classified struct {
	Kind ErrorKind

	// Field is the target of FieldMessage, or "" for form-only failures.
	Field        policy.Field
	FieldMessage string

	// FormMessage is the banner text. Empty for KindDuplicateIdentity,
	// which is handled internally and never shown.
	FormMessage string
}

// identityField returns the identity key field for a variant.
func identityField(v domain.Variant) policy.Field {
	if v == domain.VariantOrganization {
		return policy.FieldRegistrationCode
	}
	return policy.FieldPersonalCode
}

func duplicateMessage(v domain.Variant) string {
	if v == domain.VariantOrganization {
		return msgDuplicateRegCode
	}
	return msgDuplicatePersonal
}

// Classify maps a backend error to a user-facing outcome using the HTTP
// status and well-known backend message fragments. Matching is ordered; the
// first hit wins.
func Classify(stage Stage, variant domain.Variant, err error) Classified {
	status := api.StatusOf(err)
	message := api.MessageOf(err)

	if status == http.StatusConflict {
		if stage == StageCreate {
			return Classified{Kind: KindDuplicateIdentity}
		}
		return Classified{
			Kind:         KindAlreadyAssociated,
			Field:        identityField(variant),
			FieldMessage: duplicateMessage(variant),
			FormMessage:  msgAlreadyAdded,
		}
	}

	if status == http.StatusBadRequest {
		switch {
		case strings.Contains(message, "additional info exceeds maximum length"):
			return Classified{
				Kind:         KindNoteTooLong,
				Field:        policy.FieldAdditionalInfo,
				FieldMessage: msgNoteTooLong,
				FormMessage:  msgNoteTooLong,
			}
		case strings.Contains(message, "personal code"):
			return Classified{
				Kind:         KindInvalidIdentity,
				Field:        policy.FieldPersonalCode,
				FieldMessage: msgInvalidPersonalCode,
				FormMessage:  msgInvalidPersonalCode,
			}
		case strings.Contains(message, "registration code"):
			return Classified{
				Kind:         KindInvalidIdentity,
				Field:        policy.FieldRegistrationCode,
				FieldMessage: msgInvalidRegistrationCode,
				FormMessage:  msgInvalidRegistrationCode,
			}
		case strings.Contains(message, "Participant type mismatch"):
			return Classified{Kind: KindTypeMismatch, FormMessage: msgAddFailed}
		}
	}

	return Classified{Kind: KindUnknown, FormMessage: msgAddFailed}
}
