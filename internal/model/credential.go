package model

// CredentialKind tags the primary variant of a Credential.
type CredentialKind string

const (
	CredentialAnonymous   CredentialKind = "anonymous"
	CredentialOwner       CredentialKind = "owner"
	CredentialCoAdmin     CredentialKind = "coadmin"
	CredentialParticipant CredentialKind = "participant"
)

// Credential identifies a caller, resolved once per request and then
// matched by each operation's authorization policy. Kind marks the primary
// variant, picked by precedence owner > co-admin > participant. The raw
// fields are kept alongside the kind because an authenticated user may also
// present a co-admin token; the session authorizer checks owner identity
// first and falls back to the token.
type Credential struct {
	Kind             CredentialKind
	UserID           string
	CoAdminToken     string
	ParticipantToken string
}

// ResolveCredential builds a Credential from whatever the request carried.
func ResolveCredential(userID, coAdminToken, participantToken string) Credential {
	cred := Credential{
		Kind:             CredentialAnonymous,
		UserID:           userID,
		CoAdminToken:     coAdminToken,
		ParticipantToken: participantToken,
	}
	switch {
	case userID != "":
		cred.Kind = CredentialOwner
	case coAdminToken != "":
		cred.Kind = CredentialCoAdmin
	case participantToken != "":
		cred.Kind = CredentialParticipant
	}
	return cred
}

// OwnerCredential is a convenience constructor for an authenticated owner.
func OwnerCredential(userID string) Credential {
	return ResolveCredential(userID, "", "")
}

// CoAdminCredential is a convenience constructor for a co-admin token.
func CoAdminCredential(token string) Credential {
	return ResolveCredential("", token, "")
}

// ParticipantCredential is a convenience constructor for a participant
// display token.
func ParticipantCredential(token string) Credential {
	return ResolveCredential("", "", token)
}
