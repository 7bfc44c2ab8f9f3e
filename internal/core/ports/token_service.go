package ports

import "github.com/identity-squad/user-api/internal/core/domain"

// TokenService issues and verifies the signed, time-bounded tokens that
// carry a requester's identity and role.
//
// There is no server-side revocation list: logout is client-side discard,
// and rotating the signing secret invalidates every outstanding token.
type TokenService interface {
	// Issue returns a signed token embedding the identity's id and role,
	// valid for the configured TTL.
	Issue(identity domain.Identity) (string, error)

	// Verify checks signature and expiry and decodes the identity. It fails
	// with domain.ErrTokenExpired past expiry and domain.ErrTokenInvalid for
	// anything else wrong with the token.
	Verify(token string) (domain.Identity, error)
}
