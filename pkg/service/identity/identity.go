// Package identity resolves transfer recipients by their public cash ID.
// This is the only fraud gate in the transfer flow: a push transfer is
// authorized solely by the sender knowing the recipient's cash ID plus two
// extra identity facts, so both must match before an account reference is
// handed out.
package identity

import (
	"context"
	"log/slog"
	"strings"

	"github.com/walletd/walletcore/pkg/docstore"
	"github.com/walletd/walletcore/pkg/domain"
)

// Recipient is a verified transfer target.
type Recipient struct {
	ID          string
	FullName    string
	PhoneNumber string
}

// Resolver looks up accounts by cash ID and verifies claimed identity.
type Resolver struct {
	store  docstore.Store
	logger *slog.Logger
}

// NewResolver creates the resolver.
func NewResolver(store docstore.Store, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// ResolveAndVerify finds the single account whose idCash equals cashID and
// checks the claimed full name (case-insensitive) and phone number (exact)
// against the stored values. Read-only; no state changes on any outcome.
func (r *Resolver) ResolveAndVerify(
	ctx context.Context,
	cashID, claimedFullName, claimedPhone string,
) (*Recipient, error) {
	docs, err := r.store.Query(ctx, docstore.Users, "idCash", cashID)
	if err != nil {
		r.logger.Error("recipient lookup failed", "error", err)
		return nil, domain.StoreFailure(err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrRecipientNotFound
	}
	// idCash is unique by the registration generate-and-verify loop; take
	// the first match the way the source always did.
	doc := docs[0]
	fullName, _ := doc.Fields["fullName"].(string)
	phone, _ := doc.Fields["phoneNumber"].(string)
	if fullName == "" || phone == "" {
		return nil, domain.ErrRecipientNotFound
	}

	if !strings.EqualFold(fullName, claimedFullName) || phone != claimedPhone {
		return nil, domain.ErrRecipientMismatch
	}
	return &Recipient{ID: doc.ID, FullName: fullName, PhoneNumber: phone}, nil
}
