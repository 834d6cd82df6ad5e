// Package auth handles registration, credential checks, JWT issuance, and
// account closure for wallet users.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/walletd/walletcore/pkg/config"
	"github.com/walletd/walletcore/pkg/docstore"
	"github.com/walletd/walletcore/pkg/domain"
)

// Service implements the authentication flows.
type Service struct {
	store  docstore.Store
	cfg    config.Jwt
	logger *slog.Logger
}

// New creates the auth service.
func New(store docstore.Store, cfg config.Jwt, logger *slog.Logger) *Service {
	return &Service{store: store, cfg: cfg, logger: logger}
}

// Register creates a user document with fresh unique identifiers, zero
// balances, and an empty ledger. Returns the new user's id.
func (s *Service) Register(
	ctx context.Context,
	fullName, email, phoneNumber, password string,
) (string, error) {
	existing, err := s.store.Query(ctx, docstore.Users, "email", email)
	if err != nil {
		return "", domain.StoreFailure(err)
	}
	if len(existing) > 0 {
		return "", domain.ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	idCash, err := s.generateUniqueIdCash(ctx)
	if err != nil {
		return "", err
	}
	iban, err := s.generateUniqueIBAN(ctx)
	if err != nil {
		return "", err
	}

	userID := uuid.NewString()
	fields := map[string]any{
		"fullName":     fullName,
		"email":        email,
		"phoneNumber":  phoneNumber,
		"idCash":       idCash,
		"iban":         iban,
		"passwordHash": string(hash),
		"createdAt":    time.Now().Unix(),
		"bankAccount": map[string]any{
			"balanceTL":    0.0,
			"balanceUSD":   0.0,
			"transactions": []any{},
		},
	}
	if err := s.store.Set(ctx, docstore.Users, userID, fields); err != nil {
		s.logger.Error("create user document failed", "error", err)
		return "", domain.StoreFailure(err)
	}
	s.logger.Info("user registered", "user_id", userID, "id_cash", idCash)
	return userID, nil
}

// Login verifies the email/password pair and issues a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (token string, userID string, err error) {
	docs, err := s.store.Query(ctx, docstore.Users, "email", email)
	if err != nil {
		return "", "", domain.StoreFailure(err)
	}
	if len(docs) == 0 {
		return "", "", domain.ErrUnauthorized
	}
	doc := docs[0]
	hash, _ := doc.Fields["passwordHash"].(string)
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", "", domain.ErrUnauthorized
	}
	token, err = s.GenerateToken(doc.ID)
	if err != nil {
		return "", "", err
	}
	return token, doc.ID, nil
}

// GenerateToken issues a JWT for the user with the configured expiry.
func (s *Service) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(s.cfg.Expiry).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// CurrentUserID extracts the authenticated user's id from a verified token.
// This is the authenticated-identity accessor the core services rely on.
func CurrentUserID(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// CloseAccount deletes the user document and its notifications sub-collection
// in one batch. Fail open: any failure is logged and the closure still
// reports success so the caller signs the user out regardless. A mid-failure
// can leave orphaned account data behind; that trade-off is deliberate.
func (s *Service) CloseAccount(ctx context.Context, userID string) {
	writes := []docstore.Write{
		{Collection: docstore.Users, ID: userID, Op: docstore.OpDelete},
	}
	notifications := docstore.Notifications(userID)
	docs, err := s.store.List(ctx, notifications)
	if err != nil {
		s.logger.Error("list notifications during account closure failed",
			"user_id", userID, "error", err)
	}
	for _, doc := range docs {
		writes = append(writes, docstore.Write{
			Collection: notifications,
			ID:         doc.ID,
			Op:         docstore.OpDelete,
		})
	}
	if err := s.store.CommitBatch(ctx, writes); err != nil {
		s.logger.Error("account closure batch failed, signing out anyway",
			"user_id", userID, "error", err)
	}
}

// generateUniqueIdCash draws 10-digit numbers until one is unused. The store
// has no uniqueness constraint; this loop is the only guard, and a race
// between two concurrent registrations can in theory assign duplicates.
func (s *Service) generateUniqueIdCash(ctx context.Context) (string, error) {
	for {
		candidate := fmt.Sprintf("%d", 1000000000+rand.Int64N(9000000000))
		docs, err := s.store.Query(ctx, docstore.Users, "idCash", candidate)
		if err != nil {
			return "", domain.StoreFailure(err)
		}
		if len(docs) == 0 {
			return candidate, nil
		}
	}
}

// generateUniqueIBAN draws TR + 24 random digits, grouped by four, until one
// is unused.
func (s *Service) generateUniqueIBAN(ctx context.Context) (string, error) {
	for {
		var digits strings.Builder
		digits.WriteString("TR")
		for i := 0; i < 24; i++ {
			fmt.Fprintf(&digits, "%d", rand.IntN(10))
		}
		candidate := groupBy4(digits.String())

		docs, err := s.store.Query(ctx, docstore.Users, "iban", candidate)
		if err != nil {
			return "", domain.StoreFailure(err)
		}
		if len(docs) == 0 {
			return candidate, nil
		}
	}
}

func groupBy4(s string) string {
	var groups []string
	for i := 0; i < len(s); i += 4 {
		end := i + 4
		if end > len(s) {
			end = len(s)
		}
		groups = append(groups, s[i:end])
	}
	return strings.Join(groups, " ")
}

// ErrInvalidToken is kept distinct so the HTTP layer can map token problems
// to 401 without conflating them with store failures.
var ErrInvalidToken = errors.New("invalid token")
