package services

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/SundayYogurt/league_service/internal/helper/utils"
	"github.com/SundayYogurt/league_service/internal/repository"
)

const (
	referralSuffixLen     = 4
	maxAllocationAttempts = 20
)

// CodeAllocator hands out referral codes of the form <seed>-<4 hex>.
// Codes returned by Allocate stay reserved in-process until Release, so two
// registrations running at once never receive the same code. The unique
// index on users.referral_code covers other processes.
type CodeAllocator struct {
	users       repository.UserRepository
	randomHex   func(n int) (string, error)
	maxAttempts int

	mu       sync.Mutex
	reserved map[string]struct{}
}

func NewCodeAllocator(users repository.UserRepository) *CodeAllocator {
	return &CodeAllocator{
		users:       users,
		randomHex:   utils.RandomHex,
		maxAttempts: maxAllocationAttempts,
		reserved:    make(map[string]struct{}),
	}
}

// NormalizeSeed drops whitespace and lowercases.
func NormalizeSeed(seed string) string {
	var b strings.Builder
	for _, r := range seed {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func (a *CodeAllocator) Allocate(ctx context.Context, seed string) (string, error) {
	prefix := NormalizeSeed(seed)
	if prefix == "" {
		return "", domain.ErrValidation.WithMessage("referral seed is empty")
	}

	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		suffix, err := a.randomHex(referralSuffixLen)
		if err != nil {
			return "", domain.ErrInternal.Wrap(err)
		}
		code := prefix + "-" + suffix

		if !a.reserve(code) {
			continue
		}
		exists, err := a.users.ReferralCodeExists(ctx, code)
		if err != nil {
			a.Release(code)
			return "", err
		}
		if exists {
			a.Release(code)
			continue
		}
		return code, nil
	}

	return "", domain.ErrAllocationExhausted
}

func (a *CodeAllocator) Release(code string) {
	a.mu.Lock()
	delete(a.reserved, code)
	a.mu.Unlock()
}

func (a *CodeAllocator) reserve(code string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, taken := a.reserved[code]; taken {
		return false
	}
	a.reserved[code] = struct{}{}
	return true
}
