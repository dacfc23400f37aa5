package password

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const MinLength = 8

var ErrMismatch = errors.New("password does not match hash")

// Hasher hashes and verifies passwords. Both operations are CPU bound and
// may block until a hashing slot is free or ctx is done.
type Hasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, hash, password string) error
}

type bcryptHasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewBcryptHasher returns a bcrypt Hasher that runs at most maxConcurrent
// hash operations at the same time. Out of range costs fall back to
// bcrypt.DefaultCost.
func NewBcryptHasher(cost int, maxConcurrent int64) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &bcryptHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(maxConcurrent),
	}
}

func (h *bcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *bcryptHasher) Verify(ctx context.Context, hash, password string) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer h.sem.Release(1)

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}

// IsStrong reports whether password has at least MinLength characters and
// contains an upper case letter, a lower case letter, a digit and a
// character that is neither a letter nor a digit.
func IsStrong(password string) bool {
	if len([]rune(password)) < MinLength {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}
