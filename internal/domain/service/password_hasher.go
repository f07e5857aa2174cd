// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
type PasswordHasher interface {
	// Hash generates a salted one-way hash from a plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. A mismatch is (false, nil);
	// an error is returned only when hash itself is malformed.
	Verify(password, hash string) (bool, error)
}
