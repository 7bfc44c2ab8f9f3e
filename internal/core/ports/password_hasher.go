package ports

// PasswordHasher is the one-way transform applied to every secret before it
// reaches storage.
type PasswordHasher interface {
	// Hash returns a salted, work-factored hash of plaintext. Fails only on
	// malformed input (domain.ErrInvalidSecret).
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the stored hash. A wrong
	// password is (false, nil); only a malformed stored hash is an error
	// (domain.ErrCorruptHash).
	Verify(plaintext, hashed string) (bool, error)
}
