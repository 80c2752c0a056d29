package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes an account password with bcrypt. The cost comes from
// BCRYPT_COST in the environment; values below bcrypt's minimum are raised
// to the library default so a misconfigured deployment never stores weak
// hashes.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash. The
// comparison is constant-time inside bcrypt; callers treat a mismatch the
// same as an unknown account.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
