//go:build race

package yoga

import "golang.org/x/crypto/bcrypt"

// race builds run much slower, keep hashing cheap there
func passwordHashCost() int {
	return bcrypt.MinCost
}
