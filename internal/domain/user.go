package domain

import "github.com/google/uuid"

// User is the buyer referenced by payments. Payments share user values;
// lookups match on Email with case-sensitive equality.
type User struct {
	ID    uuid.UUID
	Email string
	Name  string
}
