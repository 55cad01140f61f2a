// Package scope carries the (user, household) pair every read and write is
// constrained by.
package scope

import (
	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
)

type Scope struct {
	UserID      uuid.UUID
	HouseholdID uuid.UUID
}

func New(userID, householdID uuid.UUID) Scope {
	return Scope{UserID: userID, HouseholdID: householdID}
}

func (s Scope) IsZero() bool {
	return s.UserID == uuid.Nil || s.HouseholdID == uuid.Nil
}

// Where returns id = $1 AND user_id = $2 AND household_id = $3.
func (s Scope) Where(id uuid.UUID) bob.Expression {
	return psql.And(
		psql.Quote("id").EQ(psql.Arg(id)),
		s.Owner(),
	)
}

// Owner returns user_id = $1 AND household_id = $2.
func (s Scope) Owner() bob.Expression {
	return psql.And(
		psql.Quote("user_id").EQ(psql.Arg(s.UserID)),
		psql.Quote("household_id").EQ(psql.Arg(s.HouseholdID)),
	)
}
