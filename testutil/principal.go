package testutil

import (
	"github.com/google/uuid"

	"github.com/citymetro/schedule-registry/internal/domain"
)

// NewPrincipal mints a unique opaque principal token. Integration tests
// share one database, so fixed principals would collide across packages;
// a UUID-backed token keeps every test's identities disjoint.
func NewPrincipal(prefix string) domain.Principal {
	return domain.Principal(prefix + "-" + uuid.NewString())
}
