package query

import (
	"context"

	"github.com/dirmaster/dirmaster-backend/internal/application/interfaces"
)

type CheckDomain struct {
	checker interfaces.DomainChecker
}

func NewCheckDomain(checker interfaces.DomainChecker) *CheckDomain {
	return &CheckDomain{checker: checker}
}

func (q *CheckDomain) Query(ctx context.Context, domain string) (bool, error) {
	return q.checker.CheckAvailability(ctx, domain)
}
