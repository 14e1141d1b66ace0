package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/damoang/angple-search/internal/common"
	"github.com/damoang/angple-search/internal/domain"
	"github.com/damoang/angple-search/internal/repository"
)

// ResolveAccess builds the access context for one call.
// A nil caller is anonymous and needs no lookup.
func ResolveAccess(ctx context.Context, accounts repository.AccountRepository, callerID *int64) (domain.AccessContext, error) {
	if callerID == nil {
		return domain.Anonymous(), nil
	}

	account, err := accounts.FindByID(ctx, *callerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return domain.AccessContext{}, fmt.Errorf("%w: id %d", common.ErrCallerNotFound, *callerID)
		}
		return domain.AccessContext{}, fmt.Errorf("resolve caller: %w", err)
	}
	return domain.Authenticated(account.ID, account.IsPrivileged()), nil
}
