package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/damoang/angple-search/internal/common"
	"github.com/damoang/angple-search/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReadSnapshot(t *testing.T) {
	db := setupTestDB(t)
	seedCommunityFixture(t, db)
	store := NewStore(db, SearchOptions{}, nil)

	var hits []domain.PostHit
	err := store.ReadSnapshot(context.Background(), func(repos Repositories) error {
		account, err := repos.Accounts.FindByID(context.Background(), accAlice)
		if err != nil {
			return err
		}
		hits, err = repos.Hydrate.Posts(context.Background(), []int64{postGrpMembers},
			domain.Authenticated(account.ID, account.IsPrivileged()))
		return err
	})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, postGrpMembers, hits[0].ID)
}

func TestStore_ReadSnapshotPropagatesError(t *testing.T) {
	store := NewStore(setupTestDB(t), SearchOptions{}, nil)
	boom := errors.New("boom")

	err := store.ReadSnapshot(context.Background(), func(Repositories) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestSnapshotTxOptions(t *testing.T) {
	tests := []struct {
		name string
		want sql.IsolationLevel
	}{
		{"", sql.LevelRepeatableRead},
		{"repeatable_read", sql.LevelRepeatableRead},
		{"serializable", sql.LevelSerializable},
		{"read_committed", sql.LevelReadCommitted},
		{"bogus", sql.LevelRepeatableRead},
	}
	for _, tt := range tests {
		opts := SnapshotTxOptions(tt.name)
		assert.Equal(t, tt.want, opts.Isolation, tt.name)
		assert.True(t, opts.ReadOnly)
	}
}

func TestAccountRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	seedCommunityFixture(t, db)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	account, err := repo.FindByID(ctx, accDave)
	require.NoError(t, err)
	assert.Equal(t, "dave", account.Handle)
	assert.True(t, account.IsPrivileged())

	_, err = repo.FindByID(ctx, accErin)
	assert.ErrorIs(t, err, common.ErrNotFound, "soft-deleted accounts are not found")

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
