package repository

import (
	"testing"
	"time"

	"github.com/damoang/angple-search/internal/domain"
	"github.com/damoang/angple-search/internal/migration"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Fixture ids
const (
	accAlice int64 = 1 // MEMBER of grp and priv
	accBob   int64 = 2 // BANNED in pub
	accCarol int64 = 3 // OWNER of grp and priv, MODERATOR of pub
	accDave  int64 = 4 // site moderator
	accErin  int64 = 5 // deleted account
	accFrank int64 = 6 // PENDING in grp

	comPub  int64 = 10
	comGrp  int64 = 11
	comPriv int64 = 12
	comGone int64 = 13 // deleted

	postPubPublic     int64 = 100
	postPubMembers    int64 = 101
	postPubModerators int64 = 102
	postGrpPublic     int64 = 103
	postGrpMembers    int64 = 104
	postGrpModerators int64 = 105
	postPrivPublic    int64 = 106
	postPrivMods      int64 = 107
	postInGone        int64 = 108
	postDeleted       int64 = 109

	cmtOnPubPublic    int64 = 200
	cmtOnGrpPublic    int64 = 201
	cmtOnPrivPublic   int64 = 202
	cmtOnGrpMembers   int64 = 203
	cmtOnDeletedPost  int64 = 204
	cmtDeleted        int64 = 205
	cmtOnGrpModerator int64 = 206
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	if err := migration.Run(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func deletedAt() gorm.DeletedAt {
	return gorm.DeletedAt{Time: time.Now(), Valid: true}
}

// seedCommunityFixture builds three live communities (PUBLIC, GROUP, PRIVATE),
// one deleted community and posts/comments at every visibility level.
func seedCommunityFixture(t *testing.T, db *gorm.DB) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	must(db.Create(&[]domain.Account{
		{ID: accAlice, Handle: "alice", DisplayName: "Alice", Role: domain.AccountRoleUser, CreatedAt: at(1)},
		{ID: accBob, Handle: "bob", DisplayName: "Bob", Role: domain.AccountRoleUser, CreatedAt: at(2)},
		{ID: accCarol, Handle: "carol", DisplayName: "Carol", Role: domain.AccountRoleUser, CreatedAt: at(3)},
		{ID: accDave, Handle: "dave", DisplayName: "Dave", Role: domain.AccountRoleModerator, CreatedAt: at(4)},
		{ID: accErin, Handle: "erin", DisplayName: "Erin", Role: domain.AccountRoleUser, CreatedAt: at(5), DeletedAt: deletedAt()},
		{ID: accFrank, Handle: "frank", DisplayName: "Frank", Role: domain.AccountRoleUser, CreatedAt: at(6)},
	}).Error)

	must(db.Create(&[]domain.Community{
		{ID: comPub, Name: "Public Board", Slug: "pub", Visibility: domain.ContainerPublic, CreatedAt: at(10)},
		{ID: comGrp, Name: "Group Board", Slug: "grp", Visibility: domain.ContainerGroup, CreatedAt: at(11)},
		{ID: comPriv, Name: "Private Board", Slug: "priv", Visibility: domain.ContainerPrivate, CreatedAt: at(12)},
		{ID: comGone, Name: "Gone Board", Slug: "gone", Visibility: domain.ContainerPublic, CreatedAt: at(13), DeletedAt: deletedAt()},
	}).Error)

	must(db.Create(&[]domain.Membership{
		{CommunityID: comPub, AccountID: accBob, Role: domain.RoleBanned},
		{CommunityID: comPub, AccountID: accCarol, Role: domain.RoleModerator},
		{CommunityID: comGrp, AccountID: accAlice, Role: domain.RoleMember},
		{CommunityID: comGrp, AccountID: accCarol, Role: domain.RoleOwner},
		{CommunityID: comGrp, AccountID: accFrank, Role: domain.RolePending},
		{CommunityID: comPriv, AccountID: accAlice, Role: domain.RoleMember},
		{CommunityID: comPriv, AccountID: accCarol, Role: domain.RoleOwner},
	}).Error)

	post := func(id, community int64, vis domain.ContentVisibility, title string, minute int) domain.Post {
		return domain.Post{
			ID: id, CommunityID: community, AuthorID: accCarol, Title: title,
			Content: title + " body", Visibility: vis, CreatedAt: at(minute),
		}
	}
	posts := []domain.Post{
		post(postPubPublic, comPub, domain.ContentPublic, "Notice: maintenance", 100),
		post(postPubMembers, comPub, domain.ContentMembers, "members notice", 101),
		post(postPubModerators, comPub, domain.ContentModerators, "mods notice", 102),
		post(postGrpPublic, comGrp, domain.ContentPublic, "group hello", 103),
		post(postGrpMembers, comGrp, domain.ContentMembers, "group members", 104),
		post(postGrpModerators, comGrp, domain.ContentModerators, "group mods", 105),
		post(postPrivPublic, comPriv, domain.ContentPublic, "private notice", 106),
		post(postPrivMods, comPriv, domain.ContentModerators, "private mods", 107),
		post(postInGone, comGone, domain.ContentPublic, "gone notice", 108),
		post(postDeleted, comPub, domain.ContentPublic, "deleted notice", 109),
	}
	posts[len(posts)-1].DeletedAt = deletedAt()
	must(db.Create(&posts).Error)

	comment := func(id, postID, author int64, minute int) domain.Comment {
		return domain.Comment{ID: id, PostID: postID, AuthorID: author, Content: "reply", CreatedAt: at(minute)}
	}
	comments := []domain.Comment{
		comment(cmtOnPubPublic, postPubPublic, accAlice, 200),
		comment(cmtOnGrpPublic, postGrpPublic, accAlice, 201),
		comment(cmtOnPrivPublic, postPrivPublic, accCarol, 202),
		comment(cmtOnGrpMembers, postGrpMembers, accAlice, 203),
		comment(cmtOnDeletedPost, postDeleted, accAlice, 204),
		comment(cmtDeleted, postPubPublic, accBob, 205),
		comment(cmtOnGrpModerator, postGrpModerators, accCarol, 206),
	}
	comments[5].DeletedAt = deletedAt()
	must(db.Create(&comments).Error)
}
