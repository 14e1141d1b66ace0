package repository

import (
	"context"
	"testing"

	"github.com/damoang/angple-search/internal/domain"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type VisibilitySuite struct {
	suite.Suite
	db *gorm.DB
}

func TestVisibilitySuite(t *testing.T) {
	suite.Run(t, new(VisibilitySuite))
}

func (s *VisibilitySuite) SetupTest() {
	s.db = setupTestDB(s.T())
	seedCommunityFixture(s.T(), s.db)
}

// visible ids of kind for ac, through the same filtered base query the tiers use
func (s *VisibilitySuite) visible(kind domain.SearchKind, ac domain.AccessContext, scope string) []int64 {
	r := &searchRepository{db: s.db, opts: SearchOptions{}.withDefaults()}
	target := searchTargets[kind]

	var ids []int64
	err := r.filtered(context.Background(), target, TierRequest{Kind: kind, Access: ac, ScopeSlug: scope}).
		Order(target.id).
		Pluck(target.id, &ids).Error
	s.Require().NoError(err)
	return ids
}

func (s *VisibilitySuite) TestAnonymous() {
	ac := domain.Anonymous()

	s.Equal([]int64{comPub}, s.visible(domain.KindCommunity, ac, ""))
	s.Equal([]int64{postPubPublic}, s.visible(domain.KindPost, ac, ""))
	s.Equal([]int64{cmtOnPubPublic}, s.visible(domain.KindComment, ac, ""))
	s.Equal([]int64{accAlice, accBob, accCarol, accDave, accFrank}, s.visible(domain.KindAccount, ac, ""))
}

func (s *VisibilitySuite) TestAnonymousNeverSeesPrivateContainerPost() {
	// a matching post in a PRIVATE container must not reach anonymous callers
	ids := s.visible(domain.KindPost, domain.Anonymous(), "")
	s.NotContains(ids, postPrivPublic)
	s.Contains(ids, postPubPublic)
}

func (s *VisibilitySuite) TestGroupMember() {
	ac := domain.Authenticated(accAlice, false)

	s.Equal([]int64{comPub, comGrp}, s.visible(domain.KindCommunity, ac, ""))
	s.Equal(
		[]int64{postPubPublic, postPubMembers, postGrpPublic, postGrpMembers},
		s.visible(domain.KindPost, ac, ""),
	)
	s.Equal(
		[]int64{cmtOnPubPublic, cmtOnGrpPublic, cmtOnGrpMembers},
		s.visible(domain.KindComment, ac, ""),
	)
}

func (s *VisibilitySuite) TestModeratorsItemNeedsStaffRole() {
	member := s.visible(domain.KindPost, domain.Authenticated(accAlice, false), "")
	owner := s.visible(domain.KindPost, domain.Authenticated(accCarol, false), "")

	s.NotContains(member, postGrpModerators)
	s.Contains(owner, postGrpModerators)
}

func (s *VisibilitySuite) TestOwnerSeesEverythingLive() {
	ac := domain.Authenticated(accCarol, false)

	s.Equal([]int64{comPub, comGrp, comPriv}, s.visible(domain.KindCommunity, ac, ""))
	s.Equal(
		[]int64{
			postPubPublic, postPubMembers, postPubModerators,
			postGrpPublic, postGrpMembers, postGrpModerators,
			postPrivPublic, postPrivMods,
		},
		s.visible(domain.KindPost, ac, ""),
	)
}

func (s *VisibilitySuite) TestBannedSeesNothingFromContainer() {
	ac := domain.Authenticated(accBob, false)

	s.Equal([]int64{comGrp}, s.visible(domain.KindCommunity, ac, ""))
	posts := s.visible(domain.KindPost, ac, "")
	s.Equal([]int64{postGrpPublic}, posts)
	for _, id := range []int64{postPubPublic, postPubMembers, postPubModerators} {
		s.NotContains(posts, id)
	}
	s.NotContains(s.visible(domain.KindComment, ac, ""), cmtOnPubPublic)
}

func (s *VisibilitySuite) TestPendingIsNotMembership() {
	ac := domain.Authenticated(accFrank, false)

	s.Equal([]int64{comPub, comGrp}, s.visible(domain.KindCommunity, ac, ""))
	s.Equal([]int64{postPubPublic, postPubMembers, postGrpPublic}, s.visible(domain.KindPost, ac, ""))
}

func (s *VisibilitySuite) TestPrivilegedBypassesRolesButNotDeletion() {
	ac := domain.Authenticated(accDave, true)

	posts := s.visible(domain.KindPost, ac, "")
	s.Len(posts, 8)
	s.NotContains(posts, postInGone)
	s.NotContains(posts, postDeleted)

	comments := s.visible(domain.KindComment, ac, "")
	s.NotContains(comments, cmtDeleted)
	s.NotContains(comments, cmtOnDeletedPost)
	s.Contains(comments, cmtOnPrivPublic)
}

func (s *VisibilitySuite) TestScopeRestrictsComments() {
	ac := domain.Authenticated(accCarol, false)

	s.Equal(
		[]int64{cmtOnGrpPublic, cmtOnGrpMembers, cmtOnGrpModerator},
		s.visible(domain.KindComment, ac, "grp"),
	)
	s.Equal([]int64{postGrpPublic, postGrpMembers, postGrpModerators}, s.visible(domain.KindPost, ac, "grp"))
}

func (s *VisibilitySuite) TestScopeIgnoredForCommunitiesAndAccounts() {
	ac := domain.Anonymous()
	s.Equal([]int64{comPub}, s.visible(domain.KindCommunity, ac, "grp"))
	s.Len(s.visible(domain.KindAccount, ac, "grp"), 5)
}

func (s *VisibilitySuite) TestUnknownKindMatchesNothing() {
	p := VisibilityPredicate(domain.SearchKind("BOARD"), domain.Anonymous())
	s.Equal("(1 = 0)", p.SQL)
	s.Empty(p.Vars)
}
