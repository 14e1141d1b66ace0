package repository

import (
	"strings"

	"github.com/damoang/angple-search/internal/domain"
	"gorm.io/gorm"
)

// Table aliases shared by every search and hydration query.
// Visibility predicates reference these names, so queries must use them.
const (
	aliasCommunity = "c"
	aliasPost      = "p"
	aliasComment   = "cm"
	aliasAccount   = "a"
)

// Predicate SQL condition with positional vars, usable with gorm Where
type Predicate struct {
	SQL  string
	Vars []interface{}
}

// Apply adds the predicate to q as a WHERE condition
func (p Predicate) Apply(q *gorm.DB) *gorm.DB {
	return q.Where(p.SQL, p.Vars...)
}

// VisibilityPredicate builds the row filter deciding whether a row of the given kind
// is visible to ac. It includes soft-delete liveness of the row and of its containers.
// Ranked, fuzzy and hydration queries all call this, so they can never disagree.
func VisibilityPredicate(kind domain.SearchKind, ac domain.AccessContext) Predicate {
	var live, access sqlExpr
	switch kind {
	case domain.KindAccount:
		return and(raw("a.deleted_at IS NULL")).predicate()
	case domain.KindCommunity:
		live = raw("c.deleted_at IS NULL")
		access = containerAccess(ac)
	case domain.KindPost:
		live = and(raw("p.deleted_at IS NULL"), raw("c.deleted_at IS NULL"))
		access = itemAccess(ac, "p.visibility")
	case domain.KindComment:
		// comments follow the visibility of their post
		live = and(raw("cm.deleted_at IS NULL"), raw("p.deleted_at IS NULL"), raw("c.deleted_at IS NULL"))
		access = itemAccess(ac, "p.visibility")
	default:
		return raw("1 = 0").predicate()
	}
	return and(live, access).predicate()
}

// containerAccess community-level test without the item layer
func containerAccess(ac domain.AccessContext) sqlExpr {
	if ac.IsAnonymous() {
		return expr("c.visibility = ?", string(domain.ContainerPublic))
	}
	if ac.Privileged {
		return raw("1 = 1")
	}
	uid := *ac.CallerID
	return and(
		notBanned(uid),
		or(
			expr("c.visibility = ?", string(domain.ContainerPublic)),
			expr("c.visibility = ?", string(domain.ContainerGroup)),
			and(expr("c.visibility = ?", string(domain.ContainerPrivate)), hasRole(uid, domain.RoleOwner)),
		),
	)
}

// itemAccess community visibility combined with the item visibility column
func itemAccess(ac domain.AccessContext, itemCol string) sqlExpr {
	if ac.IsAnonymous() {
		return and(
			expr("c.visibility = ?", string(domain.ContainerPublic)),
			expr(itemCol+" = ?", string(domain.ContentPublic)),
		)
	}
	if ac.Privileged {
		return raw("1 = 1")
	}

	uid := *ac.CallerID
	item := func(v domain.ContentVisibility) sqlExpr {
		return expr(itemCol+" = ?", string(v))
	}
	staff := func() sqlExpr { return hasRole(uid, domain.RoleOwner, domain.RoleModerator) }

	return and(
		notBanned(uid),
		or(
			and(
				expr("c.visibility = ?", string(domain.ContainerPublic)),
				or(
					expr(itemCol+" IN ?", []string{string(domain.ContentPublic), string(domain.ContentMembers)}),
					and(item(domain.ContentModerators), staff()),
				),
			),
			and(
				expr("c.visibility = ?", string(domain.ContainerGroup)),
				or(
					item(domain.ContentPublic),
					and(item(domain.ContentMembers), hasRole(uid, domain.RoleOwner, domain.RoleModerator, domain.RoleMember)),
					and(item(domain.ContentModerators), staff()),
				),
			),
			and(
				expr("c.visibility = ?", string(domain.ContainerPrivate)),
				hasRole(uid, domain.RoleOwner),
				expr(itemCol+" IN ?", []string{
					string(domain.ContentPublic), string(domain.ContentMembers), string(domain.ContentModerators),
				}),
			),
		),
	)
}

func hasRole(accountID int64, roles ...domain.MembershipRole) sqlExpr {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return expr(
		"EXISTS (SELECT 1 FROM community_memberships m WHERE m.community_id = c.id AND m.account_id = ? AND m.role IN ?)",
		accountID, names,
	)
}

func notBanned(accountID int64) sqlExpr {
	return expr(
		"NOT EXISTS (SELECT 1 FROM community_memberships mb WHERE mb.community_id = c.id AND mb.account_id = ? AND mb.role = ?)",
		accountID, string(domain.RoleBanned),
	)
}

// sqlExpr tiny composable condition; and/or wrap their operands in parentheses
type sqlExpr struct {
	sql  string
	vars []interface{}
}

func raw(sql string) sqlExpr { return sqlExpr{sql: sql} }

func expr(sql string, vars ...interface{}) sqlExpr { return sqlExpr{sql: sql, vars: vars} }

func and(parts ...sqlExpr) sqlExpr { return join(" AND ", parts) }

func or(parts ...sqlExpr) sqlExpr { return join(" OR ", parts) }

func join(sep string, parts []sqlExpr) sqlExpr {
	if len(parts) == 1 {
		return parts[0]
	}
	sqls := make([]string, len(parts))
	var vars []interface{}
	for i, p := range parts {
		sqls[i] = p.sql
		vars = append(vars, p.vars...)
	}
	return sqlExpr{sql: "(" + strings.Join(sqls, sep) + ")", vars: vars}
}

func (e sqlExpr) predicate() Predicate {
	sql := e.sql
	if !strings.HasPrefix(sql, "(") {
		sql = "(" + sql + ")"
	}
	return Predicate{SQL: sql, Vars: e.vars}
}
