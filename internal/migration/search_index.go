package migration

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// searchSource tsvector source columns per table, highest weight first
type searchSource struct {
	table   string
	columns []string
	// trigram GIN indexes backing ILIKE and similarity()
	trigram []string
}

var searchSources = []searchSource{
	{table: "communities", columns: []string{"name", "slug", "description"}, trigram: []string{"name", "slug", "description"}},
	{table: "posts", columns: []string{"title", "content"}, trigram: []string{"title", "content"}},
	{table: "comments", columns: []string{"content"}, trigram: []string{"content"}},
	{table: "accounts", columns: []string{"handle", "display_name"}, trigram: []string{"handle", "display_name"}},
}

var regconfigPattern = regexp.MustCompile(`^[a-z_]+$`)

// RunSearchIndexes adds the pg_trgm extension, generated search_vector columns and
// their GIN indexes. Only Postgres has these; other dialects are skipped.
func RunSearchIndexes(db *gorm.DB, textSearchConfig string) error {
	if db.Dialector.Name() != "postgres" {
		log.Printf("[Migration] %s: search indexes skipped", db.Dialector.Name())
		return nil
	}

	stmts, err := SearchIndexStatements(textSearchConfig)
	if err != nil {
		return err
	}

	if err := db.Exec(stmts[0]).Error; err != nil {
		return fmt.Errorf("enable pg_trgm: %w", err)
	}
	for _, src := range searchSources {
		if db.Migrator().HasColumn(src.table, "search_vector") {
			continue
		}
		if err := db.Exec(vectorColumnSQL(src, textSearchConfig)).Error; err != nil {
			return fmt.Errorf("add %s.search_vector: %w", src.table, err)
		}
		log.Printf("[Migration] added %s.search_vector", src.table)
	}
	for _, stmt := range stmts[1:] {
		if strings.HasPrefix(stmt, "ALTER TABLE") {
			continue
		}
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create search index: %w", err)
		}
	}
	return nil
}

// SearchIndexStatements full DDL for the search structures, in execution order.
// The ALTER TABLE statements are only run when the column is missing.
func SearchIndexStatements(textSearchConfig string) ([]string, error) {
	if !regconfigPattern.MatchString(textSearchConfig) {
		return nil, fmt.Errorf("invalid text search config %q", textSearchConfig)
	}

	stmts := []string{"CREATE EXTENSION IF NOT EXISTS pg_trgm"}
	for _, src := range searchSources {
		stmts = append(stmts, vectorColumnSQL(src, textSearchConfig))
	}
	for _, src := range searchSources {
		stmts = append(stmts, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_%s_search_vector ON %s USING GIN (search_vector)",
			src.table, src.table,
		))
		for _, col := range src.trigram {
			stmts = append(stmts, fmt.Sprintf(
				"CREATE INDEX IF NOT EXISTS idx_%s_%s_trgm ON %s USING GIN (%s gin_trgm_ops)",
				src.table, col, src.table, col,
			))
		}
	}
	return stmts, nil
}

func vectorColumnSQL(src searchSource, cfg string) string {
	weights := []string{"A", "B", "C", "D"}
	parts := make([]string, len(src.columns))
	for i, col := range src.columns {
		w := weights[len(weights)-1]
		if i < len(weights) {
			w = weights[i]
		}
		parts[i] = fmt.Sprintf("setweight(to_tsvector('%s', coalesce(%s, '')), '%s')", cfg, col, w)
	}
	return fmt.Sprintf(
		"ALTER TABLE %s ADD COLUMN search_vector tsvector GENERATED ALWAYS AS (%s) STORED",
		src.table, strings.Join(parts, " || "),
	)
}
