package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/damoang/angple-search/internal/config"
	"github.com/damoang/angple-search/internal/migration"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	target := flag.String("target", "all", "migration target: all, schema, search")
	dryRun := flag.Bool("dry-run", false, "print the search DDL without executing")
	verify := flag.Bool("verify", false, "verify search columns and indexes exist")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	loaded, err := config.LoadDotEnv(".")
	if err != nil {
		log.Printf("Skipped malformed env file: %v", err)
	}
	if len(loaded) == 0 {
		log.Println("No .env file loaded, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *dryRun {
		stmts, err := migration.SearchIndexStatements(cfg.Search.TextSearchConfig)
		if err != nil {
			log.Fatalf("Invalid search config: %v", err)
		}
		for _, stmt := range stmts {
			fmt.Println(stmt + ";")
		}
		return
	}

	logLevel := gormlogger.Warn
	if *verbose {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	if *verify {
		runVerify(db)
		return
	}

	if *target == "all" || *target == "schema" {
		if err := migration.Run(db); err != nil {
			log.Fatalf("Schema migration failed: %v", err)
		}
		log.Println("[migrate] schema up to date")
	}
	if *target == "all" || *target == "search" {
		if err := migration.RunSearchIndexes(db, cfg.Search.TextSearchConfig); err != nil {
			log.Fatalf("Search index migration failed: %v", err)
		}
		log.Println("[migrate] search columns and indexes up to date")
	}
}

// runVerify checks the structures the ranked and fuzzy tiers depend on
func runVerify(db *gorm.DB) {
	var trgm int64
	db.Raw("SELECT COUNT(*) FROM pg_extension WHERE extname = 'pg_trgm'").Scan(&trgm)
	fmt.Printf("pg_trgm extension: %s\n", mark(trgm > 0))

	for _, table := range []string{"communities", "posts", "comments", "accounts"} {
		hasVector := db.Migrator().HasColumn(table, "search_vector")
		hasIndex := db.Migrator().HasIndex(table, "idx_"+table+"_search_vector")
		fmt.Printf("%-12s search_vector: %s  gin index: %s\n", table, mark(hasVector), mark(hasIndex))
	}
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
