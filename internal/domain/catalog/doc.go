// Package catalog provides the idea catalog a user picks ventures from.
//
// Components:
//   - Catalog: concurrent-safe, insertion-ordered idea store
//   - Builtin: the five curated ideas every catalog starts with
//   - Seeder: loads extra ideas from YAML, TOML or JSON files on startup
//
// Seed File Format (YAML shown; TOML uses [[ideas]] tables):
//
//	ideas:
//	  - id: orbital-dc          # optional, derived from the title when absent
//	    title: Orbital Data Centers
//	    category: Infrastructure
//	    short_description: Solar-powered compute in low earth orbit.
//	    icon: 🛰
//
// Example Usage:
//
//	cat := catalog.Default()
//	result, err := catalog.NewSeeder(cat, "./ideas", "", logger).Seed(ctx)
//	idea, err := cat.Get("1")
package catalog
