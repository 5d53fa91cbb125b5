package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"github.com/charlievieth/fastwalk"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// DefaultPattern matches every supported idea file below the seed directory.
const DefaultPattern = "**/*.{yaml,yml,toml,json}"

// ideaNamespace scopes name-based ids so a title maps to the same id on every run.
var ideaNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/GriffinCanCode/venture-blueprint/ideas"))

// ideaFile is the document shape of every seed file, whatever its format:
//
//	ideas:
//	  - title: Orbital Data Centers
//	    category: Infrastructure
type ideaFile struct {
	Ideas []Idea `json:"ideas" yaml:"ideas" toml:"ideas"`
}

// SeedResult summarizes a seeding run.
type SeedResult struct {
	Files  int `json:"files"`
	Loaded int `json:"loaded"`
	Failed int `json:"failed"`
}

// Seeder loads extra ideas from a directory of YAML, TOML and JSON files.
type Seeder struct {
	catalog *Catalog
	dir     string
	pattern string
	logger  *zap.Logger
}

// NewSeeder creates a seeder. An empty pattern means DefaultPattern.
func NewSeeder(catalog *Catalog, dir, pattern string, logger *zap.Logger) *Seeder {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &Seeder{
		catalog: catalog,
		dir:     dir,
		pattern: pattern,
		logger:  logger.Named("catalog"),
	}
}

// Seed loads every matching file. Files are applied in lexical path order so
// later files override earlier ones deterministically. A missing directory is
// not an error; a malformed file is logged and counted as failed.
func (s *Seeder) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	if !doublestar.ValidatePattern(s.pattern) {
		return result, fmt.Errorf("invalid catalog pattern %q", s.pattern)
	}

	if _, err := os.Stat(s.dir); errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("Catalog directory not found", zap.String("dir", s.dir))
		return result, nil
	}

	paths, err := s.discover(ctx)
	if err != nil {
		return result, err
	}
	result.Files = len(paths)

	for _, path := range paths {
		ideas, err := LoadFile(path)
		if err != nil {
			s.logger.Warn("Failed to load idea file", zap.String("path", path), zap.Error(err))
			result.Failed++
			continue
		}

		for _, idea := range ideas {
			if err := s.catalog.Add(idea); err != nil {
				s.logger.Warn("Skipping invalid idea", zap.String("path", path), zap.Error(err))
				result.Failed++
				continue
			}
			result.Loaded++
		}
	}

	s.logger.Info("Catalog seeded",
		zap.String("dir", s.dir),
		zap.Int("files", result.Files),
		zap.Int("loaded", result.Loaded),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// discover walks the directory concurrently and returns matching files sorted.
func (s *Seeder) discover(ctx context.Context) ([]string, error) {
	var (
		mu    sync.Mutex
		paths []string
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, s.dir, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(s.dir, p)
		if relErr != nil {
			return nil
		}
		if ok, _ := doublestar.Match(s.pattern, filepath.ToSlash(rel)); !ok {
			return nil
		}

		mu.Lock()
		paths = append(paths, p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk catalog directory: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadFile decodes the ideas in one file, choosing the format by extension.
// Ideas without an id get a stable id derived from their title.
func LoadFile(path string) ([]Idea, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(filepath.Ext(path), data)
}

// Decode parses an idea document in the format named by ext (".yaml",
// ".yml", ".toml" or ".json").
func Decode(ext string, data []byte) ([]Idea, error) {
	var doc ideaFile
	var err error

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	case ".json":
		err = sonic.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported idea file format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s document: %w", strings.TrimPrefix(ext, "."), err)
	}

	for i := range doc.Ideas {
		if strings.TrimSpace(doc.Ideas[i].ID) == "" && strings.TrimSpace(doc.Ideas[i].Title) != "" {
			doc.Ideas[i].ID = DeriveID(doc.Ideas[i].Title)
		}
	}
	return doc.Ideas, nil
}

// DeriveID returns the name-based (v5) UUID of a title.
func DeriveID(title string) string {
	return uuid.NewSHA1(ideaNamespace, []byte(strings.TrimSpace(title))).String()
}
