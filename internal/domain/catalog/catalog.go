package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/venture-blueprint/internal/shared/utils"
)

var (
	ErrNotFound    = errors.New("idea not found")
	ErrInvalidIdea = errors.New("invalid idea")
)

// Idea is a catalog entry. ID is its identity and the seed of every
// synthesized metric; the other fields are presentation only.
type Idea struct {
	ID               string `json:"id" yaml:"id" toml:"id"`
	Title            string `json:"title" yaml:"title" toml:"title"`
	Category         string `json:"category" yaml:"category" toml:"category"`
	ShortDescription string `json:"short_description" yaml:"short_description" toml:"short_description"`
	Icon             string `json:"icon" yaml:"icon" toml:"icon"`
}

// Validate checks the fields an idea cannot do without. The id must match
// utils.SafeIDPattern, the form every idea route accepts.
func (i Idea) Validate() error {
	if err := utils.ValidateID(i.ID, "id", true); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidIdea, err)
	}
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("%w: title is required for %q", ErrInvalidIdea, i.ID)
	}
	return nil
}

// Catalog holds ideas in insertion order. Safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	ideas map[string]Idea
	order []string
}

// New creates a catalog holding the given ideas.
func New(ideas ...Idea) (*Catalog, error) {
	c := &Catalog{ideas: make(map[string]Idea)}
	for _, idea := range ideas {
		if err := c.Add(idea); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Default creates a catalog holding the built-in ideas.
func Default() *Catalog {
	c, err := New(Builtin()...)
	if err != nil {
		// Built-ins are static and valid
		panic(err)
	}
	return c
}

// Add inserts an idea, replacing any idea with the same ID in place.
func (c *Catalog) Add(idea Idea) error {
	if err := idea.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.ideas[idea.ID]; !exists {
		c.order = append(c.order, idea.ID)
	}
	c.ideas[idea.ID] = idea
	return nil
}

// Get returns the idea with the given ID.
func (c *Catalog) Get(id string) (Idea, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idea, ok := c.ideas[id]
	if !ok {
		return Idea{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return idea, nil
}

// List returns ideas in insertion order. A non-empty category keeps only
// ideas of that category, compared case-insensitively.
func (c *Catalog) List(category string) []Idea {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ideas := make([]Idea, 0, len(c.order))
	for _, id := range c.order {
		idea := c.ideas[id]
		if category != "" && !strings.EqualFold(idea.Category, category) {
			continue
		}
		ideas = append(ideas, idea)
	}
	return ideas
}

// Categories returns the distinct non-empty categories, sorted.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, idea := range c.ideas {
		if idea.Category == "" || seen[idea.Category] {
			continue
		}
		seen[idea.Category] = true
		categories = append(categories, idea.Category)
	}
	sort.Strings(categories)
	return categories
}

// Len returns the number of ideas.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
