// Package catalog holds the fixed table of job categories.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
)

var defaultCategories = []domain.Category{
	{ID: 0, Name: "Advocate"},
	{ID: 1, Name: "Arts"},
	{ID: 2, Name: "Automation Testing"},
	{ID: 3, Name: "Blockchain"},
	{ID: 4, Name: "Business Analyst"},
	{ID: 5, Name: "Civil Engineer"},
	{ID: 6, Name: "Data Science"},
	{ID: 7, Name: "Database"},
	{ID: 8, Name: "DevOps Engineer"},
	{ID: 9, Name: "DotNet Developer"},
	{ID: 10, Name: "ETL Developer"},
	{ID: 11, Name: "Electrical Engineering"},
	{ID: 12, Name: "HR"},
	{ID: 13, Name: "Hadoop"},
	{ID: 14, Name: "Health and fitness"},
	{ID: 15, Name: "Java Developer"},
	{ID: 16, Name: "Mechanical Engineer"},
	{ID: 17, Name: "Network Security Engineer"},
	{ID: 18, Name: "Operations Manager"},
	{ID: 19, Name: "PMO"},
	{ID: 20, Name: "Python Developer"},
	{ID: 21, Name: "SAP Developer"},
	{ID: 22, Name: "Sales"},
	{ID: 23, Name: "Testing"},
	{ID: 24, Name: "Web Designing"},
}

// Catalog is immutable after construction.
type Catalog struct {
	ordered []domain.Category
	names   map[int]string
}

type file struct {
	Categories []domain.Category `yaml:"categories"`
}

func Default() *Catalog {
	c, _ := New(defaultCategories)
	return c
}

func New(categories []domain.Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, errors.New("category table is empty")
	}
	ordered := append([]domain.Category(nil), categories...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	names := make(map[int]string, len(ordered))
	for i, category := range ordered {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			return nil, fmt.Errorf("category %d has no name", category.ID)
		}
		if _, dup := names[category.ID]; dup {
			return nil, fmt.Errorf("category %d is defined twice", category.ID)
		}
		names[category.ID] = name
		ordered[i].Name = name
	}
	return &Catalog{ordered: ordered, names: names}, nil
}

// Load reads a YAML category table. An empty path yields the built-in table.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	var parsed file
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse categories file: %w", err)
	}
	c, err := New(parsed.Categories)
	if err != nil {
		return nil, fmt.Errorf("categories file %s: %w", path, err)
	}
	return c, nil
}

func (c *Catalog) Lookup(id int) (string, bool) {
	name, ok := c.names[id]
	return name, ok
}

func (c *Catalog) List() []domain.Category {
	return append([]domain.Category(nil), c.ordered...)
}

func (c *Catalog) Len() int {
	return len(c.ordered)
}
