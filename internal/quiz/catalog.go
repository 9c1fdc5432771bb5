package quiz

import (
	"strings"

	"github.com/quizdesk/quizdesk/internal/models"
)

// Catalog is the client-side mirror of the backend's test list.
// Ordered like the server sent it, with an id index on top so lookups
// and removals don't depend on positions that shift under edits.
type Catalog struct {
	tests []models.Test
	index map[string]int
}

func NewCatalog() *Catalog {
	return &Catalog{index: map[string]int{}}
}

// Replace swaps the whole catalog for a fresh server snapshot
func (c *Catalog) Replace(tests []models.Test) {
	c.tests = make([]models.Test, len(tests))
	copy(c.tests, tests)
	c.reindex()
}

// Append adds a test to the end of the catalog.
// A test with a duplicate id replaces the existing one in place.
func (c *Catalog) Append(test models.Test) {
	if i, ok := c.index[test.ID]; ok {
		c.tests[i] = test
		return
	}
	c.tests = append(c.tests, test)
	c.index[test.ID] = len(c.tests) - 1
}

// Remove deletes exactly the test with the given id, keeping order
func (c *Catalog) Remove(id string) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}

	c.tests = append(c.tests[:i], c.tests[i+1:]...)
	c.reindex()
	return true
}

func (c *Catalog) Get(id string) (models.Test, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.Test{}, false
	}
	return c.tests[i], true
}

// SetQuestions replaces the question list of the identified test
func (c *Catalog) SetQuestions(id string, questions []models.Question) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}
	c.tests[i].Questions = questions
	return true
}

// Tests returns a copy of the catalog in server order
func (c *Catalog) Tests() []models.Test {
	out := make([]models.Test, len(c.tests))
	copy(out, c.tests)
	return out
}

func (c *Catalog) Len() int {
	return len(c.tests)
}

// Search filters titles by case-insensitive substring match.
// Purely local, no backend round-trip.
func (c *Catalog) Search(query string) []models.Test {
	query = strings.ToLower(query)

	var out []models.Test
	for _, t := range c.tests {
		if strings.Contains(strings.ToLower(t.Title), query) {
			out = append(out, t)
		}
	}
	return out
}

func (c *Catalog) reindex() {
	c.index = make(map[string]int, len(c.tests))
	for i, t := range c.tests {
		c.index[t.ID] = i
	}
}
