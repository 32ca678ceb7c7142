package catalog

import (
	"errors"
	"fmt"

	"github.com/mcdev12/flashcard/go/internal/models"
	"gopkg.in/yaml.v3"
)

// MinPairs is the number of pairs dealt in a round, so no catalog may hold fewer.
const MinPairs = 4

var (
	ErrCatalogTooSmall = errors.New("catalog must contain at least 4 entries")
	ErrEmptyAsset      = errors.New("card pair has an empty asset reference")
)

// Catalog is the fixed, ordered list of question/answer pairs.
type Catalog struct {
	pairs []models.CardPair
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return MustNew([]models.CardPair{
		{Question: "images/1.png", Answer: "images/2.png"},
		{Question: "images/3.png", Answer: "images/4.png"},
		{Question: "images/5.png", Answer: "images/6.png"},
		{Question: "images/7.png", Answer: "images/8.png"},
	})
}

// New validates pairs and copies them into a catalog.
func New(pairs []models.CardPair) (*Catalog, error) {
	if len(pairs) < MinPairs {
		return nil, fmt.Errorf("%w: got %d", ErrCatalogTooSmall, len(pairs))
	}
	for i, p := range pairs {
		if p.Question == "" || p.Answer == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrEmptyAsset, i)
		}
	}
	cp := make([]models.CardPair, len(pairs))
	copy(cp, pairs)
	return &Catalog{pairs: cp}, nil
}

// MustNew is New for static configuration; an invalid catalog is a programming error.
func MustNew(pairs []models.CardPair) *Catalog {
	c, err := New(pairs)
	if err != nil {
		panic(err)
	}
	return c
}

// UnmarshalYAML decodes a list of `{question, answer}` entries and validates
// it the same way New does.
func (c *Catalog) UnmarshalYAML(value *yaml.Node) error {
	var pairs []models.CardPair
	if err := value.Decode(&pairs); err != nil {
		return fmt.Errorf("failed to decode catalog: %w", err)
	}
	parsed, err := New(pairs)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// Pairs returns a copy of the catalog in its defined order.
func (c *Catalog) Pairs() []models.CardPair {
	cp := make([]models.CardPair, len(c.pairs))
	copy(cp, c.pairs)
	return cp
}

func (c *Catalog) Len() int {
	return len(c.pairs)
}
