// Package manual holds the emergency-response manual corpus and its
// keyword search.
package manual

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/aquasense/aquasense-engine/pkg/models"
)

const maxSearchResults = 5

// Searcher answers keyword queries over the loaded manual documents.
type Searcher struct {
	docs   []models.ManualDocument
	logger *zap.Logger
}

// NewSearcher creates a searcher over the given corpus.
func NewSearcher(docs []models.ManualDocument, logger *zap.Logger) *Searcher {
	return &Searcher{
		docs:   docs,
		logger: logger.Named("manual-search"),
	}
}

// LoadManuals reads a YAML corpus file. The file holds a list of manual
// documents with title, type, keywords, and content.
func LoadManuals(path string) ([]models.ManualDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manuals file: %w", err)
	}
	var docs []models.ManualDocument
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse manuals file: %w", err)
	}
	return docs, nil
}

type scoredDoc struct {
	doc   models.ManualDocument
	score int
}

// Search ranks documents by keyword overlap with the query and returns
// the top matches. Scoring: title containing the query outranks keyword
// hits, which outrank type hits.
func (s *Searcher) Search(query string) []models.ManualDocument {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var scored []scoredDoc
	for _, doc := range s.docs {
		score := 0
		if strings.Contains(strings.ToLower(doc.Title), q) {
			score += 10
		}
		for _, kw := range doc.Keywords {
			k := strings.ToLower(kw)
			if strings.Contains(q, k) {
				score += 5
			} else if strings.Contains(k, q) {
				score += 3
			}
		}
		if strings.Contains(q, strings.ToLower(doc.Type)) {
			score += 8
		}
		if score > 0 {
			scored = append(scored, scoredDoc{doc: doc, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > maxSearchResults {
		scored = scored[:maxSearchResults]
	}

	out := make([]models.ManualDocument, 0, len(scored))
	for _, sd := range scored {
		out = append(out, sd.doc)
	}
	s.logger.Debug("manual search",
		zap.String("query", query),
		zap.Int("matches", len(out)))
	return out
}

// ByType returns the first document with the given type, if any.
func (s *Searcher) ByType(manualType string) (models.ManualDocument, bool) {
	for _, doc := range s.docs {
		if doc.Type == manualType {
			return doc, true
		}
	}
	return models.ManualDocument{}, false
}
