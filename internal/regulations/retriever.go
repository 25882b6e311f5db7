package regulations

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"unicode"

	"finpol-compliance/internal/apperrors"
	"finpol-compliance/internal/models"
	"finpol-compliance/internal/redis"
	"finpol-compliance/internal/storage"
)

const (
	DefaultTopK = 3
	MaxTopK     = 20
)

// Веса совпадений при ранжировании
const (
	keywordWeight  = 3.0
	titleWeight    = 2.0
	categoryWeight = 2.0
	contentWeight  = 1.0
)

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "the": true, "of": true, "for": true,
	"to": true, "in": true, "on": true, "by": true, "with": true, "or": true,
}

// Retriever ищет нормативные документы по ключевым словам
type Retriever struct {
	repo  storage.RegulationRepository
	cache redis.SearchCache
}

// NewRetriever создает поиск по регуляциям, cache может быть nil
func NewRetriever(repo storage.RegulationRepository, cache redis.SearchCache) *Retriever {
	return &Retriever{repo: repo, cache: cache}
}

// Seed загружает встроенную базу в хранилище
func (r *Retriever) Seed(ctx context.Context) error {
	if err := r.repo.UpsertRegulations(ctx, Corpus); err != nil {
		return fmt.Errorf("failed to seed regulations: %w", err)
	}
	log.Printf("Seeded %d regulations", len(Corpus))
	return nil
}

// List возвращает все регуляции, упорядоченные по коду
func (r *Retriever) List(ctx context.Context) ([]models.Regulation, error) {
	regs, err := r.repo.ListRegulations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list regulations: %w", err)
	}
	if regs == nil {
		regs = []models.Regulation{}
	}
	return regs, nil
}

// Search возвращает до topK совпадений по убыванию релевантности, при равенстве по коду
func (r *Retriever) Search(ctx context.Context, query string, topK int) ([]models.RegulationMatch, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, apperrors.Validation("query must not be empty")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	if r.cache != nil {
		cached, ok, err := r.cache.GetSearchResults(ctx, query, topK)
		if err != nil {
			log.Printf("Warning: regulation search cache read failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	regs, err := r.repo.ListRegulations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load regulations: %w", err)
	}

	matches := rank(regs, terms)
	if len(matches) > topK {
		matches = matches[:topK]
	}

	if r.cache != nil {
		if err := r.cache.SaveSearchResults(ctx, query, topK, matches); err != nil {
			log.Printf("Warning: regulation search cache write failed: %v", err)
		}
	}

	return matches, nil
}

func rank(regs []models.Regulation, terms []string) []models.RegulationMatch {
	matches := make([]models.RegulationMatch, 0, len(regs))
	for _, reg := range regs {
		if s := score(reg, terms); s > 0 {
			matches = append(matches, models.RegulationMatch{Regulation: reg, Score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Code < matches[j].Code
	})
	return matches
}

func score(reg models.Regulation, terms []string) float64 {
	keywords := strings.ToLower(strings.Join(reg.Keywords, " "))
	title := strings.ToLower(reg.Title)
	category := strings.ToLower(reg.Category + " " + reg.Authority + " " + reg.Code)
	content := strings.ToLower(reg.Content)

	var s float64
	for _, term := range terms {
		if strings.Contains(keywords, term) {
			s += keywordWeight
		}
		if strings.Contains(title, term) {
			s += titleWeight
		}
		if strings.Contains(category, term) {
			s += categoryWeight
		}
		if strings.Contains(content, term) {
			s += contentWeight
		}
	}
	return s
}

// tokenize разбивает запрос на слова в нижнем регистре без стоп-слов
func tokenize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})

	seen := make(map[string]bool, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "-")
		if len(f) < 2 || stopWords[f] || seen[f] {
			continue
		}
		seen[f] = true
		terms = append(terms, f)
	}
	return terms
}
