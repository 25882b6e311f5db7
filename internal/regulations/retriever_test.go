package regulations

import (
	"context"
	"errors"
	"testing"

	"finpol-compliance/internal/apperrors"
	"finpol-compliance/internal/models"
	redismocks "finpol-compliance/internal/redis/mocks"
	"finpol-compliance/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func corpusRepo() *mocks.MockRegulationRepository {
	repo := new(mocks.MockRegulationRepository)
	repo.On("ListRegulations", mock.Anything).Return(Corpus, nil)
	return repo
}

func TestSearch_Crypto(t *testing.T) {
	r := NewRetriever(corpusRepo(), nil)

	matches, err := r.Search(context.Background(), "cryptocurrency", 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "FATF-R15", matches[0].Code)
	assert.Equal(t, 4.0, matches[0].Score)
}

func TestSearch_RankedOrder(t *testing.T) {
	r := NewRetriever(corpusRepo(), nil)

	matches, err := r.Search(context.Background(), "anti-money laundering suspicious transactions reporting", 3)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.LessOrEqual(t, len(matches), 3)
	assert.Equal(t, "AML-PMLA-STR", matches[0].Code)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestSearch_TieBreakByCode(t *testing.T) {
	repo := new(mocks.MockRegulationRepository)
	repo.On("ListRegulations", mock.Anything).Return([]models.Regulation{
		{ID: "2", Code: "B-2", Title: "Wire rules"},
		{ID: "1", Code: "A-1", Title: "Wire rules"},
		{ID: "3", Code: "C-3", Title: "Unrelated"},
	}, nil)

	matches, err := NewRetriever(repo, nil).Search(context.Background(), "wire", 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "A-1", matches[0].Code)
	assert.Equal(t, "B-2", matches[1].Code)
}

func TestSearch_EmptyQuery(t *testing.T) {
	repo := new(mocks.MockRegulationRepository)
	r := NewRetriever(repo, nil)

	for _, q := range []string{"", "   ", "the and"} {
		_, err := r.Search(context.Background(), q, 3)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "query %q", q)
	}
	repo.AssertNotCalled(t, "ListRegulations", mock.Anything)
}

func TestSearch_DefaultTopK(t *testing.T) {
	r := NewRetriever(corpusRepo(), nil)

	matches, err := r.Search(context.Background(), "transactions cross-border customer data", 0)
	require.NoError(t, err)
	assert.Len(t, matches, DefaultTopK)
}

func TestSearch_CacheHit(t *testing.T) {
	repo := new(mocks.MockRegulationRepository)
	cache := new(redismocks.MockClientInterface)
	cached := []models.RegulationMatch{{Regulation: models.Regulation{Code: "AML-PMLA-STR"}, Score: 9}}
	cache.On("GetSearchResults", mock.Anything, "aml", 3).Return(cached, true, nil)

	matches, err := NewRetriever(repo, cache).Search(context.Background(), "aml", 3)
	require.NoError(t, err)
	assert.Equal(t, cached, matches)
	repo.AssertNotCalled(t, "ListRegulations", mock.Anything)
}

func TestSearch_CacheMissStoresResults(t *testing.T) {
	cache := new(redismocks.MockClientInterface)
	cache.On("GetSearchResults", mock.Anything, "cryptocurrency", 3).Return(nil, false, nil)
	cache.On("SaveSearchResults", mock.Anything, "cryptocurrency", 3, mock.AnythingOfType("[]models.RegulationMatch")).Return(nil)

	matches, err := NewRetriever(corpusRepo(), cache).Search(context.Background(), "cryptocurrency", 3)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	cache.AssertExpectations(t)
}

func TestSearch_RepositoryError(t *testing.T) {
	repo := new(mocks.MockRegulationRepository)
	repo.On("ListRegulations", mock.Anything).Return(nil, errors.New("disk I/O error"))

	_, err := NewRetriever(repo, nil).Search(context.Background(), "aml", 3)
	assert.Error(t, err)
}

func TestSeedAndList(t *testing.T) {
	repo := new(mocks.MockRegulationRepository)
	repo.On("UpsertRegulations", mock.Anything, Corpus).Return(nil)
	repo.On("ListRegulations", mock.Anything).Return(nil, nil)

	r := NewRetriever(repo, nil)
	require.NoError(t, r.Seed(context.Background()))

	regs, err := r.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, regs)
	assert.Empty(t, regs)
	repo.AssertExpectations(t)
}

func TestCorpus_Categories(t *testing.T) {
	allowed := map[string]bool{"AML": true, "KYC": true, "GDPR": true, "SEC": true, "FATF": true, "RBI": true, "PCI-DSS": true}
	ids := map[string]bool{}
	for _, reg := range Corpus {
		assert.True(t, allowed[reg.Category], "unexpected category %s", reg.Category)
		assert.False(t, ids[reg.ID], "duplicate id %s", reg.ID)
		ids[reg.ID] = true
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"transaction", "risk", "india", "crypto", "exchange"}, tokenize("Transaction risk India crypto_exchange"))
	assert.Equal(t, []string{"anti-money", "laundering"}, tokenize("the anti-money, laundering!"))
}
