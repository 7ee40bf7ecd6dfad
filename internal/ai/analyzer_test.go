package ai

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/logging"
)

// echoAsker answers each prompt with its first line.
type echoAsker struct {
	configured bool

	mu      sync.Mutex
	prompts []string
	opts    []Options
}

func (e *echoAsker) Configured() bool { return e.configured }

func (e *echoAsker) Ask(ctx context.Context, prompt string, opts Options) string {
	text, _ := e.Generate(ctx, prompt, opts)
	return text
}

func (e *echoAsker) Generate(_ context.Context, prompt string, opts Options) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prompts = append(e.prompts, prompt)
	e.opts = append(e.opts, opts)
	return strings.SplitN(prompt, "\n", 2)[0], nil
}

func analysedRecord() core.Record {
	return core.Record{
		ID: "c1", Country: "Qatar", CompanyName: "Doha Build", Sector: "Construction",
		InterestStatus: core.InterestYes, Priority: core.PriorityHigh, ActionNote: "met",
		FollowUpStatus: core.FollowUpFirst,
	}
}

func TestAnalyzer_AnalyzeCompany(t *testing.T) {
	asker := &echoAsker{configured: true}
	a := NewAnalyzer(asker, nil, "English", Options{Temperature: 0.7, MaxTokens: 300}, logging.Discard())
	fixed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return fixed }

	res, err := a.AnalyzeCompany(context.Background(), analysedRecord())
	require.NoError(t, err)

	assert.Len(t, asker.prompts, 6)
	assert.Contains(t, res.CountryAnalysis, "Construction sector in Qatar")
	assert.Contains(t, res.TurkeyMarketFit, "Doha Build")
	assert.Contains(t, res.CertificationAnalysis, "Certificates")
	assert.Contains(t, res.RiskAssessment, "SWOT")
	assert.Equal(t, fixed, res.GeneratedAt)

	want := KeywordScorer{}
	texts := []string{res.CountryAnalysis, res.SectorTrends, res.TurkeyMarketFit,
		res.CertificationAnalysis, res.RiskAssessment, res.Recommendations}
	assert.Equal(t, want.Score(analysedRecord(), texts), res.Score)
	assert.Equal(t, want.NextActions(analysedRecord(), texts), res.NextActions)

	for _, o := range asker.opts {
		assert.Contains(t, o.System, "Answer in English")
		assert.Equal(t, 300, o.MaxTokens)
	}
}

func TestAnalyzer_NotConfigured(t *testing.T) {
	a := NewAnalyzer(&echoAsker{}, nil, "", Options{}, nil)
	_, err := a.AnalyzeCompany(context.Background(), analysedRecord())
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "AI001", core.MapError(err).Code)
}

func TestAnalyzer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewAnalyzer(&echoAsker{configured: true}, nil, "", Options{}, logging.Discard())
	_, err := a.AnalyzeCompany(ctx, analysedRecord())
	assert.ErrorIs(t, err, context.Canceled)
}

type constScorer struct{}

func (constScorer) Score(core.Record, []string) int            { return 42 }
func (constScorer) NextActions(core.Record, []string) []string { return []string{"call"} }

func TestAnalyzer_CustomScorer(t *testing.T) {
	a := NewAnalyzer(&echoAsker{configured: true}, constScorer{}, "", Options{}, logging.Discard())
	res, err := a.AnalyzeCompany(context.Background(), analysedRecord())
	require.NoError(t, err)
	assert.Equal(t, 42, res.Score)
	assert.Equal(t, []string{"call"}, res.NextActions)
}

func TestAnalyzer_SinglePrompts(t *testing.T) {
	asker := &echoAsker{configured: true}
	a := NewAnalyzer(asker, nil, "", Options{}, logging.Discard())
	ctx := context.Background()

	assert.Equal(t, "Company: Doha Build", a.QuickAnalysis(ctx, analysedRecord(), "Is it a good fit?"))
	assert.Contains(t, asker.prompts[0], "Question: Is it a good fit?")

	assert.Contains(t, a.MarketAnalysis(ctx, "Qatar", "Energy"), "Energy sector in Qatar")
	assert.Contains(t, a.CompetitorAnalysis(ctx, "Energy", "Qatar"), "main players in the Energy sector in Qatar")
	assert.Contains(t, asker.opts[0].System, "Answer in Turkish")
}
