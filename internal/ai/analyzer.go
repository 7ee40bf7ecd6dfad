package ai

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/logging"
)

// Analysis is the full company analysis.
type Analysis struct {
	CountryAnalysis       string    `json:"countryAnalysis"`
	SectorTrends          string    `json:"sectorTrends"`
	TurkeyMarketFit       string    `json:"turkeyMarketFit"`
	CertificationAnalysis string    `json:"certificationAnalysis"`
	RiskAssessment        string    `json:"riskAssessment"`
	Recommendations       string    `json:"recommendations"`
	Score                 int       `json:"overallScore"`
	NextActions           []string  `json:"nextActions"`
	GeneratedAt           time.Time `json:"generatedAt"`
}

// Analyzer runs the analysis prompts through an Asker.
type Analyzer struct {
	asker    Asker
	scorer   Scorer
	language string
	opts     Options
	now      func() time.Time
	logger   *slog.Logger
}

// NewAnalyzer returns an Analyzer. A nil scorer means KeywordScorer; an
// empty language means Turkish. opts.System is replaced by the analyst
// persona.
func NewAnalyzer(asker Asker, scorer Scorer, language string, opts Options, logger *slog.Logger) *Analyzer {
	if scorer == nil {
		scorer = KeywordScorer{}
	}
	if language == "" {
		language = "Turkish"
	}
	opts.System = systemPrompt(language)
	return &Analyzer{
		asker:    asker,
		scorer:   scorer,
		language: language,
		opts:     opts,
		now:      time.Now,
		logger:   logging.OrDefault(logger),
	}
}

// Configured reports whether any provider can answer.
func (a *Analyzer) Configured() bool { return a.asker.Configured() }

// AnalyzeCompany asks the six analysis prompts concurrently, then scores the
// answers.
func (a *Analyzer) AnalyzeCompany(ctx context.Context, r core.Record) (Analysis, error) {
	if !a.asker.Configured() {
		return Analysis{}, ErrNotConfigured
	}

	prompts := analysisPrompts(r)
	var texts [len(prompts)]string

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range prompts {
		g.Go(func() error {
			texts[i] = a.asker.Ask(gctx, p, a.opts)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}

	all := texts[:]
	res := Analysis{
		CountryAnalysis:       texts[0],
		SectorTrends:          texts[1],
		TurkeyMarketFit:       texts[2],
		CertificationAnalysis: texts[3],
		RiskAssessment:        texts[4],
		Recommendations:       texts[5],
		Score:                 a.scorer.Score(r, all),
		NextActions:           a.scorer.NextActions(r, all),
		GeneratedAt:           a.now(),
	}

	logging.Scoped(ctx, a.logger).Info("company analysed",
		"customer_id", r.ID,
		"score", res.Score,
	)
	return res, nil
}

// QuickAnalysis answers one free-form question about r.
func (a *Analyzer) QuickAnalysis(ctx context.Context, r core.Record, question string) string {
	return a.asker.Ask(ctx, quickPrompt(r, question), a.opts)
}

// MarketAnalysis describes the market for sector in country.
func (a *Analyzer) MarketAnalysis(ctx context.Context, country, sector string) string {
	return a.asker.Ask(ctx, marketPrompt(country, sector), a.opts)
}

// CompetitorAnalysis names the main competitors in sector and country.
func (a *Analyzer) CompetitorAnalysis(ctx context.Context, sector, country string) string {
	return a.asker.Ask(ctx, competitorPrompt(sector, country), a.opts)
}
