package core

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/housing/internal/logging"
	"github.com/google/uuid"
)

// AnalyzeTimeout bounds a single analysis run.
var AnalyzeTimeout = 2 * time.Minute

// ClassifiedHouse is a house together with its height category.
type ClassifiedHouse struct {
	House
	Category Category `json:"category"`
}

// MinAreaResult identifies the most space-constrained house.
type MinAreaResult struct {
	Address string  `json:"address"`
	Ratio   float64 `json:"ratio"`
}

// Report holds the three derived results of one analysis run.
type Report struct {
	RunID       string            `json:"runId"`
	Source      string            `json:"source"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Houses      []ClassifiedHouse `json:"houses"`
	Counts      map[Category]int  `json:"counts"`
	MinArea     MinAreaResult     `json:"minAreaPerResident"`
	DurationMs  int64             `json:"durationMs"`
}

// CategoryCount is one entry of Report.OrderedCounts.
type CategoryCount struct {
	Category Category
	Count    int
}

// OrderedCounts returns the non-zero counts in band order (Low, Mid, High).
func (r *Report) OrderedCounts() []CategoryCount {
	var out []CategoryCount
	for _, c := range Categories() {
		if n, ok := r.Counts[c]; ok {
			out = append(out, CategoryCount{Category: c, Count: n})
		}
	}
	return out
}

// BuildReport runs classification and both aggregates over houses.
// It does not set RunID, Source or timing fields.
func BuildReport(houses []House) (*Report, error) {
	categories, err := ClassifyAll(houses)
	if err != nil {
		return nil, err
	}

	best, ratio, err := minAreaPerResident(houses)
	if err != nil {
		return nil, err
	}

	classified := make([]ClassifiedHouse, len(houses))
	for i, h := range houses {
		classified[i] = ClassifiedHouse{House: h, Category: categories[i]}
	}

	return &Report{
		Houses:  classified,
		Counts:  Tally(categories),
		MinArea: MinAreaResult{Address: best.Address, Ratio: ratio},
	}, nil
}

// Service runs analyses against a default source.
type Service struct {
	source Source
	now    func() time.Time
}

// NewService creates a Service reading from src.
func NewService(src Source) *Service {
	return &Service{
		source: src,
		now:    time.Now,
	}
}

// SourceName returns the name of the default source.
func (s *Service) SourceName() string {
	return s.source.Name()
}

// Analyze runs the pipeline against the default source.
func (s *Service) Analyze(ctx context.Context) (*Report, error) {
	return s.AnalyzeSource(ctx, s.source)
}

// AnalyzeSource loads src and builds a report. Every error aborts the run;
// nothing is retried or partially returned.
func (s *Service) AnalyzeSource(ctx context.Context, src Source) (*Report, error) {
	runID := uuid.New().String()
	ctx = logging.ContextWithRunID(ctx, runID)
	ctx, cancel := context.WithTimeout(ctx, AnalyzeTimeout)
	defer cancel()

	start := s.now()
	logger := logging.WithFields(ctx, "source", src.Name())
	logger.Debug("analysis started")

	houses, err := src.Load(ctx)
	if err != nil {
		logger.Warn("load failed", "error", err)
		return nil, fmt.Errorf("load houses: %w", err)
	}

	report, err := BuildReport(houses)
	if err != nil {
		logger.Warn("analysis failed", "houses", len(houses), "error", err)
		return nil, err
	}

	report.RunID = runID
	report.Source = src.Name()
	report.GeneratedAt = start.UTC()
	report.DurationMs = s.now().Sub(start).Milliseconds()

	logger.Info("analysis completed",
		"houses", len(houses),
		"min_area_address", report.MinArea.Address,
		"duration_ms", report.DurationMs,
	)
	return report, nil
}
