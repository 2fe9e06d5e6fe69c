// Package compare ranks several analyzed careers against each other.
package compare

import (
	"fmt"
	"sort"
	"time"

	"github.com/okian/careerlens/internal/domain/analysis"
	"github.com/okian/careerlens/internal/domain/model"
)

// Metric names, in ranking order.
const (
	MetricCareerScore    = "career_score"
	MetricAvgRating      = "avg_rating"
	MetricTotalBoxOffice = "total_box_office"
	MetricCareerLength   = "career_length"
)

// Metrics lists every ranked metric in a fixed order.
var Metrics = []string{MetricCareerScore, MetricAvgRating, MetricTotalBoxOffice, MetricCareerLength}

const minActors = 2

// ActorAnalysis is one actor's analysis or the reason it failed.
type ActorAnalysis struct {
	Name     string           `json:"name"`
	Analysis *analysis.Result `json:"analysis,omitempty"`
	Error    string           `json:"error,omitempty"`
	err      error
}

// Err returns the analysis failure, if any.
func (a ActorAnalysis) Err() error { return a.err }

// Entry is one position in a metric ranking.
type Entry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Result holds per-actor analyses, a descending ranking per metric and the
// winner of each metric.
type Result struct {
	Actors  []ActorAnalysis    `json:"actors"`
	Metrics map[string][]Entry `json:"metrics_comparison"`
	Winners map[string]string  `json:"winner_categories"`
}

// Analyzer is the analysis capability the engine needs.
type Analyzer interface {
	Analyze(career *model.ActorCareer, asOf time.Time) (analysis.Result, error)
}

// Engine compares careers.
type Engine struct {
	analyzer Analyzer
}

// New creates an Engine.
func New(analyzer Analyzer) *Engine {
	return &Engine{analyzer: analyzer}
}

// Compare analyzes every career once and ranks them per metric. Actors whose
// analysis failed, or who lack a value for a metric, are left out of that
// metric's ranking.
func (e *Engine) Compare(careers []*model.ActorCareer, asOf time.Time) (Result, error) {
	if len(careers) < minActors {
		return Result{}, fmt.Errorf("compare %d actors: %w", len(careers), model.ErrInsufficientActors)
	}

	res := Result{
		Actors:  make([]ActorAnalysis, 0, len(careers)),
		Metrics: make(map[string][]Entry, len(Metrics)),
		Winners: make(map[string]string, len(Metrics)),
	}
	for _, career := range careers {
		entry := ActorAnalysis{}
		if career != nil {
			entry.Name = career.Name
		}
		r, err := e.analyzer.Analyze(career, asOf)
		if err != nil {
			entry.err = err
			entry.Error = err.Error()
		} else {
			entry.Analysis = &r
		}
		res.Actors = append(res.Actors, entry)
	}

	for _, metric := range Metrics {
		ranking := make([]Entry, 0, len(res.Actors))
		for _, a := range res.Actors {
			if a.Analysis == nil {
				continue
			}
			if v, ok := metricValue(*a.Analysis, metric); ok {
				ranking = append(ranking, Entry{Name: a.Name, Value: v})
			}
		}
		if len(ranking) == 0 {
			continue
		}
		sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].Value > ranking[j].Value })
		res.Metrics[metric] = ranking
		res.Winners[metric] = ranking[0].Name
	}
	return res, nil
}

func metricValue(r analysis.Result, metric string) (float64, bool) {
	switch metric {
	case MetricCareerScore:
		return r.CareerScore, true
	case MetricAvgRating:
		return r.AvgRating, true
	case MetricTotalBoxOffice:
		return r.TotalBoxOffice, true
	case MetricCareerLength:
		if r.CareerLength == nil {
			return 0, false
		}
		return float64(*r.CareerLength), true
	default:
		return 0, false
	}
}
