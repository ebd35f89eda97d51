// Package view holds the leaderboard page state (view mode, score mode,
// provider filter, graph tab) and the pure list operations each view applies.
package view

import (
	"net/url"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pinchbench/pinchboard/internal/models"
)

// Mode is the top-level leaderboard view.
type Mode string

const (
	ModeSuccess Mode = "success"
	ModeSpeed   Mode = "speed"
	ModeCost    Mode = "cost"
	ModeGraphs  Mode = "graphs"
)

// GraphTab selects the chart shown in the graphs view.
type GraphTab string

const (
	GraphScatter      GraphTab = "scatter"
	GraphHeatmap      GraphTab = "heatmap"
	GraphDistribution GraphTab = "distribution"
	GraphRadar        GraphTab = "radar"
)

// Defaults are omitted from query strings.
const (
	DefaultMode      = ModeSuccess
	DefaultScoreMode = models.ScoreAverage
	DefaultGraphTab  = GraphScatter
)

// ParseMode returns the Mode named by s, or DefaultMode.
func ParseMode(s string) Mode {
	switch m := Mode(s); m {
	case ModeSuccess, ModeSpeed, ModeCost, ModeGraphs:
		return m
	}
	return DefaultMode
}

// ParseScoreMode returns the ScoreMode named by s, or DefaultScoreMode.
func ParseScoreMode(s string) models.ScoreMode {
	switch m := models.ScoreMode(s); m {
	case models.ScoreBest, models.ScoreAverage:
		return m
	}
	return DefaultScoreMode
}

// ParseGraphTab returns the GraphTab named by s, or DefaultGraphTab.
func ParseGraphTab(s string) GraphTab {
	switch g := GraphTab(s); g {
	case GraphScatter, GraphHeatmap, GraphDistribution, GraphRadar:
		return g
	}
	return DefaultGraphTab
}

// State is the shareable page state.
type State struct {
	View     Mode             `json:"view"`
	Score    models.ScoreMode `json:"score"`
	Provider string           `json:"provider,omitempty"`
	Graph    GraphTab         `json:"graph"`
	Version  string           `json:"version,omitempty"`
}

// DefaultState is the state of a bare URL.
func DefaultState() State {
	return State{View: DefaultMode, Score: DefaultScoreMode, Graph: DefaultGraphTab}
}

// rawQuery is the decoded shape of a leaderboard or chart URL. Scalar
// parameters take their first value; model and hide keep every value.
type rawQuery struct {
	View     string   `mapstructure:"view"`
	Score    string   `mapstructure:"score"`
	Provider string   `mapstructure:"provider"`
	Graph    string   `mapstructure:"graph"`
	Version  string   `mapstructure:"version"`
	Axis     string   `mapstructure:"axis"`
	Sort     string   `mapstructure:"sort"`
	Models   []string `mapstructure:"model"`
	Hide     []string `mapstructure:"hide"`
}

// ChartQuery is State plus the chart-specific parameters.
type ChartQuery struct {
	State
	Axis   string
	Sort   string
	Models []string
	Hide   []string
}

// ParseState reads State from query parameters. Unknown values fall back to
// their defaults and unrelated parameters are ignored.
func ParseState(q url.Values) (State, error) {
	cq, err := ParseChartQuery(q)
	if err != nil {
		return DefaultState(), err
	}
	return cq.State, nil
}

// ParseChartQuery reads State and the chart parameters from q. Repeated model
// and hide values are kept in order with empty values dropped.
func ParseChartQuery(q url.Values) (ChartQuery, error) {
	data := make(map[string]any, len(q))
	for k, v := range q {
		data[k] = v
	}

	var raw rawQuery
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(firstValue),
		Result:     &raw,
	})
	if err != nil {
		return ChartQuery{State: DefaultState()}, err
	}
	if err := dec.Decode(data); err != nil {
		return ChartQuery{State: DefaultState()}, err
	}

	return ChartQuery{
		State: State{
			View:     ParseMode(raw.View),
			Score:    ParseScoreMode(raw.Score),
			Provider: raw.Provider,
			Graph:    ParseGraphTab(raw.Graph),
			Version:  raw.Version,
		},
		Axis:   raw.Axis,
		Sort:   raw.Sort,
		Models: nonEmpty(raw.Models),
		Hide:   nonEmpty(raw.Hide),
	}, nil
}

// firstValue collapses a repeated parameter onto a string field, matching
// url.Values.Get.
func firstValue(from, to reflect.Type, data any) (any, error) {
	if from != reflect.TypeOf([]string(nil)) || to.Kind() != reflect.String {
		return data, nil
	}
	if vals := data.([]string); len(vals) > 0 {
		return vals[0], nil
	}
	return "", nil
}

func nonEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Query encodes s, leaving out every parameter that has its default value.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.View != "" && s.View != DefaultMode {
		q.Set("view", string(s.View))
	}
	if s.Score != "" && s.Score != DefaultScoreMode {
		q.Set("score", string(s.Score))
	}
	if s.Provider != "" {
		q.Set("provider", s.Provider)
	}
	if s.Graph != "" && s.Graph != DefaultGraphTab {
		q.Set("graph", string(s.Graph))
	}
	if s.Version != "" {
		q.Set("version", s.Version)
	}
	return q
}
