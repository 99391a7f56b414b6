// Package seriesfile loads series documents from YAML files into the
// scoring data model. It is the narrow input boundary between stored
// configuration and the engine; the engine itself never touches files.
package seriesfile

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dotcommander/regatta/internal/model"
)

// seriesDoc mirrors the on-disk YAML layout.
type seriesDoc struct {
	Name        string          `yaml:"name"`
	Scoring     *systemDoc      `yaml:"scoring"`
	Competitors []competitorDoc `yaml:"competitors"`
	Races       []raceDoc       `yaml:"races"`
}

type systemDoc struct {
	System               string     `yaml:"system"`
	DiscardPattern       string     `yaml:"discardPattern"`
	ParticipationPercent *float64   `yaml:"participationPercent"`
	FirstPlaceValue      *float64   `yaml:"firstPlaceValue"`
	Parent               *systemDoc `yaml:"parent"`
	Codes                []codeDoc  `yaml:"codes"`
}

type codeDoc struct {
	Name                 string  `yaml:"name"`
	Formula              string  `yaml:"formula"`
	Value                float64 `yaml:"value"`
	Discardable          bool    `yaml:"discardable"`
	PreserveResult       bool    `yaml:"preserveResult"`
	AdjustOtherScores    *bool   `yaml:"adjustOtherScores"`
	Started              bool    `yaml:"started"`
	CameToStart          bool    `yaml:"cameToStart"`
	CountAsParticipation bool    `yaml:"countAsParticipation"`
}

type competitorDoc struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Sail string `yaml:"sail"`
}

type raceDoc struct {
	Name    string      `yaml:"name"`
	Date    string      `yaml:"date"`
	Order   int         `yaml:"order"`
	State   string      `yaml:"state"`
	Results []resultDoc `yaml:"results"`
}

type resultDoc struct {
	Competitor string   `yaml:"competitor"`
	Place      *int     `yaml:"place"`
	Code       string   `yaml:"code"`
	CodePoints *float64 `yaml:"codePoints"`
}

// Load reads and builds a series from a YAML document on disk.
func Load(path string) (*model.Series, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading series file: %w", err)
	}
	return Parse(content)
}

// Parse builds a series from YAML content, validating references as it
// goes: every result must name a known competitor, every race needs a
// parseable date, and score-code formulas must belong to the closed set.
func Parse(content []byte) (*model.Series, error) {
	var doc seriesDoc
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parsing series document: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("series document has no name")
	}

	series := &model.Series{Name: doc.Name}

	if doc.Scoring != nil {
		sys, err := buildSystem(doc.Scoring)
		if err != nil {
			return nil, err
		}
		series.System = sys
	}

	seen := make(map[string]bool, len(doc.Competitors))
	for i, c := range doc.Competitors {
		if c.ID == "" {
			return nil, fmt.Errorf("competitor %d has no id", i+1)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate competitor id %q", c.ID)
		}
		seen[c.ID] = true
		name := c.Name
		if name == "" {
			name = c.ID
		}
		series.Competitors = append(series.Competitors, model.Competitor{
			ID:         c.ID,
			Name:       name,
			SailNumber: c.Sail,
		})
	}

	// Race names double as race IDs, so they must be unique too.
	seenRaces := make(map[string]bool, len(doc.Races))
	for i, r := range doc.Races {
		race, err := buildRace(r, i, seen)
		if err != nil {
			return nil, err
		}
		if seenRaces[race.ID] {
			return nil, fmt.Errorf("duplicate race name %q", race.ID)
		}
		seenRaces[race.ID] = true
		series.Races = append(series.Races, race)
	}

	return series, nil
}

func buildSystem(doc *systemDoc) (*model.ScoringSystem, error) {
	if doc.System == "" {
		return nil, fmt.Errorf("scoring block has no system name")
	}
	sys := &model.ScoringSystem{
		Name:                 doc.System,
		DiscardPattern:       doc.DiscardPattern,
		ParticipationPercent: doc.ParticipationPercent,
		FirstPlaceValue:      doc.FirstPlaceValue,
	}
	for _, c := range doc.Codes {
		code, err := buildCode(c)
		if err != nil {
			return nil, fmt.Errorf("system %q: %w", doc.System, err)
		}
		sys.Codes = append(sys.Codes, code)
	}
	if doc.Parent != nil {
		parent, err := buildSystem(doc.Parent)
		if err != nil {
			return nil, err
		}
		sys.Parent = parent
	}
	return sys, nil
}

func buildCode(doc codeDoc) (model.ScoreCode, error) {
	if doc.Name == "" {
		return model.ScoreCode{}, fmt.Errorf("score code has no name")
	}
	formula, err := model.ParseFormula(doc.Formula)
	if err != nil {
		return model.ScoreCode{}, fmt.Errorf("score code %q: %w", doc.Name, err)
	}
	// Codes count toward "beaten by" totals unless explicitly opted out.
	adjusts := true
	if doc.AdjustOtherScores != nil {
		adjusts = *doc.AdjustOtherScores
	}
	return model.ScoreCode{
		Name:                 doc.Name,
		Formula:              formula,
		FormulaValue:         doc.Value,
		Discardable:          doc.Discardable,
		PreserveResult:       doc.PreserveResult,
		AdjustOtherScores:    adjusts,
		Started:              doc.Started,
		CameToStart:          doc.CameToStart,
		CountAsParticipation: doc.CountAsParticipation,
	}, nil
}

func buildRace(doc raceDoc, idx int, competitors map[string]bool) (*model.Race, error) {
	name := doc.Name
	if name == "" {
		name = fmt.Sprintf("Race %d", idx+1)
	}
	date, err := time.Parse("2006-01-02", doc.Date)
	if err != nil {
		return nil, fmt.Errorf("race %q: bad date %q (want YYYY-MM-DD)", name, doc.Date)
	}
	state, err := model.ParseRaceState(doc.State)
	if err != nil {
		return nil, fmt.Errorf("race %q: %w", name, err)
	}
	order := doc.Order
	if order == 0 {
		order = idx + 1
	}
	race := &model.Race{
		ID:    name,
		Name:  name,
		Date:  date,
		Order: order,
		State: state,
	}
	for _, res := range doc.Results {
		if res.Competitor == "" {
			return nil, fmt.Errorf("race %q: result has no competitor", name)
		}
		if !competitors[res.Competitor] {
			return nil, fmt.Errorf("race %q: unknown competitor %q", name, res.Competitor)
		}
		if res.Place == nil && res.Code == "" {
			return nil, fmt.Errorf("race %q: result for %q has neither place nor code", name, res.Competitor)
		}
		if res.Place != nil && *res.Place < 1 {
			return nil, fmt.Errorf("race %q: place must be positive for %q", name, res.Competitor)
		}
		race.Scores = append(race.Scores, model.Score{
			CompetitorID: res.Competitor,
			RaceID:       race.ID,
			Place:        res.Place,
			Code:         res.Code,
			CodePoints:   res.CodePoints,
		})
	}
	return race, nil
}
