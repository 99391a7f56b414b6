package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatorCompilesSchemas(t *testing.T) {
	v := NewValidator()
	_, ok := v.schemas["series"]
	assert.True(t, ok, "series schema should compile")
}

func TestValidateFileAccepts(t *testing.T) {
	doc := `
name: Spring Series
scoring:
  system: Appendix A Low Point
  discardPattern: "0,0,1"
  participationPercent: 50
  codes:
    - name: DNC
      formula: series-competitors-plus
      value: 1
      discardable: true
competitors:
  - id: gbr-1
    name: Aurora
races:
  - name: Race 1
    date: 2025-06-01
    state: raced
    results:
      - competitor: gbr-1
        place: 1
`
	v := NewValidator()
	errs := v.ValidateFile("series.yaml", []byte(doc))
	assert.Empty(t, errs)
}

func TestValidateFileRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing series name",
			doc: `
competitors: []
races: []
`,
		},
		{
			name: "bad formula",
			doc: `
name: S
scoring:
  system: Test
  codes:
    - name: DNF
      formula: frobnicate
competitors: []
races: []
`,
		},
		{
			name: "bad discard pattern",
			doc: `
name: S
scoring:
  system: Test
  discardPattern: "0,x,1"
competitors: []
races: []
`,
		},
		{
			name: "participation out of range",
			doc: `
name: S
scoring:
  system: Test
  participationPercent: 150
competitors: []
races: []
`,
		},
		{
			name: "bad race date",
			doc: `
name: S
competitors: []
races:
  - date: June 1st
`,
		},
		{
			name: "bad race state",
			doc: `
name: S
competitors: []
races:
  - date: 2025-06-01
    state: postponed-maybe
`,
		},
		{
			name: "place below one",
			doc: `
name: S
competitors:
  - id: a
races:
  - date: 2025-06-01
    results:
      - competitor: a
        place: 0
`,
		},
		{
			name: "not yaml at all",
			doc:  "\t{{",
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateFile("series.yaml", []byte(tt.doc))
			require.NotEmpty(t, errs)
			assert.Equal(t, "series.yaml", errs[0].File)
			assert.NotEmpty(t, errs[0].Message)
		})
	}
}

func TestValidateSeriesNestedParent(t *testing.T) {
	doc := map[string]any{
		"name": "S",
		"scoring": map[string]any{
			"system": "Club Rules",
			"parent": map[string]any{
				"system": "Appendix A Low Point",
			},
		},
		"competitors": []any{},
		"races":       []any{},
	}
	v := NewValidator()
	assert.Empty(t, v.ValidateSeries("inline", doc))
}
