package llm

import "strings"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

func (c ModelCost) Cost(input, output int) float64 {
	return (float64(input)*c.InputPerMTok + float64(output)*c.OutputPerMTok) / 1e6
}

// modelCosts covers the default model of each backend. Backends often
// report a dated snapshot ("gpt-4o-mini-2024-07-18"), so lookups fall back
// to the longest listed prefix.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":            {1, 5},
	"gpt-4o-mini":                 {0.15, 0.6},
	"gemini-2.0-flash":            {0.1, 0.4},
	"google/gemini-2.0-flash-exp": {0, 0},
}

// LookupCost returns the price of modelID, or nil when it is not listed.
func LookupCost(modelID string) *ModelCost {
	var best string
	for id := range modelCosts {
		if strings.HasPrefix(modelID, id) && len(id) > len(best) {
			best = id
		}
	}
	if best == "" {
		return nil
	}
	c := modelCosts[best]
	return &c
}
