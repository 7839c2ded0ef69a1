package recipe

import (
	"encoding/json"
	"strings"
)

// FallbackWarning accompanies a fallback recipe built from unparseable output.
const FallbackWarning = "Could not parse structured recipe. Returning raw text response."

// flexString decodes a JSON string, number or boolean into a string, since
// models frequently emit `"servings": 4` where the schema asks for "4".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	*f = flexString(strings.Trim(string(data), `"`))
	return nil
}

type rawRecipe struct {
	Name                        flexString            `json:"name"`
	PrepTime                    flexString            `json:"prep_time"`
	CookTime                    flexString            `json:"cook_time"`
	Servings                    flexString            `json:"servings"`
	IngredientsWithMeasurements []string              `json:"ingredients_with_measurements"`
	Instructions                []string              `json:"instructions"`
	Nutrition                   map[string]flexString `json:"nutrition"`
	Tips                        flexString            `json:"tips"`
}

// Parse converts a model's raw text output into the canonical Recipe shape.
// It never fails: when the text is not valid JSON the entire trimmed response
// becomes the single step of a fallback recipe and a non-empty warning is
// returned. Unrecognized JSON keys are ignored; missing keys take defaults.
func Parse(raw string) (*Recipe, string) {
	cleaned := stripFences(strings.TrimSpace(raw))

	var decoded rawRecipe
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return fallbackRecipe(raw), FallbackWarning
	}

	rec := &Recipe{
		Title:       withDefault(string(decoded.Name), "Generated Recipe"),
		PrepTime:    withDefault(string(decoded.PrepTime), "N/A"),
		CookTime:    withDefault(string(decoded.CookTime), "N/A"),
		Servings:    withDefault(string(decoded.Servings), "N/A"),
		Ingredients: []string{},
		Steps:       []string{},
		Nutrition:   map[string]string{},
		Tips:        string(decoded.Tips),
	}
	if decoded.IngredientsWithMeasurements != nil {
		rec.Ingredients = decoded.IngredientsWithMeasurements
	}
	if decoded.Instructions != nil {
		rec.Steps = decoded.Instructions
	}
	for k, v := range decoded.Nutrition {
		rec.Nutrition[k] = string(v)
	}

	return rec, ""
}

// stripFences removes one leading ``` or ```json marker and one trailing
// ``` marker. The prompt forbids fencing but models emit it anyway; this is
// plain prefix/suffix stripping, not markdown parsing.
func stripFences(s string) string {
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

// fallbackRecipe preserves the whole response as the one and only step so no
// information is silently dropped.
func fallbackRecipe(raw string) *Recipe {
	return &Recipe{
		Title:       "Generated Recipe",
		PrepTime:    "N/A",
		CookTime:    "N/A",
		Servings:    "N/A",
		Ingredients: []string{},
		Steps:       []string{strings.TrimSpace(raw)},
		Nutrition:   map[string]string{},
		Tips:        "",
	}
}

func withDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
