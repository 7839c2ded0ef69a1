package recipe

// Recipe is the canonical output record returned to every caller regardless
// of vendor or parse outcome. Every field has a defined default; none is
// ever absent or null, so downstream consumers need no nil checks.
type Recipe struct {
	Title       string            `json:"title"`
	PrepTime    string            `json:"prep_time"`
	CookTime    string            `json:"cook_time"`
	Servings    string            `json:"servings"`
	Ingredients []string          `json:"ingredients"`
	Steps       []string          `json:"steps"`
	Nutrition   map[string]string `json:"nutrition"`
	Tips        string            `json:"tips"`
}
