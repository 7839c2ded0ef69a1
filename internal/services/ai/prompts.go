package ai

import (
	"fmt"
	"strings"
)

const roleSection = `<ROLE>
You are a professional chef and recipe developer. Your task is to look at the
provided food (a photograph or a short description) and produce one complete,
practical recipe for it, structured in a specific JSON format.
</ROLE>`

const requirementsSection = `<REQUIREMENTS>
1. Identify the dish and give it an appetizing but accurate name
2. Provide realistic preparation time, cooking time, and serving count
3. List every ingredient with concrete measurements
4. Write clear step-by-step cooking instructions a beginner can follow
5. Estimate nutrition per serving: calories, protein, fat, carbs
6. Add a short tips section with variations or serving suggestions
7. Respect the dietary restrictions exactly; never include excluded ingredients
8. Write the entire recipe in the requested language
</REQUIREMENTS>`

const outputFormatSection = `<OUTPUT_FORMAT>
Respond with ONLY a JSON object. No markdown fencing, no commentary, no text
before or after the JSON. Use exactly this structure:

{
  "name": "Recipe name",
  "prep_time": "15 minutes",
  "cook_time": "30 minutes",
  "servings": "4",
  "ingredients_with_measurements": [
    "2 cups flour",
    "1 tsp salt"
  ],
  "instructions": [
    "Step one...",
    "Step two..."
  ],
  "nutrition": {
    "calories": "350 kcal",
    "protein": "12g",
    "fat": "8g",
    "carbs": "55g"
  },
  "tips": "Optional tips and variations"
}
</OUTPUT_FORMAT>`

const preferencesSection = `<PREFERENCES>
Language: %s
Dietary restrictions: %s
Cuisine preference: %s
</PREFERENCES>`

// BuildRecipePrompt builds the deterministic instruction prompt sent to every
// provider. Empty dietary restrictions become "None" and an empty cuisine
// preference becomes "Auto-detect from image". The embedded JSON schema is the
// contract the recipe parser depends on.
func BuildRecipePrompt(language, dietaryRestrictions, cuisinePreference string) string {
	if dietaryRestrictions == "" {
		dietaryRestrictions = "None"
	}
	if cuisinePreference == "" {
		cuisinePreference = "Auto-detect from image"
	}

	var sb strings.Builder
	sb.WriteString(roleSection)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf(preferencesSection, language, dietaryRestrictions, cuisinePreference))
	sb.WriteString("\n\n")
	sb.WriteString(requirementsSection)
	sb.WriteString("\n\n")
	sb.WriteString(outputFormatSection)

	return sb.String()
}
