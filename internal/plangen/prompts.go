// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package plangen

import (
	"fmt"
	"strings"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

const planPrompt = `You are a culinary assistant and short-form recipe video generator.

### STEP 1 — INGREDIENTS
Given the uploaded image, identify only edible ingredients. Ignore containers, brands, packaging text, and kitchen items.
Return ingredients as a JSON array of lowercase singular ingredient names.

### STEP 2 — RECIPE OPTIONS
Using only these ingredients plus basic pantry staples (salt, pepper, oil, water), propose 3 recipe ideas.
For each recipe, provide:
- title (fun & catchy, <= 6 words)
- time_minutes (<= 25)
- difficulty: "easy"
- steps: 5–8 short steps, each imperative tense and <= 12 words
- missing_items: at most 0–2 optional extras

### STEP 3 — STORYBOARD GENERATION (FOR THE FIRST RECIPE)
Take the FIRST recipe you listed and generate a single 10-second vertical video storyboard.
Provide:
- "hook": "One-sentence attention grabber, fun, casual"
- "voiceover_script": "Natural narration for 10-second video, ~30-40 words, casual like TikTok"
- "video_description": "Detailed description of the cooking video covering the key visual steps and actions that will happen in 10 seconds. Include transitions between steps."
- "caption": "Main on-screen text/caption that will appear during the video (keep it short and punchy)"

### OUTPUT FORMAT (IMPORTANT)
Return a single, valid JSON object matching the provided schema. Do not add explanations or commentary.`

func storyboardPrompt(recipe culinarydb.Recipe) string {
	return fmt.Sprintf(`Generate a 10-second vertical video storyboard for this recipe: "%[1]s"

Recipe details:
- Time: %[2]d minutes
- Difficulty: %[3]s
- Steps: %[4]s

Create an engaging, specific voiceover that:
1. Mentions the dish name "%[1]s" clearly
2. Highlights the time (%[2]d minutes) and difficulty
3. Describes 2-3 key steps from the recipe
4. Uses a casual, energetic tone like TikTok/Instagram Reels
5. Is exactly 8-12 seconds when spoken (aim for 25-35 words)

Provide:
- "hook": "One-sentence attention grabber mentioning the dish name, fun, casual"
- "voiceover_script": "Specific narration mentioning "%[1]s" by name, the %[2]d-minute time, and key cooking steps. Should be 25-35 words, casual and energetic, perfect for a short cooking video."
- "video_description": "Detailed description of the cooking video covering the key visual steps and actions that will happen in 10 seconds. Include transitions between steps."
- "caption": "Main on-screen text/caption - the dish name "%[1]s" (keep it short and punchy)"

Return JSON with these fields.`,
		recipe.Title, recipe.TimeMinutes, recipe.Difficulty, strings.Join(recipe.Steps, ". "))
}
