// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package videogen

import (
	"fmt"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

func videoPrompt(recipe culinarydb.Recipe, storyboard culinarydb.Storyboard) string {
	return fmt.Sprintf(`A cinematic, high-quality cooking video, vertical 9:16 aspect ratio, exactly 10 seconds long. Recipe: %q.

Video description: %s

Key elements:
- Show the main cooking steps in a fast-paced, engaging way
- On-screen text: %q
- Vertical format optimized for mobile viewing
- Minimalist, clean kitchen setting
- Smooth transitions between steps
- Close-up shots of ingredients and cooking actions
- Visual appeal and professional quality

Make it engaging and TikTok-style, showing the essence of the recipe in 10 seconds.`,
		recipe.Title, storyboard.VideoDescription, storyboard.Caption)
}
