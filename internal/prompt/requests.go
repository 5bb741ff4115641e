package prompt

import (
	"fmt"

	"creature-server/internal/models"
)

// System prompts sent with each chat completion request.
const (
	StorySystemPrompt = "You are an extraordinarily creative storyteller for children. You create magical, whimsical stories that are highly imaginative, unexpected, and tailored specifically to the details provided. You never follow formulaic patterns and always incorporate the provided elements in meaningful, central ways."

	SuggestionSystemPrompt = "You are a wildly creative assistant specializing in generating unique, diverse, and unexpected content for a magical creature generator. Your suggestions should be imaginative, varied, and avoid conventional patterns. Each suggestion should feel distinct from the others, drawing from different themes, elements, and concepts. Prioritize originality and surprise over familiar fantasy tropes."
)

// SuggestionRequest asks for the two vocabulary lists as a JSON object with
// bodyParts and habitats arrays.
const SuggestionRequest = `You're a wildly imaginative assistant helping to build a magical creature creator for children ages 5 to 10. The creatures will be brought to life with generative AI illustrations, so the ideas must spark wonder, vivid visuals, and delight. Please provide:

1. A list of 16 unique, imaginative, and varied body parts that magical creatures might have.
   - Include a mix of physical features (like wings, tails, etc.)
   - Include unusual or magical features (like "time-shifting gears" or "dream-catching antennae")
   - Include features inspired by different elements (water, fire, air, earth, dreams, stars, etc.)
   - Avoid repeating similar concepts (don't just list different types of the same feature)

2. A list of 16 whimsical and fantastical habitats where magical creatures might live.
   - Include diverse environments (sky, underground, underwater, space-related, etc.)
   - Include habitats with unusual physical properties (like "upside-down mountains" or "bubble cities")
   - Include habitats related to emotions, dreams, or abstract concepts
   - Make each habitat distinct and evocative with rich imagery potential

Format your response as a JSON object with two arrays: bodyParts and habitats. Each item should be a single word or short phrase, capitalized, and suitable for children ages 5-10. Focus on variety, uniqueness, and whimsy - avoid conventional or repetitive options.`

// StoryRequest builds the user prompt for story generation from the
// (already defaulted) creature details.
func StoryRequest(d models.CreatureDetails) string {
	return fmt.Sprintf(`Write a unique, imaginative story for children ages 5-10 about a magical creature with these traits:

NAME: %[1]q - Use this name throughout and give the creature a personality that shines through its actions and matches the names vibe.

COLOR: %[2]q - Show this color in a vivid, unusual way (e.g., it sparkles under moonlight, shifts with emotions, or leaves a trail). Make it central to the creatures presence.

BODY PARTS: %[3]q and %[4]q - Describe these parts with flair, showing how they look and function in surprising, essential ways. Make them key to the creatures identity and story.

MAGICAL ABILITY: %[5]q - Weave this power into the story creatively, using it in unexpected ways to solve problems or spark events.

HABITAT: %[6]q - Paint a lively, sensory-rich environment with one striking sound and one unique smell. Show how the creature shapes or is shaped by its home.

GUIDELINES:
1. Craft a playful, wondrous tone that captivates kids, with a clear arc: introduce the creature, show it facing a quirky challenge, and resolve with a surprising outcome.
2. Connect traits thematically, letting one trait solve a problem tied to another for a cohesive story.
3. Avoid cliches like "saving a lost friend" or "typical fantasy forests" unless reimagined boldly. Draw from obscure inspirations or blend unexpected genres.
4. Include one surprising element, like a quirky side character, bizarre environmental feature, or twist that flips a traits role.
5. Keep the story 2-3 paragraphs (200-300 words), using vivid, engaging language to spark imagination.

Ensure each story feels fresh by varying structure and dodging formulaic patterns. Make every trait integral, not just mentioned, for a tale that surprises and delights!`,
		d.Name, d.Color, d.BodyPart1, d.BodyPart2, d.Ability, d.Habitat)
}

// CoverRequest builds the image prompt for a storybook cover.
func CoverRequest(bookName string) string {
	p := fmt.Sprintf("A beautiful storybook cover for a children's book titled %q, ornate decorative border, magical creatures peeking around the edges, warm inviting colors. Children's illustration style, whimsical, fantasy art, magical atmosphere", bookName)
	return truncate(p, TotalBudget)
}
