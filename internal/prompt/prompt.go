// Package prompt builds the bounded text prompts sent to the image
// generation API and carries the offline fallback content (template stories,
// default suggestion lists).
package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"creature-server/internal/models"
)

// Character budgets for image prompts. The provider rejects prompts longer
// than 500 characters.
const (
	TotalBudget   = 500
	creatureLimit = 150
	sceneLimit    = 150
	styleLimit    = 100
	habitatLimit  = 100

	// Minimum room left before a truncated component is still worth adding.
	minTruncatedRoom = 20
)

const (
	creatureStyle = "Children's illustration style, whimsical, colorful, fantasy art, detailed, digital painting, magical atmosphere, kid-friendly"
	sceneStyle    = "Children's illustration style, whimsical, colorful, fantasy art, magical atmosphere"

	// FallbackImagePrompt is used when no portrait prompt can be built.
	FallbackImagePrompt = "A magical creature, children's illustration style"
	// FallbackScenePrompt is used when the story yields no scene text.
	FallbackScenePrompt = "A magical scene from a children's story, whimsical, colorful, fantasy art"
)

// ApplyImageDefaults substitutes the portrait-prompt defaults for any empty
// trait field.
func ApplyImageDefaults(d models.CreatureDetails) models.CreatureDetails {
	return models.CreatureDetails{
		Name:      orDefault(d.Name, "Magical Creature"),
		Color:     orDefault(d.Color, "colorful"),
		BodyPart1: orDefault(d.BodyPart1, "magical features"),
		BodyPart2: orDefault(d.BodyPart2, "special features"),
		Ability:   orDefault(d.Ability, "do magic"),
		Habitat:   orDefault(d.Habitat, "magical land"),
	}
}

// ApplyStoryDefaults substitutes the story-generation defaults for any empty
// trait field.
func ApplyStoryDefaults(d models.CreatureDetails) models.CreatureDetails {
	return models.CreatureDetails{
		Name:      orDefault(d.Name, "Unnamed"),
		Color:     orDefault(d.Color, "colorful"),
		BodyPart1: orDefault(d.BodyPart1, "magical feature"),
		BodyPart2: orDefault(d.BodyPart2, "special feature"),
		Ability:   orDefault(d.Ability, "magic"),
		Habitat:   orDefault(d.Habitat, "magical land"),
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// BuildImagePrompt builds the creature-portrait prompt from trait data.
// The result never exceeds TotalBudget characters; when trimming is needed
// the style clause is dropped or truncated before the creature description.
func BuildImagePrompt(details models.CreatureDetails) string {
	d := ApplyImageDefaults(details)

	creature := fmt.Sprintf("A cute, magical %s creature named %s with %s and %s, who can %s",
		d.Color, d.Name, d.BodyPart1, d.BodyPart2, d.Ability)
	habitat := fmt.Sprintf("in a %s setting", d.Habitat)

	return assemble([]string{creature, habitat, creatureStyle})
}

// BuildScenePrompt builds the story-illustration prompt from the generated
// story and the trait data. The scene sentence carries the highest priority,
// then the creature description, habitat, and style.
func BuildScenePrompt(story string, details models.CreatureDetails) string {
	d := ApplyImageDefaults(details)

	paragraphs := splitParagraphs(story)
	if len(paragraphs) == 0 {
		return truncate(FallbackScenePrompt, TotalBudget)
	}

	// The second paragraph usually holds the most visual action; fall back
	// to the last one for short stories.
	sceneText := paragraphs[len(paragraphs)-1]
	if len(paragraphs) > 1 {
		sceneText = paragraphs[1]
	}

	creature := truncate(fmt.Sprintf("%s, a %s creature with %s and %s, who can %s",
		d.Name, d.Color, d.BodyPart1, d.BodyPart2, d.Ability), creatureLimit)
	sceneContext := ExtractKeySentences(sceneText, sceneLimit)
	style := truncate(sceneStyle, styleLimit)
	habitat := truncate(fmt.Sprintf("in a %s setting", d.Habitat), habitatLimit)

	return assemble([]string{
		"A magical scene: " + sceneContext,
		"The scene features " + creature,
		habitat,
		style,
	})
}

// assemble concatenates components in priority order against the total
// budget: a component that fits is appended whole (plus one separator);
// otherwise, if more than minTruncatedRoom characters remain, a truncated
// prefix is appended and assembly stops.
func assemble(components []string) string {
	var b strings.Builder
	remaining := TotalBudget

	for _, component := range components {
		length := utf8.RuneCountInString(component)
		switch {
		case length+1 <= remaining:
			if b.Len() > 0 {
				b.WriteString(" ")
			}
			b.WriteString(component)
			remaining -= length + 1
		case remaining > minTruncatedRoom:
			if b.Len() > 0 {
				b.WriteString(" ")
			}
			b.WriteString(truncate(component, remaining-1))
			return truncate(b.String(), TotalBudget)
		default:
			return truncate(b.String(), TotalBudget)
		}
	}

	return truncate(b.String(), TotalBudget)
}

// ExtractKeySentences picks the most descriptive sentence of a paragraph,
// bounded to maxLength characters. With several sentences the longest one
// that fits wins (ties broken by original order); a lone over-long sentence
// is cut to an exact maxLength prefix.
func ExtractKeySentences(text string, maxLength int) string {
	var sentences []string
	for _, part := range strings.Split(text, ".") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			sentences = append(sentences, trimmed+".")
		}
	}

	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) == 1 {
		return truncate(sentences[0], maxLength)
	}

	longest := sentences[0]
	for _, s := range sentences[1:] {
		if utf8.RuneCountInString(s) > utf8.RuneCountInString(longest) {
			longest = s
		}
	}
	if utf8.RuneCountInString(longest) <= maxLength {
		return longest
	}

	return truncate(sentences[0], maxLength)
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
