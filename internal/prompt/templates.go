package prompt

import (
	"fmt"
	"strings"

	"creature-server/internal/models"
)

// FallbackStory is the minimal story returned when everything else failed.
const FallbackStory = "Once upon a time, there was a magical creature. The creature had many adventures in a magical land. The end."

// TemplateStory returns a hand-written story for the creature, selected by
// habitat. It never fails and needs no external provider.
func TemplateStory(details models.CreatureDetails) string {
	d := ApplyStoryDefaults(details)

	switch strings.ToLower(d.Habitat) {
	case "candy forest":
		return fmt.Sprintf(`In the sugary depths of the Candy Forest lived %[1]s, a %[2]s creature with extraordinary %[3]s that sparkled like sugar crystals and %[4]s made of twisted licorice. %[1]s's %[3]s could detect the ripest candy fruits, while their %[4]s helped them swing from one candy cane tree to another.

Every morning, %[1]s would use their magical ability to %[5]s, turning dewdrops into tiny rainbow sprinkles that covered the forest floor. The other candy forest creatures, gummy bears, chocolate bunnies, and marshmallow birds, would gather around to watch in awe as %[1]s performed this sweet transformation.

One stormy day, when sugar rain threatened to melt the chocolate river banks, %[1]s discovered their %[3]s could channel their %[5]s in a new way. With a spectacular display of magic, they created a protective candy shell over the vulnerable chocolate shores. The Candy King was so impressed by %[1]s's quick thinking that he awarded them a special position as the Forest's official Sweetness Guardian.`,
			d.Name, d.Color, d.BodyPart1, d.BodyPart2, d.Ability)

	case "cloud castle":
		return fmt.Sprintf(`High above the world, where clouds form towers and palaces, %[1]s made their home in the magnificent Cloud Castle. With %[3]s as light as mist and %[4]s that could shape the very clouds themselves, this %[2]s creature was the castle's most beloved resident. %[1]s's %[2]s hue would shift with the sunrise and sunset, painting the cloud walls with beautiful colors.

%[1]s's most treasured talent was their ability to %[5]s. Each time they used this power, the cloud castle would shimmer and dance, creating spectacular sky shows that could be seen from the ground below. The sky fairies who shared the castle would often request special performances during their celestial celebrations.

During the great Sky Drought, when clouds became scarce and the castle began to fade, %[1]s journeyed to the distant Mountain of Storms. Using their %[3]s to navigate treacherous air currents and their %[4]s to collect storm essence, they returned just in time. With a magnificent display of their %[5]s, %[1]s restored the Cloud Castle to its full glory, saving their home and earning the title of Cloud Savior.`,
			d.Name, d.Color, d.BodyPart1, d.BodyPart2, d.Ability)

	case "underwater cave":
		return fmt.Sprintf(`Deep in the mysterious Underwater Cave, where bioluminescent algae cast an ethereal glow on crystal formations, lived %[1]s. This remarkable %[2]s creature had %[3]s that could sense changes in water pressure and %[4]s perfectly adapted for navigating the narrowest cave passages. %[1]s's %[2]s skin would absorb the cave's light during the day and glow softly at night, creating beautiful patterns on the cave walls.

%[1]s possessed the extraordinary ability to %[5]s, which they used to communicate with the ancient cave spirits. The cave dwellers, crystal crabs, pearl oysters, and current fish, would gather in the central cavern to hear the messages %[1]s would share, full of wisdom from times long past.

When earthquake tremors threatened to collapse the cave system, %[1]s used their %[3]s to detect which passages were most at risk. Combining their knowledge with their magical %[5]s, they reinforced the weakened areas by creating new crystal formations that strengthened the cave structure. The grateful cave creatures celebrated %[1]s with a festival of lights, declaring them the official Guardian of the Deep.`,
			d.Name, d.Color, d.BodyPart1, d.BodyPart2, d.Ability)

	default:
		return fmt.Sprintf(`In the heart of the %[6]s, where magic flows like gentle streams, lived a creature unlike any other. %[1]s, with their brilliant %[2]s appearance, stood out among all the inhabitants. Their magnificent %[3]s could sense changes in the magical atmosphere, while their remarkable %[4]s gave them abilities that others could only dream of. The way %[1]s's %[3]s caught the light made other creatures stop and stare in wonder.

What truly made %[1]s special was their extraordinary ability to %[5]s. They didn't use this power carelessly, only when it could bring joy or help others. The other inhabitants of the %[6]s would often seek out %[1]s when they needed this special magic, knowing that %[1]s would never refuse someone in need.

The %[6]s faced its greatest challenge when a mysterious darkness began spreading, dimming all light and magic. While others fled, %[1]s discovered that their %[4]s could absorb the darkness, while their %[5]s could transform it into pure light. For three days and nights, %[1]s worked tirelessly, using their %[3]s to locate pockets of darkness and their magic to cleanse them. When the %[6]s was finally restored to its full splendor, the grateful inhabitants honored %[1]s by naming the brightest spot in the %[6]s after their brave savior.`,
			d.Name, d.Color, d.BodyPart1, d.BodyPart2, d.Ability, d.Habitat)
	}
}

// DefaultSuggestions is the vocabulary pair used when the provider returns
// nothing usable.
func DefaultSuggestions() models.SuggestionResult {
	return models.SuggestionResult{
		BodyParts: []string{
			"Wings", "Tail", "Horn", "Tentacles", "Fins", "Claws",
			"Snail Shell", "Antlers", "Trunk", "Spikes", "Fluffy Fur", "Scales",
		},
		Habitats: []string{
			"Candy Forest", "Cloud Castle", "Underwater Cave", "Crystal Mountain",
			"Rainbow Waterfall", "Floating Island", "Glowing Mushroom Forest",
			"Bubble Kingdom", "Ice Palace", "Star Meadow",
		},
	}
}

// ExtendedDefaultSuggestions is the larger fallback set used on the
// request-error path. Functionally equivalent to DefaultSuggestions.
func ExtendedDefaultSuggestions() models.SuggestionResult {
	return models.SuggestionResult{
		BodyParts: []string{
			"Wings", "Tail", "Horn", "Tentacles", "Fins", "Claws",
			"Snail Shell", "Antlers", "Trunk", "Spikes", "Fluffy Fur", "Scales",
			"Crystal Spines", "Glowing Spots", "Feathered Crest", "Floating Orbs",
		},
		Habitats: []string{
			"Candy Forest", "Cloud Castle", "Underwater Cave", "Crystal Mountain",
			"Rainbow Waterfall", "Floating Island", "Glowing Mushroom Forest",
			"Bubble Kingdom", "Ice Palace", "Star Meadow",
			"Lava Springs", "Moonlight Garden", "Whispering Canyon", "Nebula Shores",
			"Enchanted Library", "Dream Meadow",
		},
	}
}
