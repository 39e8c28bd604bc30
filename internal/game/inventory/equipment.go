package inventory

// BodyPart identifies a region armor can cover and a hit can land on.
type BodyPart string

const (
	PartHead  BodyPart = "head"
	PartEyes  BodyPart = "eyes"
	PartMouth BodyPart = "mouth"
	PartTorso BodyPart = "torso"
	PartArms  BodyPart = "arms"
	PartHands BodyPart = "hands"
	PartLegs  BodyPart = "legs"
	PartFeet  BodyPart = "feet"
)

// validBodyParts is the set of all legal BodyPart values.
var validBodyParts = map[BodyPart]struct{}{
	PartHead:  {},
	PartEyes:  {},
	PartMouth: {},
	PartTorso: {},
	PartArms:  {},
	PartHands: {},
	PartLegs:  {},
	PartFeet:  {},
}

// partDisplayNames maps every body part to its human-readable label.
var partDisplayNames = map[BodyPart]string{
	PartHead:  "head",
	PartEyes:  "eyes",
	PartMouth: "mouth",
	PartTorso: "torso",
	PartArms:  "arm",
	PartHands: "hand",
	PartLegs:  "leg",
	PartFeet:  "foot",
}

// ValidBodyParts returns the set of all legal BodyPart values.
func ValidBodyParts() map[BodyPart]struct{} { return validBodyParts }

// DisplayName returns the label used in combat text, or the raw value if unknown.
func (p BodyPart) DisplayName() string {
	if label, ok := partDisplayNames[p]; ok {
		return label
	}
	return string(p)
}

// Worn is the ordered stack of armor a combatant is wearing, innermost first.
type Worn []*ArmorDef

// Covers reports whether any worn piece covers part.
func (w Worn) Covers(part BodyPart) bool {
	for _, a := range w {
		if a != nil && a.Covers(part) {
			return true
		}
	}
	return false
}

// Encumbrance returns the summed encumbrance of every piece covering part.
//
// Postcondition: Returns >= 0.
func (w Worn) Encumbrance(part BodyPart) int {
	total := 0
	for _, a := range w {
		if a != nil && a.Covers(part) {
			total += a.Encumbrance
		}
	}
	return total
}

// Protection returns the summed bash and cut protection over part.
func (w Worn) Protection(part BodyPart) (bash, cut int) {
	for _, a := range w {
		if a != nil && a.Covers(part) {
			bash += a.Bash
			cut += a.Cut
		}
	}
	return bash, cut
}
