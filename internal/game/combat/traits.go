package combat

// Mutation traits read by the melee engine.
const (
	TraitDrunken      = "DRUNKEN"
	TraitHyperopic    = "HYPEROPIC"
	TraitDeft         = "DEFT"
	TraitLightBones   = "LIGHT_BONES"
	TraitHollowBones  = "HOLLOW_BONES"
	TraitTailLong     = "TAIL_LONG"
	TraitTailFluffy   = "TAIL_FLUFFY"
	TraitWhiskers     = "WHISKERS"
	TraitWingsBat     = "WINGS_BAT"
	TraitClaws        = "CLAWS"
	TraitTalons       = "TALONS"
	TraitSlimeHands   = "SLIME_HANDS"
	TraitNails        = "NAILS"
	TraitThorns       = "THORNS"
	TraitFangs        = "FANGS"
	TraitMandibles    = "MANDIBLES"
	TraitBeak         = "BEAK"
	TraitHooves       = "HOOVES"
	TraitHorns        = "HORNS"
	TraitHornsCurled  = "HORNS_CURLED"
	TraitHornsPointed = "HORNS_POINTED"
	TraitAntlers      = "ANTLERS"
	TraitTailSting    = "TAIL_STING"
	TraitTailClub     = "TAIL_CLUB"
	TraitTentacles    = "ARM_TENTACLES"
	TraitTentacles4   = "ARM_TENTACLES_4"
	TraitTentacles8   = "ARM_TENTACLES_8"
	TraitPoisonous    = "POISONOUS"
)

// Monster flags read by the melee engine.
const (
	FlagPlastic   = "PLASTIC"
	FlagFlies     = "FLIES"
	FlagElectric  = "ELECTRIC"
	FlagWarm      = "WARM"
	FlagAcidProof = "ACIDPROOF"
)

// Bionics with melee side effects.
const (
	BionicShock      = "bio_shock"
	BionicHeatAbsorb = "bio_heat_absorb"
)

// Worn items that cancel farsightedness.
var readingGlasses = []string{"glasses_reading", "glasses_bifocal"}
