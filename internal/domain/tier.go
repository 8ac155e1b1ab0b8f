package domain

// Tier is a coarse competitive band. Values are ordered by ascending skill.
type Tier int

const (
	TierUnranked Tier = iota
	TierIron
	TierBronze
	TierSilver
	TierGold
	TierPlatinum
	TierEmerald
	TierDiamond
	TierMaster
	TierGrandmaster
	TierChallenger
)

var tierNames = [...]string{
	TierUnranked:    "UNRANKED",
	TierIron:        "IRON",
	TierBronze:      "BRONZE",
	TierSilver:      "SILVER",
	TierGold:        "GOLD",
	TierPlatinum:    "PLATINUM",
	TierEmerald:     "EMERALD",
	TierDiamond:     "DIAMOND",
	TierMaster:      "MASTER",
	TierGrandmaster: "GRANDMASTER",
	TierChallenger:  "CHALLENGER",
}

func (t Tier) String() string {
	if !t.Valid() {
		return "UNKNOWN"
	}
	return tierNames[t]
}

func (t Tier) Valid() bool {
	return t >= TierUnranked && t <= TierChallenger
}

// HasDivisions reports whether the tier is split into divisions I-IV.
// Apex tiers and unranked players only compare by tier and points.
func (t Tier) HasDivisions() bool {
	return t >= TierIron && t <= TierDiamond
}

// Division is the position inside a tier. Lower ordinal means higher skill;
// DivisionNone is used for tiers without subdivisions.
type Division int

const (
	DivisionNone Division = iota
	DivisionI
	DivisionII
	DivisionIII
	DivisionIV
)

var divisionNames = [...]string{
	DivisionNone: "",
	DivisionI:    "I",
	DivisionII:   "II",
	DivisionIII:  "III",
	DivisionIV:   "IV",
}

func (d Division) String() string {
	if d < DivisionNone || d > DivisionIV {
		return ""
	}
	return divisionNames[d]
}
