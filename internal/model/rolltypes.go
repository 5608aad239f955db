package model

// RollTypeInfo describes a roll type the log analyser knows how to classify.
type RollTypeInfo struct {
	Code        string
	Description string
}

// RollTypeOther is the bucket the analyser uses for unclassified rolls.
const RollTypeOther = "Other"

// RollTypeSniper is the Sniper Activation roll type.
const RollTypeSniper = "SA"

// KnownRollTypes lists the analyser's roll types in display order. Any other
// roll type string is passed through as-is.
var KnownRollTypes = []RollTypeInfo{
	{"IFT", "IFT"},
	{"MC", "Morale Check"},
	{"Rally", "Rally"},
	{"TH", "To Hit"},
	{"TK", "To Kill"},
	{"CC", "Close Combat"},
	{"SA", "Sniper Activation"},
	{"TC", "Task Check"},
	{"RS", "Random Selection"},
	{RollTypeOther, "Other"},
}

// RollTypeDescription returns the description of a known roll type.
func RollTypeDescription(code string) (string, bool) {
	for _, rt := range KnownRollTypes {
		if rt.Code == code {
			return rt.Description, true
		}
	}
	return "", false
}

// OrderRollTypes returns the known roll types followed by any extra types not
// already listed, in the order given.
func OrderRollTypes(extra []string) []string {
	out := make([]string, 0, len(KnownRollTypes)+len(extra))
	seen := make(map[string]bool)
	for _, rt := range KnownRollTypes {
		out = append(out, rt.Code)
		seen[rt.Code] = true
	}
	for _, rt := range extra {
		if !seen[rt] {
			out = append(out, rt)
			seen[rt] = true
		}
	}
	return out
}
