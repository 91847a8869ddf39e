package optimizer

import (
	"math"
	"sort"
	"strings"

	"github.com/Shiki0138/sms-sub001/models"
)

// ServiceAffinityScorer maps a free-text service description to a suitability
// bonus. The keyword matcher below is a deliberately simple placeholder
// strategy; a structured menu-to-skill mapping can replace it without
// touching the optimizer's orchestration.
type ServiceAffinityScorer interface {
	Score(serviceDescription string) float64
}

// KeywordAffinityScorer scores by substring checks against known menu terms.
// The checks are independent and stack: a "カット＋カラー" request earns both
// bonuses.
type KeywordAffinityScorer struct {
	Weights ScoringWeights
}

var (
	cutKeywords   = []string{"カット", "cut"}
	colorKeywords = []string{"カラー", "color", "colour"}
	permKeywords  = []string{"パーマ", "perm"}
)

func (s *KeywordAffinityScorer) Score(serviceDescription string) float64 {
	desc := strings.ToLower(serviceDescription)

	var bonus float64
	if containsAny(desc, cutKeywords) {
		bonus += s.Weights.CutBonus
	}
	if containsAny(desc, colorKeywords) {
		bonus += s.Weights.ColorBonus
	}
	if containsAny(desc, permKeywords) {
		bonus += s.Weights.PermBonus
	}
	return bonus
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// rankedStaff holds a staff member with the computed suitability score.
type rankedStaff struct {
	Staff       models.StaffMember
	Suitability float64
}

// staffSuitability scores how well a staff member matches the request,
// independent of time. Additive with a hard 1.0 cap, never renormalized.
func (svc *DefaultOptimizerService) staffSuitability(staff models.StaffMember, req models.BookingRequest) float64 {
	score := svc.Weights.BaseSuitability
	score += svc.Affinity.Score(req.ServiceDescription)
	if req.CustomerPriority == models.PriorityVIP {
		score += svc.Weights.VIPBonus
	}
	return math.Min(score, 1.0)
}

// rankStaff sorts staff descending by suitability and keeps only the top
// fan-out to bound the slot search space.
func (svc *DefaultOptimizerService) rankStaff(staff []models.StaffMember, req models.BookingRequest) []rankedStaff {
	ranked := make([]rankedStaff, 0, len(staff))
	for _, s := range staff {
		ranked = append(ranked, rankedStaff{
			Staff:       s,
			Suitability: svc.staffSuitability(s, req),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Suitability > ranked[j].Suitability
	})
	if len(ranked) > svc.Weights.StaffFanOut {
		ranked = ranked[:svc.Weights.StaffFanOut]
	}
	return ranked
}
