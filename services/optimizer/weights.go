package optimizer

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Shiki0138/sms-sub001/utils"
)

// ScoringWeights collects every heuristic coefficient used by the engine so
// they can be tuned and tested independently of the scoring control flow.
type ScoringWeights struct {
	// Staff suitability.
	BaseSuitability float64 `mapstructure:"baseSuitability"`
	CutBonus        float64 `mapstructure:"cutBonus"`
	ColorBonus      float64 `mapstructure:"colorBonus"`
	PermBonus       float64 `mapstructure:"permBonus"`
	VIPBonus        float64 `mapstructure:"vipBonus"`

	// Slot confidence.
	PreferredWindowBonus float64 `mapstructure:"preferredWindowBonus"`
	BufferBonus          float64 `mapstructure:"bufferBonus"`
	MinBufferMinutes     int     `mapstructure:"minBufferMinutes"`
	EndOfDayPenalty      float64 `mapstructure:"endOfDayPenalty"`
	LongServiceMinutes   int     `mapstructure:"longServiceMinutes"`
	MinConfidence        float64 `mapstructure:"minConfidence"`

	// Search bounds.
	StaffFanOut    int `mapstructure:"staffFanOut"`
	MaxSuggestions int `mapstructure:"maxSuggestions"`

	// No-show model.
	NoShowBase          float64 `mapstructure:"noShowBase"`
	NoShowCap           float64 `mapstructure:"noShowCap"`
	NewCustomerBaseline float64 `mapstructure:"newCustomerBaseline"`
	HistoryRateWeight   float64 `mapstructure:"historyRateWeight"`
	HistoryRateCap      float64 `mapstructure:"historyRateCap"`
	CancelCountWeight   float64 `mapstructure:"cancelCountWeight"`
	CancelCountCap      float64 `mapstructure:"cancelCountCap"`
	WeekdayRateFloor    float64 `mapstructure:"weekdayRateFloor"`
	WeekdayRateWeight   float64 `mapstructure:"weekdayRateWeight"`
	AbsenceDayWeight    float64 `mapstructure:"absenceDayWeight"`
	AbsenceCap          float64 `mapstructure:"absenceCap"`
	AbsenceFloorDays    int     `mapstructure:"absenceFloorDays"`
	WeekendDiscount     float64 `mapstructure:"weekendDiscount"`

	// Demand forecast.
	TrendPerMonth   float64 `mapstructure:"trendPerMonth"`
	WeekendDemand   float64 `mapstructure:"weekendDemand"`
	FullConfidenceN int     `mapstructure:"fullConfidenceN"`
}

// DefaultScoringWeights returns the production weight table.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		BaseSuitability: 0.5,
		CutBonus:        0.3,
		ColorBonus:      0.2,
		PermBonus:       0.1,
		VIPBonus:        0.2,

		PreferredWindowBonus: 0.2,
		BufferBonus:          0.1,
		MinBufferMinutes:     15,
		EndOfDayPenalty:      0.2,
		LongServiceMinutes:   120,
		MinConfidence:        0.3,

		StaffFanOut:    3,
		MaxSuggestions: 10,

		NoShowBase:          0.1,
		NoShowCap:           0.9,
		NewCustomerBaseline: 0.3,
		HistoryRateWeight:   0.8,
		HistoryRateCap:      0.5,
		CancelCountWeight:   0.05,
		CancelCountCap:      0.2,
		WeekdayRateFloor:    0.2,
		WeekdayRateWeight:   0.3,
		AbsenceDayWeight:    0.001,
		AbsenceCap:          0.2,
		AbsenceFloorDays:    90,
		WeekendDiscount:     0.05,

		TrendPerMonth:   0.02,
		WeekendDemand:   1.2,
		FullConfidenceN: 20,
	}
}

// LoadScoringWeights overlays any "optimizerWeights" overrides from the
// loaded configuration onto the default table. Keys that are absent keep
// their default values, so a config file can tune a single coefficient.
func LoadScoringWeights() ScoringWeights {
	w := DefaultScoringWeights()
	if !viper.IsSet("optimizerWeights") {
		return w
	}
	if err := viper.UnmarshalKey("optimizerWeights", &w); err != nil {
		utils.GetLogger().Warn("invalid optimizerWeights config, using defaults", zap.Error(err))
		return DefaultScoringWeights()
	}
	return w
}

// Business hours and slot granularity. Slots are generated at fixed 30-minute
// boundaries between opening and closing.
const (
	businessOpenHour    = 9
	businessCloseHour   = 18
	slotIntervalMinutes = 30
	workingHoursPerDay  = businessCloseHour - businessOpenHour
	slotsPerHour        = 60 / slotIntervalMinutes
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
