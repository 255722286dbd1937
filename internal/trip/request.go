// Package trip defines the validated travel request an itinerary is generated
// from. Requests are only built through New, so every Request in circulation
// has already passed validation.
package trip

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Yates-Labs/roam/internal/language"
)

const (
	MinDays = 1
	MaxDays = 7
)

// Budget is the spending tier of a trip.
type Budget string

const (
	BudgetLow    Budget = "Budget"
	BudgetMid    Budget = "Mid-range"
	BudgetLuxury Budget = "Luxury"
)

// Activity is a kind of activity the traveller prefers.
type Activity string

const (
	ActivityAdventure   Activity = "Adventure"
	ActivityRelaxation  Activity = "Relaxation"
	ActivityCultural    Activity = "Cultural"
	ActivitySightseeing Activity = "Sightseeing"
	ActivityFoodTour    Activity = "Food Tour"
)

// Companion describes who the traveller is going with.
type Companion string

const (
	CompanionSolo    Companion = "Solo"
	CompanionCouple  Companion = "Couple"
	CompanionFamily  Companion = "Family"
	CompanionFriends Companion = "Friends"
)

// Budgets, Activities and Companions list the accepted values in display order.
var (
	Budgets    = []Budget{BudgetLow, BudgetMid, BudgetLuxury}
	Activities = []Activity{ActivityAdventure, ActivityRelaxation, ActivityCultural, ActivitySightseeing, ActivityFoodTour}
	Companions = []Companion{CompanionSolo, CompanionCouple, CompanionFamily, CompanionFriends}
)

// Input is the raw, unvalidated shape of a request as supplied by a form,
// CLI flags or a JSON body.
type Input struct {
	Destination string   `json:"destination"`
	Days        int      `json:"days"`
	Month       string   `json:"month"`
	Budget      string   `json:"budget"`
	Activities  []string `json:"activities"`
	Companion   string   `json:"companion"`
	Language    string   `json:"language"`
}

// Request is a validated trip description. It is a value type; callers
// receive copies and never share the Activities backing array with the Input.
type Request struct {
	Destination string            `json:"destination" validate:"required"`
	Days        int               `json:"days" validate:"min=1,max=7"`
	Month       time.Month        `json:"month" validate:"min=1,max=12"`
	Budget      Budget            `json:"budget" validate:"oneof=Budget Mid-range Luxury"`
	Activities  []Activity        `json:"activities" validate:"dive,oneof=Adventure Relaxation Cultural Sightseeing 'Food Tour'"`
	Companion   Companion         `json:"companion" validate:"oneof=Solo Couple Family Friends"`
	Language    language.Language `json:"-" validate:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// New normalises and validates in. It returns a *ValidationError wrapping
// ErrInvalidInput for the first offending field.
func New(in Input) (Request, error) {
	month, ok := ParseMonth(in.Month)
	if !ok {
		return Request{}, &ValidationError{Field: "month", Msg: "must be a calendar month name"}
	}

	lang := language.Default
	if strings.TrimSpace(in.Language) != "" {
		l, ok := language.Lookup(in.Language)
		if !ok {
			return Request{}, &ValidationError{
				Field: "language",
				Msg:   "must be one of: " + strings.Join(language.Names(), ", "),
			}
		}
		lang = l
	}

	req := Request{
		Destination: strings.TrimSpace(in.Destination),
		Days:        in.Days,
		Month:       month,
		Budget:      Budget(canonical(in.Budget, budgetNames)),
		Activities:  normalizeActivities(in.Activities),
		Companion:   Companion(canonical(in.Companion, companionNames)),
		Language:    lang,
	}

	if err := validate.Struct(req); err != nil {
		return Request{}, fromValidator(err)
	}
	return req, nil
}

// ActivityList joins the selected activities with commas, or returns "any"
// when none were selected.
func (r Request) ActivityList() string {
	if len(r.Activities) == 0 {
		return "any"
	}
	parts := make([]string, len(r.Activities))
	for i, a := range r.Activities {
		parts[i] = string(a)
	}
	return strings.Join(parts, ", ")
}

// ParseMonth accepts full month names and three-letter abbreviations in any case.
func ParseMonth(s string) (time.Month, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return m, true
		}
	}
	return 0, false
}

var (
	budgetNames    = stringsOf(Budgets)
	companionNames = stringsOf(Companions)
	activityNames  = stringsOf(Activities)
)

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// canonical maps a case-insensitive match onto its canonical spelling and
// leaves unknown values untouched so validation can report them.
func canonical(s string, allowed []string) string {
	s = strings.TrimSpace(s)
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return a
		}
	}
	return s
}

func normalizeActivities(in []string) []Activity {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]Activity, 0, len(in))
	for _, raw := range in {
		a := canonical(raw, activityNames)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, Activity(a))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
