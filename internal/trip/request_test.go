package trip

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		Destination: "Kyoto",
		Days:        3,
		Month:       "April",
		Budget:      "Mid-range",
		Activities:  []string{"Cultural", "Food Tour"},
		Companion:   "Couple",
		Language:    "English",
	}
}

func TestNew_Valid(t *testing.T) {
	req, err := New(validInput())
	require.NoError(t, err)

	assert.Equal(t, "Kyoto", req.Destination)
	assert.Equal(t, time.April, req.Month)
	assert.Equal(t, BudgetMid, req.Budget)
	assert.Equal(t, []Activity{ActivityCultural, ActivityFoodTour}, req.Activities)
	assert.Equal(t, "English", req.Language.Name)
}

func TestNew_Normalizes(t *testing.T) {
	in := Input{
		Destination: "  Lisbon \t",
		Days:        2,
		Month:       "sep",
		Budget:      "luxury",
		Activities:  []string{"food tour", "Food Tour", " adventure "},
		Companion:   "friends",
	}

	req, err := New(in)
	require.NoError(t, err)

	assert.Equal(t, "Lisbon", req.Destination)
	assert.Equal(t, time.September, req.Month)
	assert.Equal(t, BudgetLuxury, req.Budget)
	assert.Equal(t, CompanionFriends, req.Companion)
	assert.Equal(t, []Activity{ActivityFoodTour, ActivityAdventure}, req.Activities, "duplicates collapsed, order kept")
	assert.Equal(t, "English", req.Language.Name, "default language")
}

func TestNew_CopiesActivities(t *testing.T) {
	in := validInput()
	req, err := New(in)
	require.NoError(t, err)

	in.Activities[0] = "Adventure"
	assert.Equal(t, ActivityCultural, req.Activities[0], "request shares activities with its input")
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"empty destination", func(in *Input) { in.Destination = "" }, "destination"},
		{"blank destination", func(in *Input) { in.Destination = "   \t" }, "destination"},
		{"zero days", func(in *Input) { in.Days = 0 }, "days"},
		{"too many days", func(in *Input) { in.Days = 8 }, "days"},
		{"unknown month", func(in *Input) { in.Month = "Smarch" }, "month"},
		{"missing month", func(in *Input) { in.Month = "" }, "month"},
		{"unknown budget", func(in *Input) { in.Budget = "Shoestring" }, "budget"},
		{"unknown activity", func(in *Input) { in.Activities = []string{"Cultural", "Skydiving"} }, "activities"},
		{"unknown companion", func(in *Input) { in.Companion = "Pets" }, "companion"},
		{"unknown language", func(in *Input) { in.Language = "Klingon" }, "language"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := New(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.True(t, IsValidation(err))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, tt.field, verr.Field, err.Error())
		})
	}
}

func TestActivityList(t *testing.T) {
	req, err := New(validInput())
	require.NoError(t, err)
	assert.Equal(t, "Cultural, Food Tour", req.ActivityList())

	in := validInput()
	in.Activities = nil
	req, err = New(in)
	require.NoError(t, err)
	assert.Equal(t, "any", req.ActivityList())
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input string
		want  time.Month
		ok    bool
	}{
		{"January", time.January, true},
		{"december", time.December, true},
		{"APR", time.April, true},
		{" may ", time.May, true},
		{"Ju", 0, false},
		{"", 0, false},
		{"13", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseMonth(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
