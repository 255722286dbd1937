package itinerary

import (
	"fmt"
	"strings"

	"github.com/Yates-Labs/roam/internal/trip"
)

// SystemPrompt sets the model up as a travel planner.
const SystemPrompt = "You are an expert travel planner. Create engaging, well-structured, day-wise itineraries."

// BuildPrompt assembles the user-level instruction for req. It is pure and
// deterministic: the same request always yields the same prompt.
func BuildPrompt(req trip.Request) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Create a detailed %d-day travel itinerary for %s in %s.\n\n",
		req.Days, req.Destination, req.Month))

	b.WriteString("# Trip Details\n\n")
	b.WriteString(fmt.Sprintf("Destination: %s\n", req.Destination))
	b.WriteString(fmt.Sprintf("Trip length: %d days\n", req.Days))
	b.WriteString(fmt.Sprintf("Month: %s\n", req.Month))
	b.WriteString(fmt.Sprintf("Budget level: %s\n", req.Budget))
	b.WriteString(fmt.Sprintf("Preferred activities: %s\n", req.ActivityList()))
	b.WriteString(fmt.Sprintf("Traveling with: %s\n", req.Companion))
	b.WriteString(fmt.Sprintf("Language: %s\n\n", req.Language.Name))

	b.WriteString("# Task\n\n")
	b.WriteString("Plan each day with:\n")
	b.WriteString("1. Morning, afternoon, and evening plans\n")
	b.WriteString("2. Food suggestions for every part of the day\n")
	b.WriteString("3. Specific timings for each activity\n\n")
	b.WriteString("Mix popular landmarks with offbeat places locals enjoy. ")
	b.WriteString("Avoid showing prices. ")
	b.WriteString(fmt.Sprintf("Write the entire itinerary in %s.\n", req.Language.Name))

	return b.String()
}
