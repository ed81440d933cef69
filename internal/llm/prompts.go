package llm

import (
	"fmt"
	"strings"

	"github.com/aretesun/hey-there/internal/domain"
)

const (
	maxSampledActivities = 20
	noActivities         = "특별한 활동 없음"
)

// BuildPlanPrompt asks for the plan piece by piece, each piece wrapped in
// its tag so it can be rendered before the whole answer has arrived.
func BuildPlanPrompt(req domain.TripRequest, language string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a detailed travel plan for a trip to %s.\n", req.City)
	fmt.Fprintf(&b, "The trip is from %s to %s (%d days).\n", req.StartDate, req.EndDate, req.Days())
	if len(req.Styles) > 0 {
		fmt.Fprintf(&b, "My preferred travel styles are: %s.\n", req.StylesText())
	}
	if req.Budget != "" {
		fmt.Fprintf(&b, "My budget is '%s'.\n", req.Budget)
	}

	fmt.Fprintf(&b, `
Generate the response in %[1]s, piece by piece, using the following structure.
First, provide the general information as a single JSON object wrapped in <general_info> tags. This JSON must not contain the itinerary.
The general info JSON object must contain: city, country, startDate, endDate, weather, exchangeRate (the 'rate' field must be a string calculated for 1000 KRW, e.g. '1000 KRW = 0.72 USD'), culturalTips, transportationInfo, priceInfo, cityLatitude and cityLongitude.

Then, for each day of the trip, provide a detailed daily plan as a separate JSON object, each wrapped in <daily_plan> tags.
Each daily plan JSON must contain: day, title and a list of activities.
For each activity, provide: time, description, icon and, if applicable, latitude, longitude and booking URLs (klookUrl, bookingUrl, tripAdvisorUrl). You MUST provide latitude and longitude for any specific physical location.

Finally, after all daily plans, provide a friendly confirmation message in %[1]s as a JSON object wrapped in <confirmation> tags.
The confirmation JSON object must contain one field: 'confirmationMessage'.

Example output structure:
<general_info>
{ "city": "...", "country": "...", ... }
</general_info>
<daily_plan>
{ "day": 1, "title": "...", "activities": [ ... ] }
</daily_plan>
<daily_plan>
{ "day": 2, "title": "...", "activities": [ ... ] }
</daily_plan>
<confirmation>
{ "confirmationMessage": "..." }
</confirmation>

Do not add any other text, explanations or markdown formatting outside of these tags. The content inside the tags must be valid JSON.
`, language)

	return b.String()
}

// EditSystemInstruction constrains the edit model to full-document answers.
func EditSystemInstruction(language, offTopic, schema string) string {
	return fmt.Sprintf(`You are a travel plan assistant. Your ONLY job is to modify a travel plan based on user requests.
1. For every valid modification request, respond with ONLY the complete, updated travel plan in the same JSON format as the original. Also update the 'confirmationMessage' field with a short message in %[1]s confirming the specific change you made.
2. If the request is NOT about modifying the travel plan (for example history, politics or random facts), respond with the original, unmodified travel plan JSON and set 'confirmationMessage' to '%[2]s'.
3. Do not add any other text, explanations or markdown formatting. The entire response must be a single valid JSON object matching this JSON schema:
%[3]s`, language, offTopic, schema)
}

// SampleActivities summarizes an itinerary for the packing prompt: the first
// activity of every distinct icon, at most twenty of them.
func SampleActivities(itinerary []domain.DailyPlan) string {
	seen := make(map[string]bool)
	var sampled []string
	for _, day := range itinerary {
		for _, a := range day.Activities {
			icon := strings.ToLower(a.Icon)
			if seen[icon] {
				continue
			}
			seen[icon] = true
			sampled = append(sampled, a.Description)
		}
	}
	if len(sampled) == 0 {
		return noActivities
	}
	if len(sampled) > maxSampledActivities {
		sampled = sampled[:maxSampledActivities]
	}
	return strings.Join(sampled, ", ")
}

// BuildPackingPrompt asks for a packing list tailored to the plan.
func BuildPackingPrompt(p *domain.Plan, language, schema string) string {
	duration := domain.TripDays(p.StartDate, p.EndDate)
	return fmt.Sprintf(`Based on the following travel plan, create a personalized packing list in %s.

- Destination: %s, %s
- Trip duration: %d days (%s to %s)
- Expected weather: %s, %s
- Planned activities summary: %s.

Organize the list into logical categories such as Essentials, Clothing, Electronics, Toiletries and Miscellaneous.
For each item, provide a name and an optional short note (quantity or specific type).
Return the entire list as a single JSON object matching this JSON schema, without markdown or any other text:
%s`,
		language,
		p.City, p.Country,
		duration, p.StartDate, p.EndDate,
		p.Weather.AverageTemp, p.Weather.Description,
		SampleActivities(p.Itinerary),
		schema,
	)
}
