package response_models

// CanonicalItinerary is the guaranteed-shape itinerary handed to callers.
// Every slice is non-nil and every string is set, even when empty.
type CanonicalItinerary struct {
	Destination         string        `json:"destination"`
	Duration            int           `json:"duration"`
	EstimatedBudget     string        `json:"estimatedBudget"`
	TravelStyle         string        `json:"travelStyle"`
	WeatherOverview     string        `json:"weatherOverview"`
	EssentialTravelTips []string      `json:"essentialTravelTips"`
	EmergencyInfo       EmergencyInfo `json:"emergencyInfo"`
	Days                []Day         `json:"days"`
}

type EmergencyInfo struct {
	Contacts  []string `json:"contacts"`
	Hospitals []string `json:"hospitals"`
	Embassies []string `json:"embassies"`
}

type Day struct {
	DayNumber  int        `json:"dayNumber"`
	Date       string     `json:"date"`
	Weather    DayWeather `json:"weather"`
	DailyTips  []string   `json:"dailyTips"`
	Activities []Activity `json:"activities"`
	DaySummary string     `json:"daySummary"`
}

type DayWeather struct {
	TempRange string `json:"tempRange"`
	Condition string `json:"condition"`
	Tip       string `json:"tip"`
}

type Activity struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Location    string `json:"location"`
	Cost        string `json:"cost"`
	Rating      string `json:"rating"`
	Photos      string `json:"photos"`
}

// Activity.Type values.
const (
	ActivityIndoor   = "indoor"
	ActivityOutdoor  = "outdoor"
	ActivityFlexible = "flexible"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}
