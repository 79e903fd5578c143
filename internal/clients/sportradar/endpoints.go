package sportradar

const (
	// BaseURL uses the trial access level
	BaseURL = "https://api.sportradar.com/nhl/trial/"

	languageCodeEnglish = "en"

	// SportRadar takes the key as a query parameter, not a header
	APIKeyParam     = "api_key"
	JsonHeader      = "Accept"
	JsonContentType = "application/json"
	UserAgent       = "LightTheLamp/1.0"
)
