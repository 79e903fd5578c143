package sportradar

import (
	"context"
	"encoding/json"
	"fmt"
)

// ActivePlayerStatus marks players on the active roster
const ActivePlayerStatus = "ACT"

// TeamProfile is a team with its full roster
type TeamProfile struct {
	Team
	Players []RosterPlayer `json:"players"`
}

// RosterPlayer is a player as listed in a team profile
type RosterPlayer struct {
	ID           string       `json:"id"`
	FullName     string       `json:"full_name"`
	JerseyNumber JerseyNumber `json:"jersey_number"`
	Position     string       `json:"primary_position"`
	Status       string       `json:"status"`
}

// GetTeamProfile retrieves a team and its roster
func (c *Client) GetTeamProfile(ctx context.Context, teamID string) (*TeamProfile, error) {
	// v7/{language_code}/teams/{team_id}/profile.json
	endpoint := fmt.Sprintf("v7/%s/teams/%s/profile.json", languageCodeEnglish, teamID)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get team profile: %w", err)
	}

	var profile TeamProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team profile: %w", err)
	}

	return &profile, nil
}
