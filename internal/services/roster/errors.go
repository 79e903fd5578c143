package roster

// RosterError is a custom error type for roster-related errors
type RosterError string

// Error implements the error interface
func (e RosterError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrTeamNotInGame  RosterError = "team is not playing in this game"
	ErrEmptyRoster    RosterError = "source returned an empty roster"
	ErrUnknownGame    RosterError = "source does not know the game"
	ErrNilConfig      RosterError = "config cannot be nil"
	ErrNilRosterRepo  RosterError = "roster repository cannot be nil"
	ErrNilSource      RosterError = "roster source cannot be nil"
	ErrNilService     RosterError = "roster service cannot be nil"
	ErrNilSportradar  RosterError = "sportradar client cannot be nil"
	ErrEmptyGameID    RosterError = "game ID cannot be empty"
	ErrInvalidRefresh RosterError = "refresh interval must be positive"
	ErrNoUpcomingGame RosterError = "no upcoming game for team"
)
