package ws

// WSError is a custom error type for websocket errors
type WSError string

// Error implements the error interface
func (e WSError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrHubClosed WSError = "hub is closed"
	ErrNoLoader  WSError = "hub has no state loader"
	ErrNilConfig WSError = "config cannot be nil"
	ErrNilHub    WSError = "hub cannot be nil"
	ErrNilLoader WSError = "state loader cannot be nil"
)
