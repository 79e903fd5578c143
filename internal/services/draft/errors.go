package draft

// ServiceError is a custom error type for league membership and input errors. Pick rejections
// are reported with the tracker's DraftError values.
type ServiceError string

// Error implements the error interface
func (e ServiceError) Error() string {
	return string(e)
}

// Code returns a stable snake_case identifier for transports
func (e ServiceError) Code() string {
	switch e {
	case ErrAlreadyMember:
		return "already_member"
	case ErrNotMember:
		return "not_member"
	case ErrInvalidInput:
		return "invalid_input"
	default:
		return "internal"
	}
}

// Define errors
const (
	ErrAlreadyMember     ServiceError = "already a member of this league"
	ErrNotMember         ServiceError = "not a member of this league"
	ErrInvalidInput      ServiceError = "required input is missing"
	ErrNilConfig         ServiceError = "config cannot be nil"
	ErrNilMembershipRepo ServiceError = "membership repository cannot be nil"
	ErrNilPickRepo       ServiceError = "pick repository cannot be nil"
	ErrNilRosterService  ServiceError = "roster service cannot be nil"
	ErrNilClock          ServiceError = "clock cannot be nil"
	ErrNilUUIDGenerator  ServiceError = "UUID generator cannot be nil"
)
