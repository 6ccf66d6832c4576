package types

// ConfirmationRequest represents a request for user confirmation before a
// side-effecting step such as running template hooks
type ConfirmationRequest struct {
	// ID is a stable identifier for the confirmation
	ID string

	// Title is a brief, user-friendly title describing what needs confirmation
	Title string

	// Description provides detailed information about what will happen
	Description string

	// Items lists what will be affected, e.g. hook script paths
	Items []string

	// Default is the answer used when the user just presses enter
	Default bool
}
