package domain

// Desk is a physical desk that can be booked. Reference data, read-only for the service.
type Desk struct {
	ID       string
	Label    string
	Location *string
	Type     *string
}
