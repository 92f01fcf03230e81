package model

// Address is a delivery destination saved by a user.
type Address struct {
	ID         int64
	UserID     int64
	Label      string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  bool
	Location   *Location
}
