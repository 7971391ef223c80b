// Package model holds the types shared between the server and its clients.
package model

// Customer is a person whose Steam library was looked up
type Customer struct {
	SteamName string  `json:"steam_name"`
	SteamID   *uint64 `json:"steam_id"`
	Games     []Game  `json:"games"`
}

// Game is the client-facing view of an owned title
type Game struct {
	ID    uint64 `json:"id"`
	AppID uint64 `json:"app_id"`
	Name  string `json:"name"`
}

// Consultant recommends games to customers
type Consultant struct {
	Name string `json:"name"`
}

// Room groups customers with consultants
type Room struct {
	ID          uint64       `json:"id"`
	Customers   []Customer   `json:"customers"`
	Consultants []Consultant `json:"consultants"`
}

// CounterResponse is returned by the increment endpoint
type CounterResponse struct {
	CounterValue uint64 `json:"counter_value"`
}

// CustomerResponse is returned by the customer library endpoint.
// Error is set when the library could not be fetched; Customer is then a placeholder.
type CustomerResponse struct {
	Customer Customer   `json:"customer"`
	Error    *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failure in a response
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
