package api

import "encoding/json"

// User defines a public type used by vetcare APIs.
//
// User instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type User struct {
	ID               json.Number `json:"id,omitempty"`
	Email            string      `json:"email"`
	Password         string      `json:"password,omitempty"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	Phone            string      `json:"phone,omitempty"`
	UserType         string      `json:"userType"`
	RegistrationDate string      `json:"registrationDate,omitempty"`
}

// Pet defines a public type used by vetcare APIs.
//
// Pet instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Pet struct {
	ID    json.Number `json:"id,omitempty"`
	Name  string      `json:"name"`
	Age   int         `json:"age"`
	Breed string      `json:"breed"`
	Owner string      `json:"owner"`
	Type  string      `json:"type"`
}

// Product defines a public type used by vetcare APIs.
//
// Product instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Product struct {
	ID          json.Number `json:"id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Stock       int         `json:"stock"`
	Category    string      `json:"category,omitempty"`
	Image       string      `json:"image,omitempty"`
}

// Appointment defines a public type used by vetcare APIs.
//
// Appointment instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Appointment struct {
	ID     json.Number `json:"id,omitempty"`
	Pet    string      `json:"pet"`
	Owner  string      `json:"owner"`
	Date   string      `json:"date"`
	Time   string      `json:"time"`
	Reason string      `json:"reason,omitempty"`
	Status string      `json:"status,omitempty"`
}
