package model

import "time"

// Theater represents a physical venue containing one or more halls.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – theater name.
//  Address       – street address.
//  City          – city the theater is located in.
//  State         – optional state or region.
//  ContactNumber – optional phone number.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Theater struct {
	ID            uint64    // theaters.id
	Name          string    // theaters.name
	Address       string    // theaters.address
	City          string    // theaters.city
	State         *string   // theaters.state (nullable)
	ContactNumber *string   // theaters.contact_number (nullable)
	CreatedAt     time.Time // theaters.created_at
	UpdatedAt     time.Time // theaters.updated_at
}
