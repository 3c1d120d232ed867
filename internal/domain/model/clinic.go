package model

import "time"

type Clinic struct {
	ID         string
	Name       string
	Address    string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
	Email      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Veterinarian struct {
	ID            string
	Name          string
	LicenseNumber string
	ClinicID      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Patient struct {
	ID        string
	Name      string
	Species   string
	Breed     string
	Age       int
	OwnerName string
	CreatedAt time.Time
	UpdatedAt time.Time
}
