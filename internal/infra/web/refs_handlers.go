package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"medvextract/internal/domain/model"
)

// DTOs for the reference tables. Domain models stay free of transport tags.

type patientPayload struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Species   string    `json:"species,omitempty"`
	Breed     string    `json:"breed,omitempty"`
	Age       int       `json:"age,omitempty"`
	OwnerName string    `json:"owner_name,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func patientToPayload(p *model.Patient) patientPayload {
	return patientPayload{
		ID: p.ID, Name: p.Name, Species: p.Species, Breed: p.Breed,
		Age: p.Age, OwnerName: p.OwnerName, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (s *Server) createPatient(w http.ResponseWriter, r *http.Request) {
	var req patientPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p := &model.Patient{Name: req.Name, Species: req.Species, Breed: req.Breed, Age: req.Age, OwnerName: req.OwnerName}
	if err := s.patientUC.Save(r.Context(), p); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, patientToPayload(p))
}

func (s *Server) getPatient(w http.ResponseWriter, r *http.Request) {
	p, err := s.patientUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patientToPayload(p))
}

func (s *Server) updatePatient(w http.ResponseWriter, r *http.Request) {
	var req patientPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id := chi.URLParam(r, "id")
	existing, err := s.patientUC.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	existing.Name = req.Name
	existing.Species = req.Species
	existing.Breed = req.Breed
	existing.Age = req.Age
	existing.OwnerName = req.OwnerName
	if err := s.patientUC.Save(r.Context(), existing); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patientToPayload(existing))
}

func (s *Server) listPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := s.patientUC.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]patientPayload, 0, len(patients))
	for _, p := range patients {
		out = append(out, patientToPayload(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deletePatient(w http.ResponseWriter, r *http.Request) {
	if err := s.patientUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type veterinarianPayload struct {
	ID            string    `json:"id,omitempty"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"license_number,omitempty"`
	ClinicID      string    `json:"clinic_id,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

func veterinarianToPayload(v *model.Veterinarian) veterinarianPayload {
	return veterinarianPayload{
		ID: v.ID, Name: v.Name, LicenseNumber: v.LicenseNumber,
		ClinicID: v.ClinicID, CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt,
	}
}

func (s *Server) createVeterinarian(w http.ResponseWriter, r *http.Request) {
	var req veterinarianPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v := &model.Veterinarian{Name: req.Name, LicenseNumber: req.LicenseNumber, ClinicID: req.ClinicID}
	if err := s.vetUC.Save(r.Context(), v); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, veterinarianToPayload(v))
}

func (s *Server) getVeterinarian(w http.ResponseWriter, r *http.Request) {
	v, err := s.vetUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, veterinarianToPayload(v))
}

func (s *Server) updateVeterinarian(w http.ResponseWriter, r *http.Request) {
	var req veterinarianPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id := chi.URLParam(r, "id")
	existing, err := s.vetUC.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	existing.Name = req.Name
	existing.LicenseNumber = req.LicenseNumber
	existing.ClinicID = req.ClinicID
	if err := s.vetUC.Save(r.Context(), existing); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, veterinarianToPayload(existing))
}

func (s *Server) listVeterinarians(w http.ResponseWriter, r *http.Request) {
	vets, err := s.vetUC.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]veterinarianPayload, 0, len(vets))
	for _, v := range vets {
		out = append(out, veterinarianToPayload(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteVeterinarian(w http.ResponseWriter, r *http.Request) {
	if err := s.vetUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type clinicPayload struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	Country    string    `json:"country,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

func clinicToPayload(c *model.Clinic) clinicPayload {
	return clinicPayload{
		ID: c.ID, Name: c.Name, Address: c.Address, City: c.City, State: c.State,
		PostalCode: c.PostalCode, Country: c.Country, Phone: c.Phone, Email: c.Email,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (s *Server) createClinic(w http.ResponseWriter, r *http.Request) {
	var req clinicPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c := &model.Clinic{
		Name: req.Name, Address: req.Address, City: req.City, State: req.State,
		PostalCode: req.PostalCode, Country: req.Country, Phone: req.Phone, Email: req.Email,
	}
	if err := s.clinicUC.Save(r.Context(), c); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, clinicToPayload(c))
}

func (s *Server) getClinic(w http.ResponseWriter, r *http.Request) {
	c, err := s.clinicUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clinicToPayload(c))
}

func (s *Server) updateClinic(w http.ResponseWriter, r *http.Request) {
	var req clinicPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id := chi.URLParam(r, "id")
	existing, err := s.clinicUC.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	existing.Name = req.Name
	existing.Address = req.Address
	existing.City = req.City
	existing.State = req.State
	existing.PostalCode = req.PostalCode
	existing.Country = req.Country
	existing.Phone = req.Phone
	existing.Email = req.Email
	if err := s.clinicUC.Save(r.Context(), existing); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clinicToPayload(existing))
}

func (s *Server) listClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := s.clinicUC.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]clinicPayload, 0, len(clinics))
	for _, c := range clinics {
		out = append(out, clinicToPayload(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteClinic(w http.ResponseWriter, r *http.Request) {
	if err := s.clinicUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
