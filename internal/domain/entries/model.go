package entries

import "time"

// HealthEntry es un evento de salud. El almacenamiento es un registro plano:
// los campos de variante (medication/symptom/appointment) son opcionales y
// se validan al construir según Type (ver service.go).
type HealthEntry struct {
	ID    string `json:"id"`
	PetID string `json:"petId"`

	Type EntryType `json:"type"` // inmutable después de crear

	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Date        string   `json:"date"` // YYYY-MM-DD canónico
	Time        string   `json:"time,omitempty"`
	Period      Period   `json:"period,omitempty"`
	Severity    Severity `json:"severity,omitempty"`
	Notes       string   `json:"notes,omitempty"`

	// variante medication
	MedicationName string `json:"medicationName,omitempty"`
	Dosage         string `json:"dosage,omitempty"`
	Frequency      string `json:"frequency,omitempty"`
	Route          string `json:"route,omitempty"`
	PrescribedBy   string `json:"prescribedBy,omitempty"`

	// variante symptom
	Symptom  string `json:"symptom,omitempty"`
	Duration string `json:"duration,omitempty"`

	// variante appointment
	AppointmentType string `json:"appointmentType,omitempty"`
	ClinicName      string `json:"clinicName,omitempty"`
	Veterinarian    string `json:"veterinarian,omitempty"`
	Reason          string `json:"reason,omitempty"`
	Reminder        bool   `json:"reminder,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	SyncedToCloud bool      `json:"syncedToCloud"`
}
