package pets

import "time"

// Pet es el perfil local de una mascota. Los tags JSON siguen el formato
// camelCase de los snapshots que viajan por la cola de sync.
type Pet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"` // especie: Dog, Cat, ...
	Breed       string `json:"breed,omitempty"`
	Age         string `json:"age,omitempty"`
	AgeUnit     string `json:"ageUnit,omitempty"`
	Weight      string `json:"weight,omitempty"`
	WeightUnit  string `json:"weightUnit,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Color       string `json:"color,omitempty"`
	MicrochipID string `json:"microchipId,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"` // YYYY-MM-DD
	OwnerNotes  string `json:"ownerNotes,omitempty"`
	Image       string `json:"image,omitempty"`

	HealthScore int    `json:"healthScore"` // siempre en [0,100]
	LastCheckup string `json:"lastCheckup"`

	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	SyncedToCloud bool      `json:"syncedToCloud"`
}

// Patch es una actualización parcial: nil = no tocar el campo.
// Image distingue "no enviado" de "null para limpiar" (ver ImageSet).
type Patch struct {
	Name        *string `json:"name,omitempty"`
	Type        *string `json:"type,omitempty"`
	Breed       *string `json:"breed,omitempty"`
	Age         *string `json:"age,omitempty"`
	AgeUnit     *string `json:"ageUnit,omitempty"`
	Weight      *string `json:"weight,omitempty"`
	WeightUnit  *string `json:"weightUnit,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Color       *string `json:"color,omitempty"`
	MicrochipID *string `json:"microchipId,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	OwnerNotes  *string `json:"ownerNotes,omitempty"`
	HealthScore *int    `json:"healthScore,omitempty"`
	LastCheckup *string `json:"lastCheckup,omitempty"`

	ImageSet bool    `json:"-"`
	Image    *string `json:"image,omitempty"`
}

// Empty reporta si el patch no toca ningún campo.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Type == nil && p.Breed == nil &&
		p.Age == nil && p.AgeUnit == nil && p.Weight == nil &&
		p.WeightUnit == nil && p.Gender == nil && p.Color == nil &&
		p.MicrochipID == nil && p.DateOfBirth == nil && p.OwnerNotes == nil &&
		p.HealthScore == nil && p.LastCheckup == nil && !p.ImageSet
}
