// Package health deriva el puntaje 0-100 de una mascota a partir de su
// historial reciente. Función pura: el caller trae las entries, acá no se
// toca almacenamiento.
package health

import (
	"time"

	"github.com/mirabelle514/LovingPaws/internal/domain/entries"
)

// Tabla de puntaje. Constantes con nombre para poder ajustar producto sin
// tocar el loop de agregación.
const (
	BaseScore = 100

	PenaltyMild      = 5
	PenaltyModerate  = 15
	PenaltySevere    = 30
	PenaltyEmergency = 50

	// Bonus chico por entries de cuidado (medicación, cita).
	CareBonus = 2

	// Ventana de "reciente": últimos 30 días.
	RecentWindow = 30 * 24 * time.Hour
)

// Score calcula el puntaje sobre las entries fechadas dentro de la ventana
// que termina en now. Resultado siempre en [0,100].
func Score(list []entries.HealthEntry, now time.Time) int {
	cutoff := now.Add(-RecentWindow)

	score := BaseScore
	for _, e := range list {
		d, err := entries.ParseDate(e.Date)
		if err != nil {
			// fecha ilegible: no cuenta ni a favor ni en contra
			continue
		}
		if d.Before(cutoff) {
			continue
		}

		switch e.Type {
		case entries.TypeSymptom:
			score -= severityPenalty(e.Severity)
		case entries.TypeMedication, entries.TypeAppointment:
			score += CareBonus
		}
	}

	return clamp(score)
}

func severityPenalty(s entries.Severity) int {
	switch s {
	case entries.SeverityMild:
		return PenaltyMild
	case entries.SeverityModerate:
		return PenaltyModerate
	case entries.SeveritySevere:
		return PenaltySevere
	case entries.SeverityEmergency:
		return PenaltyEmergency
	default:
		return 0
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
