package entries

type EntryType string

const (
	TypeSymptom     EntryType = "symptom"
	TypeMedication  EntryType = "medication"
	TypeAppointment EntryType = "appointment"
	TypeBehavior    EntryType = "behavior"
	TypeVitals      EntryType = "vitals"
	TypeFeeding     EntryType = "feeding"
	TypeHydration   EntryType = "hydration"
	TypeExamination EntryType = "examination"
)

func (t EntryType) Valid() bool {
	switch t {
	case TypeSymptom, TypeMedication, TypeAppointment, TypeBehavior,
		TypeVitals, TypeFeeding, TypeHydration, TypeExamination:
		return true
	}
	return false
}

type Severity string

const (
	SeverityMild      Severity = "Mild"
	SeverityModerate  Severity = "Moderate"
	SeveritySevere    Severity = "Severe"
	SeverityEmergency Severity = "Emergency"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere, SeverityEmergency:
		return true
	}
	return false
}

type Period string

const (
	PeriodAM Period = "AM"
	PeriodPM Period = "PM"
)
