package evaluation

// DefaultScale is the score scale of most criteria.
var DefaultScale = []float64{0, 0.5, 1, 1.5, 2, 2.5}

// CoarseScale is used by criteria that only distinguish insufficient,
// adequate and good.
var CoarseScale = []float64{0, 1.5, 2.5}

// CriterionSpec names one scored dimension and its allowed scores, ascending.
type CriterionSpec struct {
	Name    string
	Allowed []float64
}

// Rubric is the fixed schema one evaluation type is normalized into.
type Rubric struct {
	Type       string
	Title      string
	Criteria   []CriterionSpec
	MaxTotal   float64
	PassCutoff float64
}

// Names returns the criterion names in their authoritative order.
func (r Rubric) Names() []string {
	names := make([]string, len(r.Criteria))
	for i, c := range r.Criteria {
		names[i] = c.Name
	}
	return names
}

const (
	TypeDoctorPatient = "arzt_patient"
	TypeDoctorDoctor  = "arzt_arzt"
)

var rubrics = []Rubric{
	{
		Type:  TypeDoctorPatient,
		Title: "Arzt-Patienten-Gespräch",
		Criteria: []CriterionSpec{
			{Name: "Gesprächseröffnung und Beziehungsaufbau", Allowed: DefaultScale},
			{Name: "Vollständigkeit der Anamnese", Allowed: DefaultScale},
			{Name: "Struktur des Gesprächs", Allowed: DefaultScale},
			{Name: "Patientengerechte Sprache", Allowed: DefaultScale},
			{Name: "Aktives Zuhören und Empathie", Allowed: DefaultScale},
			{Name: "Aufklärung und weiteres Vorgehen", Allowed: DefaultScale},
			{Name: "Grammatik und Satzbau", Allowed: DefaultScale},
			{Name: "Aussprache und Sprechfluss", Allowed: DefaultScale},
		},
		MaxTotal:   20,
		PassCutoff: 12,
	},
	{
		Type:  TypeDoctorDoctor,
		Title: "Arzt-Arzt-Gespräch (Patientenvorstellung)",
		Criteria: []CriterionSpec{
			{Name: "Struktur der Patientenvorstellung", Allowed: DefaultScale},
			{Name: "Medizinische Fachterminologie", Allowed: DefaultScale},
			{Name: "Vollständigkeit der Anamnese", Allowed: DefaultScale},
			{Name: "Verdachtsdiagnose und Differenzialdiagnosen", Allowed: DefaultScale},
			{Name: "Diagnostik und Therapieplanung", Allowed: DefaultScale},
			{Name: "Reaktion auf Rückfragen", Allowed: DefaultScale},
			{Name: "Sprachliche Korrektheit", Allowed: CoarseScale},
		},
		MaxTotal:   17.5,
		PassCutoff: 10.5,
	},
}

// Lookup returns the rubric for an evaluation type.
func Lookup(evalType string) (Rubric, bool) {
	for _, r := range rubrics {
		if r.Type == evalType {
			return r, true
		}
	}
	return Rubric{}, false
}

// Rubrics lists every known evaluation type.
func Rubrics() []Rubric {
	out := make([]Rubric, len(rubrics))
	copy(out, rubrics)
	return out
}
