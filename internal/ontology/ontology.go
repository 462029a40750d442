// Package ontology holds the clinical skills knowledge graph: individual
// skills, the competencies that group them, and keyword-based lookup used
// for auto-tagging generated questions.
package ontology

import "strings"

type SkillCategory string

const (
	CategoryAssessment       SkillCategory = "Clinical Assessment"
	CategoryIntervention     SkillCategory = "Clinical Intervention"
	CategoryMonitoring       SkillCategory = "Patient Monitoring"
	CategoryMedication       SkillCategory = "Medication Management"
	CategoryCommunication    SkillCategory = "Communication"
	CategoryCriticalThinking SkillCategory = "Critical Thinking"
	CategoryTechnical        SkillCategory = "Technical Skills"
	CategorySafety           SkillCategory = "Patient Safety"
)

// AllCategories lists every category in display order. Skill tree output
// iterates this so empty categories still appear.
var AllCategories = []SkillCategory{
	CategoryAssessment,
	CategoryIntervention,
	CategoryMonitoring,
	CategoryMedication,
	CategoryCommunication,
	CategoryCriticalThinking,
	CategoryTechnical,
	CategorySafety,
}

type ClinicalRole string

const (
	RoleRN                   ClinicalRole = "Registered Nurse"
	RoleLPN                  ClinicalRole = "Licensed Practical Nurse"
	RoleICUNurse             ClinicalRole = "ICU Nurse"
	RoleERNurse              ClinicalRole = "Emergency Room Nurse"
	RoleMedSurgNurse         ClinicalRole = "Medical-Surgical Nurse"
	RolePICUNurse            ClinicalRole = "Pediatric ICU Nurse"
	RoleNursePractitioner    ClinicalRole = "Nurse Practitioner"
	RoleRespiratoryTherapist ClinicalRole = "Respiratory Therapist"
	RolePhysician            ClinicalRole = "Physician"
)

// Skill is one clinical skill a question can exercise.
type Skill struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Category          SkillCategory  `json:"category"`
	ParentSkill       string         `json:"parent_skill,omitempty"`
	RequiredRoles     []ClinicalRole `json:"required_roles"`
	ProficiencyLevels []string       `json:"proficiency_levels"`
	Keywords          []string       `json:"keywords"`
}

// Competency groups related skills for a set of clinical roles.
type Competency struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	SkillIDs    []string       `json:"skills"`
	Roles       []ClinicalRole `json:"roles"`
}

// Ontology is the in-memory skills graph. It is built once at startup
// from the default catalog and read concurrently after that.
type Ontology struct {
	skills       map[string]Skill
	competencies map[string]Competency
	skillOrder   []string
	compOrder    []string
}

// New builds the ontology from the default clinical catalog.
func New() *Ontology {
	o := &Ontology{
		skills:       make(map[string]Skill),
		competencies: make(map[string]Competency),
	}
	for _, s := range defaultSkills {
		o.skills[s.ID] = s
		o.skillOrder = append(o.skillOrder, s.ID)
	}
	for _, c := range defaultCompetencies {
		o.competencies[c.ID] = c
		o.compOrder = append(o.compOrder, c.ID)
	}
	return o
}

// GetSkill returns the skill with the given id, if it exists.
func (o *Ontology) GetSkill(id string) (Skill, bool) {
	s, ok := o.skills[id]
	return s, ok
}

// AllSkills returns every skill in catalog order.
func (o *Ontology) AllSkills() []Skill {
	skills := make([]Skill, 0, len(o.skillOrder))
	for _, id := range o.skillOrder {
		skills = append(skills, o.skills[id])
	}
	return skills
}

// SkillsByCategory returns the skills in one category, in catalog order.
func (o *Ontology) SkillsByCategory(category SkillCategory) []Skill {
	var matched []Skill
	for _, id := range o.skillOrder {
		if s := o.skills[id]; s.Category == category {
			matched = append(matched, s)
		}
	}
	return matched
}

// SkillsByRole returns the skills required for one clinical role.
func (o *Ontology) SkillsByRole(role ClinicalRole) []Skill {
	var matched []Skill
	for _, id := range o.skillOrder {
		s := o.skills[id]
		for _, r := range s.RequiredRoles {
			if r == role {
				matched = append(matched, s)
				break
			}
		}
	}
	return matched
}

// GetCompetency returns the competency with the given id, if it exists.
func (o *Ontology) GetCompetency(id string) (Competency, bool) {
	c, ok := o.competencies[id]
	return c, ok
}

// AllCompetencies returns every competency in catalog order.
func (o *Ontology) AllCompetencies() []Competency {
	comps := make([]Competency, 0, len(o.compOrder))
	for _, id := range o.compOrder {
		comps = append(comps, o.competencies[id])
	}
	return comps
}

// SearchByKeywords returns skills whose keyword list contains any of the
// given keywords. Matching is case-insensitive and exact per keyword.
func (o *Ontology) SearchByKeywords(keywords []string) []Skill {
	wanted := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		wanted[strings.ToLower(kw)] = true
	}

	var matched []Skill
	for _, id := range o.skillOrder {
		s := o.skills[id]
		for _, kw := range s.Keywords {
			if wanted[strings.ToLower(kw)] {
				matched = append(matched, s)
				break
			}
		}
	}
	return matched
}

// SkillTreeNode is one skill entry in the category tree view.
type SkillTreeNode struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Roles []ClinicalRole `json:"roles"`
}

// SkillTree returns skills grouped by category. Every category appears,
// empty ones with an empty list.
func (o *Ontology) SkillTree() map[SkillCategory][]SkillTreeNode {
	tree := make(map[SkillCategory][]SkillTreeNode, len(AllCategories))
	for _, category := range AllCategories {
		nodes := []SkillTreeNode{}
		for _, s := range o.SkillsByCategory(category) {
			nodes = append(nodes, SkillTreeNode{ID: s.ID, Name: s.Name, Roles: s.RequiredRoles})
		}
		tree[category] = nodes
	}
	return tree
}
