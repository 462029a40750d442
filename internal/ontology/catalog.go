package ontology

// Default clinical catalog. Covers the ARDS/ventilator, sepsis, and
// medication domains questions are generated for.

var defaultSkills = []Skill{
	{
		ID:                "skill_ards_recognition",
		Name:              "Recognize ARDS",
		Description:       "Identify signs and symptoms of Acute Respiratory Distress Syndrome",
		Category:          CategoryAssessment,
		RequiredRoles:     []ClinicalRole{RoleICUNurse, RoleRespiratoryTherapist},
		ProficiencyLevels: []string{"beginner", "intermediate", "advanced"},
		Keywords:          []string{"ARDS", "respiratory distress", "hypoxemia", "bilateral infiltrates", "PaO2/FiO2"},
	},
	{
		ID:                "skill_vent_setup",
		Name:              "Ventilator Setup",
		Description:       "Configure mechanical ventilator settings according to protocol",
		Category:          CategoryTechnical,
		RequiredRoles:     []ClinicalRole{RoleICUNurse, RoleRespiratoryTherapist},
		ProficiencyLevels: []string{"intermediate", "advanced"},
		Keywords:          []string{"ventilator", "tidal volume", "PEEP", "FiO2", "plateau pressure", "ARDSnet"},
	},
	{
		ID:                "skill_vent_monitoring",
		Name:              "Ventilator Monitoring",
		Description:       "Monitor and interpret ventilator parameters and patient response",
		Category:          CategoryMonitoring,
		RequiredRoles:     []ClinicalRole{RoleICUNurse, RoleRespiratoryTherapist},
		ProficiencyLevels: []string{"beginner", "intermediate", "advanced"},
		Keywords:          []string{"plateau pressure", "Pplat", "respiratory rate", "minute ventilation", "ABG", "pH"},
	},
	{
		ID:                "skill_vent_weaning",
		Name:              "Ventilator Weaning",
		Description:       "Assess readiness and conduct spontaneous breathing trials",
		Category:          CategoryIntervention,
		RequiredRoles:     []ClinicalRole{RoleICUNurse, RoleRespiratoryTherapist},
		ProficiencyLevels: []string{"intermediate", "advanced"},
		Keywords:          []string{"weaning", "spontaneous breathing trial", "SBT", "extubation", "PEEP"},
	},
	{
		ID:                "skill_pbw_calculation",
		Name:              "Calculate Predicted Body Weight",
		Description:       "Calculate PBW for lung-protective ventilation",
		Category:          CategoryAssessment,
		RequiredRoles:     []ClinicalRole{RoleICUNurse, RoleRespiratoryTherapist},
		ProficiencyLevels: []string{"beginner", "intermediate"},
		Keywords:          []string{"predicted body weight", "PBW", "tidal volume", "height", "calculation"},
	},
	{
		ID:                "skill_sepsis_recognition",
		Name:              "Recognize Sepsis",
		Description:       "Identify signs of sepsis and septic shock",
		Category:          CategoryAssessment,
		RequiredRoles:     []ClinicalRole{RoleRN, RoleICUNurse, RoleERNurse},
		ProficiencyLevels: []string{"beginner", "intermediate", "advanced"},
		Keywords:          []string{"sepsis", "septic shock", "SIRS", "qSOFA", "infection", "hypotension"},
	},
	{
		ID:                "skill_sepsis_management",
		Name:              "Sepsis Management",
		Description:       "Implement sepsis bundle and initial resuscitation",
		Category:          CategoryIntervention,
		RequiredRoles:     []ClinicalRole{RoleRN, RoleICUNurse, RoleERNurse},
		ProficiencyLevels: []string{"intermediate", "advanced"},
		Keywords:          []string{"sepsis bundle", "fluid resuscitation", "antibiotics", "crystalloid", "vasopressors"},
	},
	{
		ID:                "skill_medication_admin",
		Name:              "Medication Administration",
		Description:       "Safely administer medications following 5 rights",
		Category:          CategoryMedication,
		RequiredRoles:     []ClinicalRole{RoleRN, RoleLPN, RoleICUNurse},
		ProficiencyLevels: []string{"beginner", "intermediate"},
		Keywords:          []string{"medication", "administration", "IV", "dosage", "drug"},
	},
	{
		ID:                "skill_critical_drug_management",
		Name:              "Critical Drug Management",
		Description:       "Manage vasoactive and high-alert medications",
		Category:          CategoryMedication,
		RequiredRoles:     []ClinicalRole{RoleICUNurse, RoleERNurse},
		ProficiencyLevels: []string{"intermediate", "advanced"},
		Keywords:          []string{"vasopressor", "inotrope", "sedation", "paralytic", "high-alert"},
	},
}

var defaultCompetencies = []Competency{
	{
		ID:          "comp_critical_respiratory",
		Name:        "Critical Respiratory Care",
		Description: "Comprehensive management of critically ill respiratory patients",
		SkillIDs: []string{
			"skill_ards_recognition",
			"skill_vent_setup",
			"skill_vent_monitoring",
			"skill_vent_weaning",
			"skill_pbw_calculation",
		},
		Roles: []ClinicalRole{RoleICUNurse, RoleRespiratoryTherapist},
	},
	{
		ID:          "comp_sepsis_care",
		Name:        "Sepsis Recognition and Management",
		Description: "Identification and initial management of sepsis",
		SkillIDs: []string{
			"skill_sepsis_recognition",
			"skill_sepsis_management",
			"skill_critical_drug_management",
		},
		Roles: []ClinicalRole{RoleRN, RoleICUNurse, RoleERNurse},
	},
}
