package ontology

import "testing"

func TestGetSkill(t *testing.T) {
	o := New()

	skill, ok := o.GetSkill("skill_ards_recognition")
	if !ok {
		t.Fatal("GetSkill(skill_ards_recognition) not found")
	}
	if skill.Name != "Recognize ARDS" {
		t.Errorf("skill.Name = %q, want %q", skill.Name, "Recognize ARDS")
	}
	if skill.Category != CategoryAssessment {
		t.Errorf("skill.Category = %q, want %q", skill.Category, CategoryAssessment)
	}

	if _, ok := o.GetSkill("skill_nonexistent"); ok {
		t.Error("GetSkill(skill_nonexistent) found, want not found")
	}
}

func TestSkillsByCategory(t *testing.T) {
	o := New()

	tests := []struct {
		category SkillCategory
		want     int
	}{
		{CategoryAssessment, 3},
		{CategoryIntervention, 2},
		{CategoryMonitoring, 1},
		{CategoryMedication, 2},
		{CategoryTechnical, 1},
		{CategoryCommunication, 0},
	}

	for _, tt := range tests {
		got := o.SkillsByCategory(tt.category)
		if len(got) != tt.want {
			t.Errorf("SkillsByCategory(%q) returned %d skills, want %d", tt.category, len(got), tt.want)
		}
	}
}

func TestSkillsByRole(t *testing.T) {
	o := New()

	rtSkills := o.SkillsByRole(RoleRespiratoryTherapist)
	if len(rtSkills) != 5 {
		t.Errorf("SkillsByRole(RespiratoryTherapist) returned %d skills, want 5", len(rtSkills))
	}

	lpnSkills := o.SkillsByRole(RoleLPN)
	if len(lpnSkills) != 1 {
		t.Fatalf("SkillsByRole(LPN) returned %d skills, want 1", len(lpnSkills))
	}
	if lpnSkills[0].ID != "skill_medication_admin" {
		t.Errorf("SkillsByRole(LPN)[0].ID = %q, want skill_medication_admin", lpnSkills[0].ID)
	}
}

func TestSearchByKeywords(t *testing.T) {
	o := New()

	tests := []struct {
		name     string
		keywords []string
		wantIDs  []string
	}{
		{
			name:     "exact keyword match",
			keywords: []string{"sepsis"},
			wantIDs:  []string{"skill_sepsis_recognition"},
		},
		{
			name:     "case insensitive",
			keywords: []string{"ARDS"},
			wantIDs:  []string{"skill_ards_recognition"},
		},
		{
			name:     "shared keyword matches multiple skills",
			keywords: []string{"peep"},
			wantIDs:  []string{"skill_vent_setup", "skill_vent_weaning"},
		},
		{
			name:     "no match",
			keywords: []string{"cardiology"},
			wantIDs:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := o.SearchByKeywords(tt.keywords)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("SearchByKeywords(%v) returned %d skills, want %d", tt.keywords, len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("SearchByKeywords(%v)[%d].ID = %q, want %q", tt.keywords, i, got[i].ID, id)
				}
			}
		})
	}
}

func TestCompetencies(t *testing.T) {
	o := New()

	comps := o.AllCompetencies()
	if len(comps) != 2 {
		t.Fatalf("AllCompetencies() returned %d, want 2", len(comps))
	}

	comp, ok := o.GetCompetency("comp_critical_respiratory")
	if !ok {
		t.Fatal("GetCompetency(comp_critical_respiratory) not found")
	}
	if len(comp.SkillIDs) != 5 {
		t.Errorf("comp_critical_respiratory has %d skills, want 5", len(comp.SkillIDs))
	}
}

func TestSkillTree(t *testing.T) {
	o := New()

	tree := o.SkillTree()
	if len(tree) != len(AllCategories) {
		t.Fatalf("SkillTree() has %d categories, want %d", len(tree), len(AllCategories))
	}

	assessment := tree[CategoryAssessment]
	if len(assessment) != 3 {
		t.Errorf("SkillTree()[Assessment] has %d skills, want 3", len(assessment))
	}

	// Empty categories are still present with empty lists.
	safety, ok := tree[CategorySafety]
	if !ok {
		t.Fatal("SkillTree() missing Patient Safety category")
	}
	if len(safety) != 0 {
		t.Errorf("SkillTree()[Patient Safety] has %d skills, want 0", len(safety))
	}
}
