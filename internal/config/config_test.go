package config

import "testing"

func TestTotalLessons(t *testing.T) {
	course := CourseConfig{
		Units:           []string{"unidad1", "unidad2"},
		LessonsPerUnit:  4,
		LessonOverrides: map[string]int{"unidad2": 6},
	}

	if got := course.TotalLessons("unidad1"); got != 4 {
		t.Errorf("default unit: got %d, want 4", got)
	}
	if got := course.TotalLessons("unidad2"); got != 6 {
		t.Errorf("override unit: got %d, want 6", got)
	}

	// An unconfigured service still resolves the historical fixed count.
	var zero CourseConfig
	if got := zero.TotalLessons("unidad1"); got != 4 {
		t.Errorf("zero config: got %d, want 4", got)
	}
}

func TestHasUnit(t *testing.T) {
	course := CourseConfig{Units: []string{"unidad1", "unidad2"}}

	if !course.HasUnit("unidad1") {
		t.Error("unidad1 should exist")
	}
	if course.HasUnit("unidad9") {
		t.Error("unidad9 should not exist")
	}
	if course.HasUnit("") {
		t.Error("empty key should not exist")
	}
}
