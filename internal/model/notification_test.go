package model

import "testing"

func TestNotificationVisibleTo(t *testing.T) {
	tests := []struct {
		name       string
		recipients []string
		role       UserRole
		userID     uint
		want       bool
	}{
		{"all matches student", []string{"all"}, Student, 1, true},
		{"all matches admin", []string{"all"}, Admin, 2, true},
		{"exact role match", []string{"evaluator"}, Evaluator, 3, true},
		{"other role no match", []string{"evaluator"}, Student, 3, false},
		{"role among several", []string{"assistant", "student"}, Student, 4, true},
		{"addressed user sees it", []string{UserRecipient(7)}, Student, 7, true},
		{"other user does not", []string{UserRecipient(7)}, Student, 8, false},
		{"per-user ignores role", []string{UserRecipient(7)}, Admin, 7, true},
		{"no recipients", nil, Student, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Notification{Recipients: tt.recipients}
			if got := n.VisibleTo(tt.role, tt.userID); got != tt.want {
				t.Errorf("VisibleTo(%s, %d) with %v = %v, want %v", tt.role, tt.userID, tt.recipients, got, tt.want)
			}
		})
	}
}

func TestUserRecipient(t *testing.T) {
	if got := UserRecipient(42); got != "user:42" {
		t.Errorf("UserRecipient(42) = %q, want user:42", got)
	}
}

func TestAssignmentLessonKey(t *testing.T) {
	a := Assignment{WeekNumber: 3}

	if got := a.LessonKey("semana"); got != "semana3" {
		t.Errorf("LessonKey = %q, want semana3", got)
	}
	if got := a.LessonKey(""); got != "semana3" {
		t.Errorf("LessonKey with empty prefix = %q, want semana3", got)
	}
	if got := a.LessonKey("week"); got != "week3" {
		t.Errorf("LessonKey = %q, want week3", got)
	}
}
