package service

import "testing"

func TestUnitPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed []string
		total     int
		want      int
	}{
		{"empty unit", nil, 4, 0},
		{"one of four", []string{"semana1"}, 4, 25},
		{"half", []string{"semana1", "semana2"}, 4, 50},
		{"three of four", []string{"semana1", "semana2", "semana3"}, 4, 75},
		{"full", []string{"semana1", "semana2", "semana3", "semana4"}, 4, 100},
		{"rounds half up", []string{"semana1"}, 8, 13},
		{"one of three rounds to 33", []string{"semana1"}, 3, 33},
		{"two of three rounds to 67", []string{"semana1", "semana2"}, 3, 67},
		{"zero total", []string{"semana1"}, 0, 0},
		{"negative total", []string{"semana1"}, -2, 0},
		{"overfull set clamps to 100", []string{"a", "b", "c", "d", "e"}, 4, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnitPercentage(tt.completed, tt.total); got != tt.want {
				t.Errorf("UnitPercentage(%v, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestOverallPercentage(t *testing.T) {
	tests := []struct {
		name  string
		units []int
		want  int
	}{
		{"no units", nil, 0},
		{"all zero", []int{0, 0, 0, 0}, 0},
		{"all complete", []int{100, 100, 100, 100}, 100},
		{"mixed rounds half up", []int{0, 50, 100, 100}, 63},
		{"single unit passes through", []int{75}, 75},
		{"thirds", []int{33, 33, 34}, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverallPercentage(tt.units); got != tt.want {
				t.Errorf("OverallPercentage(%v) = %d, want %d", tt.units, got, tt.want)
			}
		})
	}
}
