package service

import (
	"errors"
	"ery_cursos_backend/internal/util"
	"reflect"
	"testing"
)

func TestNormalizeRecipients(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr bool
	}{
		{"valid roles", []string{"student", "evaluator"}, []string{"student", "evaluator"}, false},
		{"trims whitespace", []string{" student ", "all"}, []string{"student", "all"}, false},
		{"drops blanks", []string{"student", "", "  "}, []string{"student"}, false},
		{"empty list", nil, nil, true},
		{"only blanks", []string{"", "  "}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeRecipients(tt.in)
			if tt.wantErr {
				if !errors.Is(err, util.ErrInvalidInput) {
					t.Errorf("err = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeRecipients: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
