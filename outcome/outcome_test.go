package outcome

import (
	"errors"
	"testing"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil is OK", nil, OK},
		{"not found", NotFoundf("no project found with id: %s", "x"), NotFound},
		{"forbidden", Forbiddenf("no permission"), Forbidden},
		{"bad input", BadInputf("query too short"), BadInput},
		{"internal", Internalf("something went wrong"), Internal},
		{"raw errors count as internal", errors.New("mongo: timeout"), Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := NotFoundf("no project found with id: %d", 7)
	if err.Error() != "no project found with id: 7" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
