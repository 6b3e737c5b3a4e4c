package ds

import "testing"

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status RequestStatus
		want   string
	}{
		{StatusNew, "New"},
		{StatusContacted, "Contacted"},
		{StatusInProgress, "In Progress"},
		{StatusCompleted, "Completed"},
		{RequestStatus("archived"), "archived"},
	}

	for _, tt := range tests {
		if got := StatusLabel(tt.status); got != tt.want {
			t.Errorf("StatusLabel(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestValidRequestStatus(t *testing.T) {
	for _, s := range []RequestStatus{StatusNew, StatusContacted, StatusInProgress, StatusCompleted} {
		if !ValidRequestStatus(s) {
			t.Errorf("ValidRequestStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []RequestStatus{"", "archived", "NEW"} {
		if ValidRequestStatus(s) {
			t.Errorf("ValidRequestStatus(%q) = true, want false", s)
		}
	}
}
