package mailer

import (
	"strings"
	"testing"
	"time"
)

func TestBuildStatusChangeEmail(t *testing.T) {
	subject, body := BuildStatusChangeEmail("Chai Point", "New", "In Progress", "We started the build", "http://localhost/dashboard")

	if subject != "Update: Your Chai Point Website Request - In Progress" {
		t.Errorf("subject = %q", subject)
	}
	for _, want := range []string{"OLD STATUS: New", "NEW STATUS: In Progress", "We started the build", "http://localhost/dashboard"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestBuildStatusChangeEmailDefaultNotes(t *testing.T) {
	_, body := BuildStatusChangeEmail("Chai Point", "New", "Contacted", "", "")

	if !strings.Contains(body, "Your request is being processed.") {
		t.Error("empty admin notes must fall back to the default line")
	}
}

func TestBuildNewRequestEmail(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		budget   string
		loggedIn bool
		want     []string
	}{
		{"logged in with budget", "5000-10000", true, []string{"Budget:          5000-10000", "Logged In:       Yes"}},
		{"anonymous without budget", "", false, []string{"Budget:          Not specified", "Logged In:       No (Anonymous)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body := BuildNewRequestEmail("Chai Point", "owner@chaipoint.example", "ecommerce", "Online chai store", tt.budget, tt.loggedIn, now)

			if subject != "New Website Request Received – Arka" {
				t.Errorf("subject = %q", subject)
			}
			for _, want := range append(tt.want, "2025-03-14 09:00:00", "Online chai store") {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
		})
	}
}

func TestBuildConfirmationEmail(t *testing.T) {
	subject, body := BuildConfirmationEmail("Chai Point", "owner@chaipoint.example")

	if subject != "Your Website Request Received – Arka" {
		t.Errorf("subject = %q", subject)
	}
	for _, want := range []string{"Hi Chai Point,", "within 24 hours", "owner@chaipoint.example"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestBuildContactEmail(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	subject, body := BuildContactEmail("Priya", "priya@example.com", "Do you build blogs?", now)

	if subject != "New Contact Message – Arka" {
		t.Errorf("subject = %q", subject)
	}
	for _, want := range []string{"Name:        Priya", "Do you build blogs?", "priya@example.com"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}
