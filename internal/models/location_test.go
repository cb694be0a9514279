package models

import "testing"

func TestFormatRegionName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", UnknownRegionName},
		{"   ", UnknownRegionName},
		{"BAY_OF_PLENTY", "Bay Of Plenty"},
		{"WELLINGTON", "Wellington"},
	}
	for _, tt := range tests {
		if got := FormatRegionName(tt.in); got != tt.want {
			t.Errorf("FormatRegionName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLocationMapName(t *testing.T) {
	m := BuildLocationMap(
		[]Location{{ID: "C1", Name: "Central", Region: "WELLINGTON"}},
		[]EnrolmentLocation{
			{ID: "L1", DisplayName: "Te Aro", ClinicLocationID: "C1"},
			{ID: "L2", Name: "karori-clinic", ClinicLocationID: "C1"},
			{ID: "L3", DisplayName: "Remote", ClinicLocationID: "C9"},
		},
	)

	tests := []struct {
		id, want string
	}{
		{"L1", "Te Aro (Wellington)"},
		{"L2", "karori-clinic (Wellington)"},
		{"L3", "Remote (Unknown Region)"},
		{"L404", OnlineLocationName},
	}
	for _, tt := range tests {
		if got := m.Name(tt.id); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := (EnrolmentLocation{Name: "plain", DisplayName: "Shown"}).DisplayLabel(); got != "Shown" {
		t.Errorf("DisplayLabel() = %q, want Shown", got)
	}
	if got := (EnrolmentLocation{Name: "plain"}).DisplayLabel(); got != "plain" {
		t.Errorf("DisplayLabel() = %q, want plain", got)
	}
}
