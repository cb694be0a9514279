package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	OnlineLocationName = "Online"
	UnknownRegionName  = "Unknown Region"
)

type Location struct {
	ID     string `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Region string `json:"region" db:"region"`
}

type EnrolmentLocation struct {
	ID               string `json:"id" db:"id"`
	Name             string `json:"name" db:"name"`
	DisplayName      string `json:"displayName" db:"display_name"`
	ClinicLocationID string `json:"clinicLocationId" db:"clinic_location_id"`
}

// LocationOption is one entry of the location picker.
type LocationOption struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Region string `json:"region"`
	Name   string `json:"name"`
}

// LocationMap resolves enrolment location ids to display names.
type LocationMap map[string]string

func (m LocationMap) Name(id string) string {
	if name, ok := m[id]; ok {
		return name
	}
	return OnlineLocationName
}

// FormatRegionName turns an API region code such as "BAY_OF_PLENTY" into "Bay Of Plenty".
func FormatRegionName(region string) string {
	if strings.TrimSpace(region) == "" {
		return UnknownRegionName
	}
	return cases.Title(language.English).String(strings.ReplaceAll(region, "_", " "))
}

// BuildLocationMap labels every enrolment location as "<display name> (<region>)".
func BuildLocationMap(locations []Location, enrolment []EnrolmentLocation) LocationMap {
	regions := make(map[string]string, len(locations))
	for _, loc := range locations {
		regions[loc.ID] = loc.Region
	}

	m := make(LocationMap, len(enrolment))
	for _, el := range enrolment {
		m[el.ID] = el.Label(regions[el.ClinicLocationID])
	}
	return m
}

// DisplayLabel is the display name, or the plain name when none is set.
func (el EnrolmentLocation) DisplayLabel() string {
	if el.DisplayName != "" {
		return el.DisplayName
	}
	return el.Name
}

func (el EnrolmentLocation) Label(region string) string {
	return el.DisplayLabel() + " (" + FormatRegionName(region) + ")"
}
