package project

import (
	"testing"

	"github.com/soocke/facelog-go/domain/camera"
)

func TestProject_PhotoFor(t *testing.T) {
	var nilProject *Project
	if _, ok := nilProject.PhotoFor("2024-01-01"); ok {
		t.Fatalf("nil project should have no photos")
	}
	p := &Project{Name: "me", Photos: map[string]camera.Photo{
		"2024-01-01": {URI: "/photos/a.png"},
		"2024-01-02": {URI: ""},
	}}
	ph, ok := p.PhotoFor("2024-01-01")
	if !ok || ph.URI != "/photos/a.png" {
		t.Fatalf("unexpected photo %+v ok=%v", ph, ok)
	}
	if _, ok := p.PhotoFor("2024-01-02"); ok {
		t.Fatalf("empty uri should not count as a stored photo")
	}
	if _, ok := p.PhotoFor("2024-01-03"); ok {
		t.Fatalf("missing key reported as present")
	}
}
