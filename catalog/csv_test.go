package catalog

import (
	"strings"
	"testing"
)

const sampleCSV = `nom,resume,date,rate,cover,genre,director,imdb_id
Inception,"A thief steals secrets through dreams.",2010,8.8,http://img/0.jpg,"Sci-Fi, Thriller",Christopher Nolan,tt1375666
The Room,"A banker's life unravels.",2003,3.7,,Drama,Tommy Wiseau,
`

func TestRead(t *testing.T) {
	s, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	m, ok := s.ByID("0")
	if !ok {
		t.Fatal("first row should get ID 0")
	}
	if m.Title != "Inception" || m.ReleaseYear != 2010 || m.Rating != 8.8 {
		t.Errorf("unexpected record: %+v", m)
	}
	if m.ExternalID != "tt1375666" {
		t.Errorf("ExternalID = %q", m.ExternalID)
	}

	m, _ = s.ByID("1")
	if m.ExternalID != "" || m.CoverURL != "" {
		t.Errorf("missing cells should default to empty, got %+v", m)
	}
}

func TestReadDefaultsMissingColumns(t *testing.T) {
	s, err := Read(strings.NewReader("nom,genre\nSomething,Drama\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	m, _ := s.ByID("0")
	if m.Synopsis != "" || m.Director != "" {
		t.Errorf("absent columns should default to empty strings: %+v", m)
	}
	if m.HasRating() {
		t.Error("absent rating should read as NaN")
	}
	if m.ReleaseYear != 0 {
		t.Errorf("absent year should default to 0, got %d", m.ReleaseYear)
	}
}

func TestReadRaggedRows(t *testing.T) {
	s, err := Read(strings.NewReader("nom,resume,date\nShort\nFull,Has a synopsis,1999\n"))
	if err != nil {
		t.Fatalf("ragged rows should not fail: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	m, _ := s.ByID("1")
	if m.ReleaseYear != 1999 {
		t.Errorf("ReleaseYear = %d, want 1999", m.ReleaseYear)
	}
}

func TestReadEmptyCatalog(t *testing.T) {
	if _, err := Read(strings.NewReader("nom,resume\n")); err == nil {
		t.Error("header-only input should be an error")
	}
}
