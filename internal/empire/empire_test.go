package empire

import "testing"

func TestByID(t *testing.T) {
	tests := []struct {
		id        ID
		wantName  string
		wantNatal int
		wantOK    bool
	}{
		{Primus, "Humanos", 11, true},
		{Xilnah, "Robotiránidos", 12, true},
		{Navui, "Nómadas", 13, true},
		{Tora, "Legión de Hierro", 14, true},
		{Miradu, "Mercaderes", 15, true},
		{"zorg", "", 0, false},
		{"", "", 0, false},
	}

	for _, tt := range tests {
		cfg, ok := ByID(tt.id)
		if ok != tt.wantOK {
			t.Fatalf("ByID(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
		}
		if cfg.Name != tt.wantName || cfg.NatalPlanetNumber != tt.wantNatal {
			t.Fatalf("ByID(%q) = %+v", tt.id, cfg)
		}
		if IsValid(tt.id) != tt.wantOK {
			t.Fatalf("IsValid(%q) disagrees with ByID", tt.id)
		}
	}
}

func TestNameFallsBackToRawID(t *testing.T) {
	if got := Name(Primus); got != "Humanos" {
		t.Fatalf("Name(primus) = %q", got)
	}
	if got := Name("zorg"); got != "zorg" {
		t.Fatalf("Name(zorg) = %q, want raw id", got)
	}
}

func TestNatalNumbersAreDistinct(t *testing.T) {
	seen := map[int]ID{}
	for _, e := range Empires {
		if prev, dup := seen[e.NatalPlanetNumber]; dup {
			t.Fatalf("natal number %d shared by %s and %s", e.NatalPlanetNumber, prev, e.ID)
		}
		seen[e.NatalPlanetNumber] = e.ID
	}
}
