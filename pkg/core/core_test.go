package core

import (
	"encoding/json"
	"testing"
)

func TestParseMangaID(t *testing.T) {
	tests := []struct {
		in           string
		wantProvider string
		wantID       string
		wantErr      bool
	}{
		{"mgd:abc", "mgd", "abc", false},
		{"abc", "dflt", "abc", false},
		{"mgd:a:b", "mgd", "a:b", false},
		{"", "", "", true},
		{":abc", "", "", true},
		{"mgd:", "", "", true},
	}

	for _, tt := range tests {
		provider, id, err := ParseMangaID(tt.in, "dflt")
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMangaID(%q): got err %v, want err %v", tt.in, err, tt.wantErr)
			continue
		}
		if provider != tt.wantProvider || id != tt.wantID {
			t.Errorf("ParseMangaID(%q): got (%q, %q), want (%q, %q)", tt.in, provider, id, tt.wantProvider, tt.wantID)
		}
	}

	if got := FormatMangaID("mgd", "abc"); got != "mgd:abc" {
		t.Errorf("FormatMangaID: got %q, want %q", got, "mgd:abc")
	}
}

func TestFilterJSON(t *testing.T) {
	in := []Filter{
		TextFilter("Title", "one piece"),
		ToggleFilter("Japanese", "originalLanguage=ja", StateExcluded),
		SortFilter("Sort", 2, true),
	}
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out []Filter
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out[0].Kind != FilterText || out[0].TextValue() != "one piece" {
		t.Errorf("text filter: got %+v", out[0])
	}
	if state, ok := out[1].IntValue(); !ok || state != StateExcluded || out[1].ID != "originalLanguage=ja" {
		t.Errorf("toggle filter: got %+v", out[1])
	}
	if out[2].Sort == nil || out[2].Sort.Index != 2 || !out[2].Sort.Ascending {
		t.Errorf("sort filter: got %+v", out[2])
	}
}

func TestUnknownFilterKind(t *testing.T) {
	var f Filter
	if err := json.Unmarshal([]byte(`{"kind":"range","name":"Year"}`), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.Kind != FilterUnknown {
		t.Errorf("kind: got %s, want unknown", f.Kind)
	}
}

func TestFilterIntValue(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		filter    Filter
		wantValue int
		wantOK    bool
	}{
		{Filter{Bool: &yes}, 1, true},
		{Filter{Bool: &no}, 0, true},
		{SelectFilter("Mode", 1), 1, true},
		{Filter{}, 0, false},
	}
	for i, tt := range tests {
		value, ok := tt.filter.IntValue()
		if value != tt.wantValue || ok != tt.wantOK {
			t.Errorf("case %d: got (%d, %v), want (%d, %v)", i, value, ok, tt.wantValue, tt.wantOK)
		}
	}
}

func TestEnumText(t *testing.T) {
	raw, err := json.Marshal(Manga{ID: "a", Title: "T", Status: StatusHiatus, Rating: RatingSuggestive, Viewer: ViewerVertical})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"a","title":"T","status":"hiatus","rating":"suggestive","viewer":"vertical"}`
	if string(raw) != want {
		t.Errorf("got %s, want %s", raw, want)
	}

	if got := ParseStatus(" Completed "); got != StatusCompleted {
		t.Errorf("ParseStatus: got %s, want completed", got)
	}
	if got := ParseStatus("paused"); got != StatusUnknown {
		t.Errorf("ParseStatus: got %s, want unknown", got)
	}
}
