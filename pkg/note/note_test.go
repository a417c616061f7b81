package note

import (
	"encoding/json"
	"testing"
)

func TestTypeValid(t *testing.T) {
	for _, typ := range Types() {
		if !typ.Valid() {
			t.Errorf("Type(%q).Valid() = false, want true", typ)
		}
	}
	if Type("sketch").Valid() {
		t.Error("unknown type reported valid")
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	in := Metadata{
		Persona: &PersonaMeta{
			Role:       "Operations lead",
			Goals:      []string{"ship faster"},
			PainPoints: []string{"manual deploys"},
		},
		Extra: map[string]json.RawMessage{
			"priority": json.RawMessage(`"high"`),
		},
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Metadata
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Persona == nil || out.Persona.Role != "Operations lead" {
		t.Errorf("persona variant lost: %+v", out.Persona)
	}
	if string(out.Extra["priority"]) != `"high"` {
		t.Errorf("extra field lost: %s", out.Extra["priority"])
	}
}

func TestMetadataUnknownFieldsSurvive(t *testing.T) {
	// A payload written by a newer producer must round trip untouched.
	src := []byte(`{"persona":{"role":"PM"},"budget":{"amount":12000,"currency":"EUR"}}`)

	var m Metadata
	if err := json.Unmarshal(src, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Persona == nil || m.Persona.Role != "PM" {
		t.Fatalf("persona variant = %+v", m.Persona)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var check map[string]json.RawMessage
	if err := json.Unmarshal(data, &check); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if _, ok := check["budget"]; !ok {
		t.Error("unknown field dropped on round trip")
	}
}

func TestMetadataIsZero(t *testing.T) {
	if !(Metadata{}).IsZero() {
		t.Error("empty metadata not zero")
	}
	if (Metadata{Persona: &PersonaMeta{}}).IsZero() {
		t.Error("metadata with persona variant reported zero")
	}
}
