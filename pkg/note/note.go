// Package note defines the content items that get placed on canvases.
//
// Notes live in the durable store (package store) and are referenced from
// canvas nodes by id. The canvas and replication core never inspect note
// bodies; they only care about the type tag, which drives auto-placement.
package note

import (
	"encoding/json"
	"time"
)

// Type is the closed set of content types. The zone constraints in the
// template catalog reference these tags.
type Type string

const (
	TypeNote      Type = "note"
	TypeIdea      Type = "idea"
	TypePersona   Type = "persona"
	TypePainPoint Type = "painpoint"
	TypeGoal      Type = "goal"
	TypeQuestion  Type = "question"
	TypeSwotS     Type = "swot_s"
	TypeSwotW     Type = "swot_w"
	TypeSwotO     Type = "swot_o"
	TypeSwotT     Type = "swot_t"
)

// Types lists every known type in a stable order.
func Types() []Type {
	return []Type{
		TypeNote, TypeIdea, TypePersona, TypePainPoint, TypeGoal,
		TypeQuestion, TypeSwotS, TypeSwotW, TypeSwotO, TypeSwotT,
	}
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}

// Note is a single content item.
type Note struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Metadata  Metadata  `json:"metadata,omitzero"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Metadata carries the per-type structured payload. Known variants are
// typed fields; anything a future producer adds lands in Extra and round
// trips untouched.
type Metadata struct {
	Persona *PersonaMeta `json:"persona,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// PersonaMeta is the structured payload of persona notes.
type PersonaMeta struct {
	Role         string            `json:"role,omitempty"`
	Quote        string            `json:"quote,omitempty"`
	Goals        []string          `json:"goals,omitempty"`
	PainPoints   []string          `json:"painPoints,omitempty"`
	Demographics map[string]string `json:"demographics,omitempty"`
}

// IsZero reports whether the metadata carries no payload at all.
func (m Metadata) IsZero() bool {
	return m.Persona == nil && len(m.Extra) == 0
}

// MarshalJSON flattens the known variants and the extra fields into a
// single object.
func (m Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m.Extra)+1)
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.Persona != nil {
		raw, err := json.Marshal(m.Persona)
		if err != nil {
			return nil, err
		}
		out["persona"] = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits known variants out of the object and keeps the rest
// in Extra.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = Metadata{}
	for k, v := range raw {
		switch k {
		case "persona":
			var p PersonaMeta
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			m.Persona = &p
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]json.RawMessage)
			}
			m.Extra[k] = v
		}
	}
	return nil
}

// Icon returns the display glyph for a note type.
func (t Type) Icon() string {
	switch t {
	case TypeNote:
		return "📝"
	case TypeIdea:
		return "💡"
	case TypePersona:
		return "👤"
	case TypePainPoint:
		return "🔥"
	case TypeGoal:
		return "🎯"
	case TypeQuestion:
		return "❓"
	case TypeSwotS:
		return "💪"
	case TypeSwotW:
		return "⚠️"
	case TypeSwotO:
		return "🚀"
	case TypeSwotT:
		return "⛔"
	}
	return "📌"
}
