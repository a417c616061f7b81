package canvas

// Position is a point in template coordinate space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a rectangle extent in layout units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Zone is a named rectangular region within a template. Zones are declared
// once per template and shared by every canvas instantiated from it.
type Zone struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Position Position `json:"position"`
	Size     Size     `json:"size"`
	Color    string   `json:"color"`
	Icon     string   `json:"icon,omitempty"`

	// AllowedTypes restricts which content types may be auto-placed into
	// this zone. A nil slice means the zone accepts nothing automatically;
	// manual placement is always allowed.
	AllowedTypes []string `json:"allowedTypes,omitempty"`
}

// Accepts reports whether contentType may be auto-placed into the zone.
func (z Zone) Accepts(contentType string) bool {
	for _, t := range z.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// Template defines the layout of a canvas. Templates never mutate at
// runtime; the catalog below is the complete process-wide set.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	DefaultSize Size   `json:"defaultSize"`
	Zones       []Zone `json:"zones"`

	// AutoPlace marks templates whose zones carry type constraints and may
	// be populated by the placement engine. Freeform templates set this to
	// false and are populated by manual placement only.
	AutoPlace bool `json:"autoPlace"`
}

// clone returns a deep copy of the template.
func (t Template) clone() Template {
	c := t
	c.Zones = make([]Zone, len(t.Zones))
	for i, z := range t.Zones {
		zc := z
		if z.AllowedTypes != nil {
			zc.AllowedTypes = append([]string(nil), z.AllowedTypes...)
		}
		c.Zones[i] = zc
	}
	return c
}

// Get returns the template with the given id. The second return value is
// false when the id is unknown; callers must treat that as a recoverable
// condition, never a fatal one.
func Get(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t.clone(), true
		}
	}
	return Template{}, false
}

// List returns every template in declaration order. The order is stable
// across runs.
func List() []Template {
	out := make([]Template, len(templates))
	for i, t := range templates {
		out[i] = t.clone()
	}
	return out
}

// templates is the built-in catalog. IDs are stable string keys referenced
// by stored canvases; removing an entry strands existing canvases of that
// template (they remain readable but lose auto-placement).
var templates = []Template{
	{
		ID:          "swot",
		Name:        "SWOT Analysis",
		Description: "Strengths, Weaknesses, Opportunities, Threats",
		Icon:        "◈",
		DefaultSize: Size{Width: 100, Height: 40},
		AutoPlace:   true,
		Zones: []Zone{
			{ID: "s", Name: "strengths", Label: "STRENGTHS", Position: Position{X: 0, Y: 0}, Size: Size{Width: 50, Height: 20}, Color: "#00ff41", AllowedTypes: []string{"swot_s"}, Icon: "▲"},
			{ID: "w", Name: "weaknesses", Label: "WEAKNESSES", Position: Position{X: 50, Y: 0}, Size: Size{Width: 50, Height: 20}, Color: "#ff6b6b", AllowedTypes: []string{"swot_w"}, Icon: "▼"},
			{ID: "o", Name: "opportunities", Label: "OPPORTUNITIES", Position: Position{X: 0, Y: 20}, Size: Size{Width: 50, Height: 20}, Color: "#4ecdc4", AllowedTypes: []string{"swot_o"}, Icon: "►"},
			{ID: "t", Name: "threats", Label: "THREATS", Position: Position{X: 50, Y: 20}, Size: Size{Width: 50, Height: 20}, Color: "#ff8c00", AllowedTypes: []string{"swot_t"}, Icon: "◄"},
		},
	},
	{
		ID:          "bmc",
		Name:        "Business Model Canvas",
		Description: "9-box business model framework",
		Icon:        "▣",
		DefaultSize: Size{Width: 150, Height: 50},
		AutoPlace:   true,
		Zones: []Zone{
			{ID: "kp", Name: "key_partners", Label: "KEY PARTNERS", Position: Position{X: 0, Y: 0}, Size: Size{Width: 30, Height: 30}, Color: "#9b59b6", Icon: "◆"},
			{ID: "ka", Name: "key_activities", Label: "KEY ACTIVITIES", Position: Position{X: 30, Y: 0}, Size: Size{Width: 30, Height: 15}, Color: "#3498db", Icon: "★"},
			{ID: "kr", Name: "key_resources", Label: "KEY RESOURCES", Position: Position{X: 30, Y: 15}, Size: Size{Width: 30, Height: 15}, Color: "#3498db", Icon: "■"},
			{ID: "vp", Name: "value_props", Label: "VALUE PROPOSITIONS", Position: Position{X: 60, Y: 0}, Size: Size{Width: 30, Height: 30}, Color: "#e74c3c", Icon: "♦"},
			{ID: "cr", Name: "customer_rel", Label: "CUSTOMER RELATIONSHIPS", Position: Position{X: 90, Y: 0}, Size: Size{Width: 30, Height: 15}, Color: "#2ecc71", Icon: "●"},
			{ID: "ch", Name: "channels", Label: "CHANNELS", Position: Position{X: 90, Y: 15}, Size: Size{Width: 30, Height: 15}, Color: "#2ecc71", Icon: "→"},
			{ID: "cs", Name: "customer_seg", Label: "CUSTOMER SEGMENTS", Position: Position{X: 120, Y: 0}, Size: Size{Width: 30, Height: 30}, Color: "#f39c12", Icon: "●"},
			{ID: "cost", Name: "cost_structure", Label: "COST STRUCTURE", Position: Position{X: 0, Y: 30}, Size: Size{Width: 75, Height: 20}, Color: "#95a5a6", Icon: "$"},
			{ID: "rev", Name: "revenue_streams", Label: "REVENUE STREAMS", Position: Position{X: 75, Y: 30}, Size: Size{Width: 75, Height: 20}, Color: "#27ae60", Icon: "$"},
		},
	},
	{
		ID:          "lean",
		Name:        "Lean Canvas",
		Description: "Lean startup canvas for problem/solution fit",
		Icon:        "◇",
		DefaultSize: Size{Width: 150, Height: 50},
		AutoPlace:   true,
		Zones: []Zone{
			{ID: "problem", Name: "problem", Label: "PROBLEM", Position: Position{X: 0, Y: 0}, Size: Size{Width: 30, Height: 20}, Color: "#e74c3c", Icon: "!"},
			{ID: "solution", Name: "solution", Label: "SOLUTION", Position: Position{X: 30, Y: 0}, Size: Size{Width: 30, Height: 20}, Color: "#2ecc71", Icon: "✓"},
			{ID: "uvp", Name: "unique_value", Label: "UNIQUE VALUE PROP", Position: Position{X: 60, Y: 0}, Size: Size{Width: 30, Height: 20}, Color: "#9b59b6", Icon: "★"},
			{ID: "unfair", Name: "unfair_advantage", Label: "UNFAIR ADVANTAGE", Position: Position{X: 90, Y: 0}, Size: Size{Width: 30, Height: 20}, Color: "#f39c12", Icon: "◆"},
			{ID: "segments", Name: "customer_segments", Label: "CUSTOMER SEGMENTS", Position: Position{X: 120, Y: 0}, Size: Size{Width: 30, Height: 20}, Color: "#3498db", Icon: "●"},
			{ID: "metrics", Name: "key_metrics", Label: "KEY METRICS", Position: Position{X: 0, Y: 20}, Size: Size{Width: 50, Height: 15}, Color: "#1abc9c", Icon: "#"},
			{ID: "channels", Name: "channels", Label: "CHANNELS", Position: Position{X: 50, Y: 20}, Size: Size{Width: 50, Height: 15}, Color: "#e67e22", Icon: "→"},
			{ID: "costs", Name: "cost_structure", Label: "COST STRUCTURE", Position: Position{X: 0, Y: 35}, Size: Size{Width: 75, Height: 15}, Color: "#7f8c8d", Icon: "$"},
			{ID: "revenue", Name: "revenue_streams", Label: "REVENUE STREAMS", Position: Position{X: 75, Y: 35}, Size: Size{Width: 75, Height: 15}, Color: "#27ae60", Icon: "$"},
		},
	},
	{
		ID:          "empathy",
		Name:        "Empathy Map",
		Description: "Understand your customer's perspective",
		Icon:        "♥",
		DefaultSize: Size{Width: 100, Height: 50},
		AutoPlace:   true,
		Zones: []Zone{
			{ID: "thinks", Name: "thinks_feels", Label: "THINKS & FEELS", Position: Position{X: 25, Y: 0}, Size: Size{Width: 50, Height: 15}, Color: "#e74c3c", Icon: "♥"},
			{ID: "sees", Name: "sees", Label: "SEES", Position: Position{X: 0, Y: 15}, Size: Size{Width: 25, Height: 20}, Color: "#3498db", Icon: "◉"},
			{ID: "persona", Name: "persona", Label: "PERSONA", Position: Position{X: 25, Y: 15}, Size: Size{Width: 50, Height: 20}, Color: "#9b59b6", Icon: "●"},
			{ID: "hears", Name: "hears", Label: "HEARS", Position: Position{X: 75, Y: 15}, Size: Size{Width: 25, Height: 20}, Color: "#2ecc71", Icon: "◎"},
			{ID: "says", Name: "says_does", Label: "SAYS & DOES", Position: Position{X: 25, Y: 35}, Size: Size{Width: 50, Height: 15}, Color: "#f39c12", Icon: "◈"},
		},
	},
	{
		ID:          "journey",
		Name:        "User Journey Map",
		Description: "Map the customer experience over time",
		Icon:        "→",
		DefaultSize: Size{Width: 150, Height: 40},
		AutoPlace:   false,
		Zones: []Zone{
			{ID: "aware", Name: "awareness", Label: "AWARENESS", Position: Position{X: 0, Y: 0}, Size: Size{Width: 30, Height: 40}, Color: "#3498db", Icon: "1"},
			{ID: "consider", Name: "consideration", Label: "CONSIDERATION", Position: Position{X: 30, Y: 0}, Size: Size{Width: 30, Height: 40}, Color: "#9b59b6", Icon: "2"},
			{ID: "decide", Name: "decision", Label: "DECISION", Position: Position{X: 60, Y: 0}, Size: Size{Width: 30, Height: 40}, Color: "#e74c3c", Icon: "3"},
			{ID: "purchase", Name: "purchase", Label: "PURCHASE", Position: Position{X: 90, Y: 0}, Size: Size{Width: 30, Height: 40}, Color: "#2ecc71", Icon: "4"},
			{ID: "retain", Name: "retention", Label: "RETENTION", Position: Position{X: 120, Y: 0}, Size: Size{Width: 30, Height: 40}, Color: "#f39c12", Icon: "5"},
		},
	},
	{
		ID:          "kanban",
		Name:        "Kanban Board",
		Description: "Track work in progress",
		Icon:        "▥",
		DefaultSize: Size{Width: 120, Height: 40},
		AutoPlace:   false,
		Zones: []Zone{
			{ID: "backlog", Name: "backlog", Label: "BACKLOG", Position: Position{X: 0, Y: 0}, Size: Size{Width: 30, Height: 40}, Color: "#7f8c8d", Icon: "□"},
			{ID: "todo", Name: "todo", Label: "TO DO", Position: Position{X: 30, Y: 0}, Size: Size{Width: 30, Height: 40}, Color: "#3498db", Icon: "○"},
			{ID: "progress", Name: "in_progress", Label: "IN PROGRESS", Position: Position{X: 60, Y: 0}, Size: Size{Width: 30, Height: 40}, Color: "#f39c12", Icon: "◐"},
			{ID: "done", Name: "done", Label: "DONE", Position: Position{X: 90, Y: 0}, Size: Size{Width: 30, Height: 40}, Color: "#2ecc71", Icon: "●"},
		},
	},
	{
		ID:          "brainstorm",
		Name:        "Brainstorm",
		Description: "Freeform sticky notes canvas",
		Icon:        "✦",
		DefaultSize: Size{Width: 200, Height: 100},
		AutoPlace:   false,
		Zones:       nil, // freeform placement only
	},
	{
		ID:          "mindmap",
		Name:        "Mind Map",
		Description: "Radial idea organization",
		Icon:        "◉",
		DefaultSize: Size{Width: 150, Height: 80},
		AutoPlace:   false,
		Zones: []Zone{
			{ID: "center", Name: "center", Label: "CENTRAL IDEA", Position: Position{X: 60, Y: 30}, Size: Size{Width: 30, Height: 20}, Color: "#e74c3c", Icon: "◉"},
		},
	},
	{
		ID:          "personas",
		Name:        "Persona Gallery",
		Description: "Display multiple personas",
		Icon:        "●",
		DefaultSize: Size{Width: 120, Height: 60},
		AutoPlace:   true,
		Zones: []Zone{
			{ID: "p1", Name: "persona_1", Label: "PERSONA 1", Position: Position{X: 0, Y: 0}, Size: Size{Width: 40, Height: 30}, Color: "#3498db", AllowedTypes: []string{"persona"}, Icon: "●"},
			{ID: "p2", Name: "persona_2", Label: "PERSONA 2", Position: Position{X: 40, Y: 0}, Size: Size{Width: 40, Height: 30}, Color: "#9b59b6", AllowedTypes: []string{"persona"}, Icon: "●"},
			{ID: "p3", Name: "persona_3", Label: "PERSONA 3", Position: Position{X: 80, Y: 0}, Size: Size{Width: 40, Height: 30}, Color: "#2ecc71", AllowedTypes: []string{"persona"}, Icon: "●"},
			{ID: "pain", Name: "pain_points", Label: "PAIN POINTS", Position: Position{X: 0, Y: 30}, Size: Size{Width: 60, Height: 30}, Color: "#e74c3c", AllowedTypes: []string{"painpoint"}, Icon: "▲"},
			{ID: "goals", Name: "goals", Label: "GOALS", Position: Position{X: 60, Y: 30}, Size: Size{Width: 60, Height: 30}, Color: "#f39c12", AllowedTypes: []string{"goal"}, Icon: "★"},
		},
	},
}
