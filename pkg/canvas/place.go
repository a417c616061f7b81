package canvas

// Item is a content-item reference submitted to the placement engine.
type Item struct {
	ID   string
	Type string
}

// Placement is one computed node position produced by [AutoPlace]. Callers
// apply placements through the persistence gateway's upsert, so re-placing
// an already-placed content id moves its node rather than duplicating it.
type Placement struct {
	ContentID string
	ZoneID    string
	Position  Position
	Size      Size
	Color     string
}

// Vertical stacking rule inside a zone: first row starts below the zone
// label, each subsequent row is rowHeight+rowGap further down.
const (
	placeInsetX  = 2
	placeInsetY  = 3
	placeRowStep = 3
	placeRowH    = 2
)

// AutoPlace assigns each item to the first zone of the template whose
// allowed types include the item's type, in template declaration order.
// Items matching no zone are skipped; the caller detects undersized
// placement by comparing len(result) against len(items).
//
// Zone counters are scoped to a single invocation. Repeated runs over
// already-placed items restack from the top of each zone, which the upsert
// rule turns into moves, not duplicates.
//
// Templates with AutoPlace disabled yield no placements; that is a
// deliberate no-op, not an error.
func AutoPlace(t Template, items []Item) []Placement {
	if !t.AutoPlace {
		return nil
	}

	counters := make(map[string]int, len(t.Zones))
	var out []Placement

	for _, item := range items {
		zone, ok := matchZone(t, item.Type)
		if !ok {
			continue
		}

		c := counters[zone.ID]
		counters[zone.ID] = c + 1

		out = append(out, Placement{
			ContentID: item.ID,
			ZoneID:    zone.ID,
			Position: Position{
				X: zone.Position.X + placeInsetX,
				Y: zone.Position.Y + placeInsetY + float64(c*placeRowStep),
			},
			Size:  Size{Width: zone.Size.Width - 2*placeInsetX, Height: placeRowH},
			Color: zone.Color,
		})
	}
	return out
}

// matchZone finds the first zone in declaration order accepting the given
// content type. First match wins when several zones accept the same type.
func matchZone(t Template, contentType string) (Zone, bool) {
	for _, z := range t.Zones {
		if z.Accepts(contentType) {
			return z, true
		}
	}
	return Zone{}, false
}
