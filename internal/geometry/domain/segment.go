package geometry

// Coordinate is a lon/lat pair.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Segment is a directed piece of travelled geometry tagged with how many
// times it was traversed. Segments are oriented so From.Lon <= To.Lon.
type Segment struct {
	From  Coordinate
	To    Coordinate
	Count int
}

// Polyline is a maximal run of contiguous equal-count segments, with the
// count normalized against the global maximum for coloring.
type Polyline struct {
	Points    []Coordinate
	Count     int
	Intensity float64
}

// CoupleSegments turns traversed paths into grouped directed segments.
// Each consecutive coordinate couple of each path counts one traversal;
// couples are oriented west-to-east before grouping so both directions
// of the same track collapse together. Group order is first-seen, which
// keeps the output traversable for the merge pass.
func CoupleSegments(paths [][]Coordinate) []Segment {
	type key struct{ from, to Coordinate }
	index := make(map[key]int)
	var segments []Segment

	for _, path := range paths {
		for i := 0; i+1 < len(path); i++ {
			from, to := path[i], path[i+1]
			if from.Lon > to.Lon {
				from, to = to, from
			}
			k := key{from, to}
			if at, ok := index[k]; ok {
				segments[at].Count++
				continue
			}
			index[k] = len(segments)
			segments = append(segments, Segment{From: from, To: to, Count: 1})
		}
	}
	return segments
}

// MergePolylines folds consecutive segments into polylines. A segment
// extends the current polyline exactly when its count equals the
// previous segment's count and its start point equals the previous
// segment's end point; coordinate equality is exact, not tolerance
// based. One polyline is emitted per maximal contiguous run.
func MergePolylines(segments []Segment) []Polyline {
	if len(segments) == 0 {
		return nil
	}

	maxCount := segments[0].Count
	for _, segment := range segments {
		if segment.Count > maxCount {
			maxCount = segment.Count
		}
	}
	intensity := func(count int) float64 {
		if maxCount <= 1 {
			return 0
		}
		return float64(count-1) / float64(maxCount-1)
	}

	var polylines []Polyline
	points := []Coordinate{segments[0].From}
	for i, segment := range segments {
		if i+1 < len(segments) && contiguous(segment, segments[i+1]) {
			points = append(points, segments[i+1].From)
			continue
		}
		points = append(points, segment.To)
		polylines = append(polylines, Polyline{
			Points:    points,
			Count:     segment.Count,
			Intensity: intensity(segment.Count),
		})
		if i+1 < len(segments) {
			points = []Coordinate{segments[i+1].From}
		}
	}
	return polylines
}

func contiguous(current, next Segment) bool {
	return next.Count == current.Count && next.From == current.To
}
