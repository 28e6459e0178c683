package matcher

import "tracklink/internal/library"

// confirmPool gathers deep-inspection candidates: the album bucket, records
// inside the duration window nearest first, then the primary artist's records.
// The pool is deduplicated by persistent id and capped.
func (r *Resolver) confirmPool(q query) []*library.Record {
	var pool []*library.Record
	seen := make(map[string]struct{})
	full := func() bool {
		return r.opts.PerRowCap > 0 && len(pool) >= r.opts.PerRowCap
	}
	add := func(recs []*library.Record) {
		for _, rec := range recs {
			if full() {
				return
			}
			if rec.PersistentID == "" || !rec.HasLocation() {
				continue
			}
			if _, dup := seen[rec.PersistentID]; dup {
				continue
			}
			seen[rec.PersistentID] = struct{}{}
			pool = append(pool, rec)
		}
	}

	add(r.index.ByAlbum(q.album))
	if q.seconds > 0 {
		for _, seconds := range r.durationWindow(q.seconds) {
			if full() {
				break
			}
			add(r.index.BySeconds(seconds))
		}
	}
	if !full() {
		add(r.index.ArtistPrefix(q.primary))
	}
	return pool
}

// durationWindow lists the whole-second durations that agree with seconds,
// nearest first, shorter before longer at equal distance.
func (r *Resolver) durationWindow(seconds int) []int {
	window := []int{seconds}
	limit := max(seconds, r.opts.Tolerance.FloorSeconds)
	for d := 1; d <= limit && r.opts.Tolerance.Within(seconds, seconds+d); d++ {
		if lower := seconds - d; lower > 0 && r.opts.Tolerance.Within(seconds, lower) {
			window = append(window, lower)
		}
		window = append(window, seconds+d)
	}
	return window
}
