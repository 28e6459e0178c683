package matcher

import (
	"tracklink/internal/library"
	"tracklink/internal/textutil"
)

func (r *Resolver) codeTier(q query) *library.Record {
	if q.code == "" {
		return nil
	}
	rec, ok := r.index.ByCode(q.code)
	if !ok {
		return nil
	}
	return rec
}

func (r *Resolver) albumTier(q query) *library.Record {
	bucket := r.index.ByAlbum(q.album)
	if len(bucket) == 0 {
		return nil
	}

	if q.rec.Track > 0 {
		var positional []*library.Record
		for _, cand := range bucket {
			if cand.DiscNumber() == q.disc && cand.Track == q.rec.Track {
				positional = append(positional, cand)
			}
		}
		if len(positional) > 0 {
			if q.seconds <= 0 {
				return positional[0]
			}
			if best := r.closest(positional, q.seconds); best != nil {
				return best
			}
		}
	}

	for _, cand := range bucket {
		if cand.Normalized.SimpleTitle == q.simple && r.opts.Tolerance.Within(cand.Seconds, q.seconds) {
			return cand
		}
	}
	return nil
}

func (r *Resolver) keyTier(q query) *library.Record {
	for _, key := range r.keyVariants(q) {
		bucket := r.index.Exact(key)
		if len(bucket) == 0 {
			continue
		}
		if best := r.closest(bucket, q.seconds); best != nil {
			return best
		}
		return bucket[0]
	}
	return nil
}

// keyVariants orders exact keys most specific first: primary artist before the
// full credit, simplified title before the original, album-suffixed first.
func (r *Resolver) keyVariants(q query) []string {
	artists := []string{q.primary}
	if q.artist != q.primary {
		artists = append(artists, q.artist)
	}
	titles := []string{q.simple}
	if q.title != q.simple {
		titles = append(titles, q.title)
	}

	seen := make(map[string]struct{})
	var keys []string
	add := func(key string) {
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	for _, artist := range artists {
		if artist == "" {
			continue
		}
		for _, title := range titles {
			if title == "" {
				continue
			}
			if q.album != "" {
				add(library.Key(artist, title, q.album))
			}
			add(library.Key(artist, title))
		}
	}
	return keys
}

func (r *Resolver) fuzzyTier(q query) *library.Record {
	if q.simple == "" {
		return nil
	}
	pool := r.index.ByAlbum(q.album)
	if len(pool) == 0 {
		pool = r.index.ArtistPrefix(q.primary)
	}

	var (
		best      *library.Record
		bestScore = -1
	)
	for _, cand := range pool {
		if !r.opts.Tolerance.Within(cand.Seconds, q.seconds) {
			continue
		}
		score := textutil.TokenSetRatio(q.simple, cand.Normalized.Title)
		if score > bestScore {
			best = cand
			bestScore = score
		}
	}
	if best == nil || bestScore < r.opts.FuzzyThreshold {
		return nil
	}
	return best
}

// closest returns the tolerance-passing candidate with the smallest duration
// delta; ties keep bucket order.
func (r *Resolver) closest(cands []*library.Record, seconds int) *library.Record {
	var (
		best      *library.Record
		bestDelta int
	)
	for _, cand := range cands {
		if !r.opts.Tolerance.Within(cand.Seconds, seconds) {
			continue
		}
		delta := r.opts.Tolerance.Delta(cand.Seconds, seconds)
		if best == nil || delta < bestDelta {
			best = cand
			bestDelta = delta
		}
	}
	return best
}
