package library

import (
	"sort"
	"strings"
	"sync"

	"tracklink/internal/textutil"
)

// keySeparator joins normalized fields into exact-match keys.
const keySeparator = "|"

// Key joins normalized fields into an exact-match key.
func Key(parts ...string) string {
	return strings.Join(parts, keySeparator)
}

// Index is a set of multimaps over library records. Buckets keep snapshot
// order, which the matcher relies on for stable tie-breaks.
type Index struct {
	records []*Record

	exact          map[string][]*Record
	byTitle        map[string][]*Record
	byArtist       map[string][]*Record
	byAlbum        map[string][]*Record
	bySeconds      map[int][]*Record
	byTrackID      map[int]*Record
	byPersistentID map[string]*Record
	artists        []string

	mu     sync.RWMutex
	byCode map[string][]*Record
}

// Build indexes records that have a location. confirmed maps an ISRC to the
// persistent id whose file was confirmed to carry it; entries pointing at
// unknown ids are ignored.
func Build(records []Record, confirmed map[string]string) *Index {
	idx := &Index{
		exact:          make(map[string][]*Record),
		byTitle:        make(map[string][]*Record),
		byArtist:       make(map[string][]*Record),
		byAlbum:        make(map[string][]*Record),
		bySeconds:      make(map[int][]*Record),
		byTrackID:      make(map[int]*Record),
		byPersistentID: make(map[string]*Record),
		byCode:         make(map[string][]*Record),
	}

	for i := range records {
		if !records[i].HasLocation() {
			continue
		}
		rec := new(Record)
		*rec = records[i]
		if rec.Disc <= 0 {
			rec.Disc = 1
		}
		rec.Normalized = Normalized{
			Artist:      textutil.Normalize(rec.Artist),
			Title:       textutil.Normalize(rec.Title),
			SimpleTitle: textutil.Normalize(textutil.SimplifyTitle(rec.Title)),
			Album:       textutil.Normalize(rec.Album),
		}
		idx.add(rec)
	}

	idx.artists = make([]string, 0, len(idx.byArtist))
	for artist := range idx.byArtist {
		idx.artists = append(idx.artists, artist)
	}
	sort.Strings(idx.artists)

	codes := make([]string, 0, len(confirmed))
	for code := range confirmed {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if rec, ok := idx.byPersistentID[confirmed[code]]; ok {
			idx.attach(rec, code)
		}
	}
	return idx
}

func (idx *Index) add(rec *Record) {
	idx.records = append(idx.records, rec)
	n := rec.Normalized

	seen := make(map[string]struct{}, 4)
	for _, title := range []string{n.Title, n.SimpleTitle} {
		keys := []string{Key(n.Artist, title)}
		if n.Album != "" {
			keys = append(keys, Key(n.Artist, title, n.Album))
		}
		for _, key := range keys {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			idx.exact[key] = append(idx.exact[key], rec)
		}
	}

	idx.byTitle[n.Title] = append(idx.byTitle[n.Title], rec)
	idx.byArtist[n.Artist] = append(idx.byArtist[n.Artist], rec)
	if n.Album != "" {
		idx.byAlbum[n.Album] = append(idx.byAlbum[n.Album], rec)
	}
	if rec.Seconds > 0 {
		idx.bySeconds[rec.Seconds] = append(idx.bySeconds[rec.Seconds], rec)
	}
	idx.byTrackID[rec.TrackID] = rec
	if rec.PersistentID != "" {
		idx.byPersistentID[rec.PersistentID] = rec
	}
}

// Len returns the number of indexed records.
func (idx *Index) Len() int { return len(idx.records) }

// Records returns every indexed record in snapshot order.
func (idx *Index) Records() []*Record { return idx.records }

// Exact returns the bucket for an exact-match key.
func (idx *Index) Exact(key string) []*Record { return idx.exact[key] }

// ByTitle returns records whose normalized title equals title.
func (idx *Index) ByTitle(title string) []*Record { return idx.byTitle[title] }

// ByArtist returns records whose normalized artist equals artist.
func (idx *Index) ByArtist(artist string) []*Record { return idx.byArtist[artist] }

// ByAlbum returns records whose normalized album equals album.
func (idx *Index) ByAlbum(album string) []*Record {
	if album == "" {
		return nil
	}
	return idx.byAlbum[album]
}

// BySeconds returns records with the given rounded duration.
func (idx *Index) BySeconds(seconds int) []*Record { return idx.bySeconds[seconds] }

// ByTrackID returns the record with the given snapshot id.
func (idx *Index) ByTrackID(id int) (*Record, bool) {
	rec, ok := idx.byTrackID[id]
	return rec, ok
}

// ByPersistentID returns the record with the given persistent id.
func (idx *Index) ByPersistentID(id string) (*Record, bool) {
	rec, ok := idx.byPersistentID[id]
	return rec, ok
}

// ArtistPrefix returns records whose normalized artist starts with prefix,
// ordered by artist and then snapshot order.
func (idx *Index) ArtistPrefix(prefix string) []*Record {
	if prefix == "" {
		return nil
	}
	var out []*Record
	start := sort.SearchStrings(idx.artists, prefix)
	for _, artist := range idx.artists[start:] {
		if !strings.HasPrefix(artist, prefix) {
			break
		}
		out = append(out, idx.byArtist[artist]...)
	}
	return out
}

// ByCode returns the first record confirmed to carry the ISRC. Codes compare
// case-insensitively.
func (idx *Index) ByCode(code string) (*Record, bool) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, false
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	bucket := idx.byCode[code]
	if len(bucket) == 0 {
		return nil, false
	}
	return bucket[0], true
}

// AttachCode records a confirmed ISRC for rec.
func (idx *Index) AttachCode(rec *Record, code string) {
	code = NormalizeCode(code)
	if rec == nil || code == "" {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.attach(rec, code)
}

func (idx *Index) attach(rec *Record, code string) {
	code = NormalizeCode(code)
	for _, existing := range idx.byCode[code] {
		if existing == rec {
			return
		}
	}
	rec.ISRC = code
	idx.byCode[code] = append(idx.byCode[code], rec)
}

// NormalizeCode canonicalizes an ISRC: surrounding space and hyphens are
// dropped and letters are uppercased.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	return strings.ToUpper(strings.ReplaceAll(code, "-", ""))
}
