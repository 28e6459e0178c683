package matcher

import (
	"context"
	"log/slog"

	"tracklink/internal/catalog"
	"tracklink/internal/library"
	"tracklink/internal/logging"
	"tracklink/internal/textutil"
)

// Tier identifies the cascade stage that produced a match.
type Tier int

const (
	TierNone Tier = iota
	TierCode
	TierAlbum
	TierKey
	TierFuzzy
	TierConfirm
)

// Tiers lists the matching tiers in cascade order.
var Tiers = []Tier{TierCode, TierAlbum, TierKey, TierFuzzy, TierConfirm}

func (t Tier) String() string {
	switch t {
	case TierCode:
		return "code"
	case TierAlbum:
		return "album"
	case TierKey:
		return "key"
	case TierFuzzy:
		return "fuzzy"
	case TierConfirm:
		return "confirm"
	default:
		return "none"
	}
}

// Result is the outcome of resolving one catalog record.
type Result struct {
	Record *library.Record
	Tier   Tier
}

// Matched reports whether a library record was found.
func (r Result) Matched() bool {
	return r.Record != nil
}

// Options tunes the cascade.
type Options struct {
	Tolerance Tolerance
	// FuzzyThreshold is the minimum TokenSetRatio score accepted by the fuzzy tier.
	FuzzyThreshold int
	// UseAlbum enables album-aware tiers and album-suffixed keys.
	UseAlbum bool
	// PerRowCap bounds the confirmation candidate pool; zero means unbounded.
	PerRowCap int
	Logger    *slog.Logger
}

// DefaultOptions returns the standard cascade settings.
func DefaultOptions() Options {
	return Options{
		Tolerance:      DefaultTolerance(),
		FuzzyThreshold: 95,
		UseAlbum:       true,
		PerRowCap:      64,
	}
}

// Resolver runs the cascade against one index.
type Resolver struct {
	index     *library.Index
	confirmer *Confirmer
	opts      Options
	logger    *slog.Logger
}

// New builds a resolver. A nil confirmer disables deep inspection.
func New(index *library.Index, confirmer *Confirmer, opts Options) *Resolver {
	if opts.FuzzyThreshold <= 0 {
		opts.FuzzyThreshold = DefaultOptions().FuzzyThreshold
	}
	return &Resolver{
		index:     index,
		confirmer: confirmer,
		opts:      opts,
		logger:    logging.NewComponentLogger(opts.Logger, "matcher"),
	}
}

// query holds the normalized forms of a catalog record.
type query struct {
	rec     catalog.Record
	seconds int
	disc    int
	primary string
	artist  string
	title   string
	simple  string
	album   string
	code    string
}

func (r *Resolver) newQuery(rec catalog.Record) query {
	q := query{
		rec:     rec,
		seconds: rec.Seconds(),
		disc:    rec.DiscNumber(),
		primary: textutil.Normalize(rec.PrimaryArtist()),
		artist:  textutil.Normalize(rec.Artist),
		title:   textutil.Normalize(rec.Title),
		simple:  textutil.Normalize(textutil.SimplifyTitle(rec.Title)),
		code:    rec.Code(),
	}
	if r.opts.UseAlbum {
		q.album = textutil.Normalize(rec.Album)
	}
	return q
}

// Resolve returns the library record for rec, or an unmatched Result. The only
// errors are cache write failures and cancellation, which should end the run.
func (r *Resolver) Resolve(ctx context.Context, rec catalog.Record) (Result, error) {
	q := r.newQuery(rec)

	if match := r.codeTier(q); match != nil {
		return Result{Record: match, Tier: TierCode}, nil
	}
	if match := r.albumTier(q); match != nil {
		return Result{Record: match, Tier: TierAlbum}, nil
	}
	if match := r.keyTier(q); match != nil {
		return Result{Record: match, Tier: TierKey}, nil
	}
	if match := r.fuzzyTier(q); match != nil {
		return Result{Record: match, Tier: TierFuzzy}, nil
	}

	if q.code == "" || r.confirmer == nil {
		return Result{}, nil
	}
	pool := r.confirmPool(q)
	match, err := r.confirmer.Confirm(ctx, pool, q.code)
	if err != nil {
		return Result{}, err
	}
	if match != nil {
		r.logger.Debug("isrc confirmed by deep inspection",
			logging.String("isrc", q.code),
			logging.String("track", rec.Label()),
			logging.Int("track_id", match.TrackID))
		return Result{Record: match, Tier: TierConfirm}, nil
	}
	return Result{}, nil
}
