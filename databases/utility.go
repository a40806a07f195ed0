package databases

import "go.mongodb.org/mongo-driver/mongo/options"

// maxPageLimit is the hard ceiling applied to every list endpoint
const maxPageLimit = 100

type mongoPaginate struct {
	limit int64
	page  int64
}

func newMongoPaginate(limit, page int) *mongoPaginate {
	if limit < 1 {
		limit = 10
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if page < 1 {
		page = 1
	}
	return &mongoPaginate{
		limit: int64(limit),
		page:  int64(page),
	}
}

func (mp *mongoPaginate) getPaginatedOpts() *options.FindOptions {
	l := mp.limit
	skip := mp.page*mp.limit - mp.limit
	fOpt := options.FindOptions{Limit: &l, Skip: &skip}

	return &fOpt
}

// Paginate clamps page/limit to their bounds and returns the mongo find
// options for the requested window
func Paginate(limit, page int) *options.FindOptions {
	return newMongoPaginate(limit, page).getPaginatedOpts()
}

// Clamp returns the effective page and limit after bounds are applied
func Clamp(limit, page int) (int, int) {
	mp := newMongoPaginate(limit, page)
	return int(mp.limit), int(mp.page)
}
