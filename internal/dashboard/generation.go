package dashboard

// Token identifies one fetch of a feed.
type Token struct {
	feed Feed
	seq  uint64
}

// generations tracks, per feed, the last token issued, the last token
// applied and the invalidation floor. A response is applied only when its
// token is newer than both the last applied token and the floor, so slow
// responses overtaken by a later tick, or belonging to a view the user has
// left, are dropped.
type generations struct {
	issued  [feedCount]uint64
	applied [feedCount]uint64
	floor   [feedCount]uint64
}

func (g *generations) begin(feed Feed) Token {
	g.issued[feed]++
	return Token{feed: feed, seq: g.issued[feed]}
}

func (g *generations) invalidate(feed Feed) {
	g.floor[feed] = g.issued[feed]
}

// stale reports whether tok was overtaken or invalidated.
func (g *generations) stale(tok Token) bool {
	return tok.seq <= g.floor[tok.feed] || tok.seq <= g.applied[tok.feed]
}

func (g *generations) commit(tok Token) bool {
	if g.stale(tok) {
		return false
	}
	g.applied[tok.feed] = tok.seq
	return true
}
