// Package arrange derives the three display orders of a corpus: the flat
// chronological list, the threaded reply tree and the notification subset.
//
// Arrangements refer to posts by their index in Corpus.Posts, so they stay
// valid exactly as long as the corpus they were built from.
package arrange

import (
	"sort"
	"strings"

	"github.com/CrestNiraj12/orgfeed/domain"
	"github.com/CrestNiraj12/orgfeed/infra/logging"
)

// Reason records why a post is in the notification feed.
type Reason uint8

const (
	ReasonMention Reason = 1 << iota
	ReasonReply
)

func (r Reason) String() string {
	switch r {
	case ReasonMention:
		return "MENTION"
	case ReasonReply:
		return "REPLY"
	case ReasonMention | ReasonReply:
		return "MENTION+REPLY"
	default:
		return ""
	}
}

// Badge is the short list-pane marker for r.
func (r Reason) Badge() string {
	switch r {
	case ReasonMention:
		return "[M]"
	case ReasonReply:
		return "[R]"
	case ReasonMention | ReasonReply:
		return "[M+R]"
	default:
		return ""
	}
}

// Unit is one row of an arrangement.
type Unit struct {
	Index  int    // position in Corpus.Posts
	Depth  int    // nesting level, 0 outside the threaded view
	Reason Reason // set only in the notification feed
}

// ChildOrder decides how replies to the same parent are ordered.
type ChildOrder int

const (
	ChildOrderChronological ChildOrder = iota
	ChildOrderArrival
)

// ParseChildOrder maps a config value to a ChildOrder.
func ParseChildOrder(s string) ChildOrder {
	if strings.EqualFold(strings.TrimSpace(s), "arrival") {
		return ChildOrderArrival
	}
	return ChildOrderChronological
}

// Options tunes the builders.
type Options struct {
	ChildOrder ChildOrder
}

// Snapshot holds every arrangement of one corpus. It is built in one go and
// swapped in whole, so readers never see a partially rebuilt state.
type Snapshot struct {
	List          []Unit
	Threaded      []Unit
	Notifications []Unit
	Demoted       []string // IDs of posts moved to top level because of a broken parent link
}

// Build computes all arrangements of c.
func Build(c domain.Corpus, opts Options) Snapshot {
	threaded, demoted := BuildThreaded(c.Posts, opts)
	return Snapshot{
		List:          BuildList(c.Posts),
		Threaded:      threaded,
		Notifications: BuildNotifications(c),
		Demoted:       demoted,
	}
}

// Find returns the row of units that shows post index, or -1.
func Find(units []Unit, index int) int {
	for i, u := range units {
		if u.Index == index {
			return i
		}
	}
	return -1
}

// BuildList orders posts newest first. Equal timestamps keep corpus order.
func BuildList(posts []domain.Post) []Unit {
	idx := newestFirst(posts, allIndexes(len(posts)))
	units := make([]Unit, len(idx))
	for i, p := range idx {
		units[i] = Unit{Index: p}
	}
	return units
}

// BuildNotifications selects posts that mention the local user or reply
// directly to one of the local user's posts, newest first. Authorship does
// not matter; a local reply to a local post is a notification too.
func BuildNotifications(c domain.Corpus) []Unit {
	byID := indexByID(c.Posts)
	localFeed := domain.NormalizeFeedURL(c.Local.FeedURL)

	reasons := make(map[int]Reason)
	var hits []int
	for i, p := range c.Posts {
		var r Reason
		for _, m := range p.Mentions {
			if c.Local.Matches(m) {
				r |= ReasonMention
				break
			}
		}
		if p.IsReply() {
			if parent, ok := byID[p.ParentID]; ok {
				if c.IsLocal(c.Posts[parent].Author) {
					r |= ReasonReply
				}
			} else if feed, _ := domain.SplitPostID(p.ParentID); localFeed != "" && domain.NormalizeFeedURL(feed) == localFeed {
				// parent filtered out of the corpus but still ours
				r |= ReasonReply
			}
		}
		if r != 0 {
			reasons[i] = r
			hits = append(hits, i)
		}
	}

	hits = newestFirst(c.Posts, hits)
	units := make([]Unit, len(hits))
	for i, p := range hits {
		units[i] = Unit{Index: p, Reason: reasons[p]}
	}
	return units
}

// BuildThreaded flattens reply trees in pre-order. Roots are newest first;
// replies follow opts.ChildOrder. Posts whose parent is missing, themselves,
// or part of a reference cycle are placed at top level and their IDs returned.
// Every post appears exactly once.
func BuildThreaded(posts []domain.Post, opts Options) ([]Unit, []string) {
	log := logging.Component("arrange")
	n := len(posts)
	byID := indexByID(posts)

	parent := make([]int, n)
	children := make([][]int, n)
	var roots []int
	var demoted []string
	for i, p := range posts {
		parent[i] = -1
		if !p.IsReply() {
			roots = append(roots, i)
			continue
		}
		pi, ok := byID[p.ParentID]
		switch {
		case !ok:
			log.Debug().Str("id", p.ID).Str("parent", p.ParentID).Msg("parent not in corpus, showing at top level")
			demoted = append(demoted, p.ID)
			roots = append(roots, i)
		case pi == i:
			log.Warn().Str("id", p.ID).Err(domain.ErrMalformedStructure).Msg("post replies to itself")
			demoted = append(demoted, p.ID)
			roots = append(roots, i)
		default:
			parent[i] = pi
			children[pi] = append(children[pi], i)
		}
	}
	if opts.ChildOrder == ChildOrderChronological {
		for i := range children {
			if len(children[i]) > 1 {
				children[i] = oldestFirst(posts, children[i])
			}
		}
	}

	units := make([]Unit, 0, n)
	visited := make([]bool, n)
	walk := func(root int) {
		type frame struct{ idx, depth int }
		stack := []frame{{root, 0}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[f.idx] {
				continue
			}
			visited[f.idx] = true
			units = append(units, Unit{Index: f.idx, Depth: f.depth})
			kids := children[f.idx]
			for k := len(kids) - 1; k >= 0; k-- {
				if !visited[kids[k]] {
					stack = append(stack, frame{kids[k], f.depth + 1})
				}
			}
		}
	}

	for _, r := range newestFirst(posts, roots) {
		walk(r)
	}

	// Anything left is only reachable through a parent cycle.
	var stranded []int
	for i := range posts {
		if !visited[i] {
			stranded = append(stranded, i)
		}
	}
	for _, i := range oldestFirst(posts, stranded) {
		if visited[i] {
			continue
		}
		log.Warn().Str("id", posts[i].ID).Err(domain.ErrMalformedStructure).Msg("reply cycle, showing at top level")
		demoted = append(demoted, posts[i].ID)
		walk(i)
	}
	return units, demoted
}

func indexByID(posts []domain.Post) map[string]int {
	byID := make(map[string]int, len(posts))
	for i, p := range posts {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = i
		}
	}
	return byID
}

func allIndexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func newestFirst(posts []domain.Post, idx []int) []int {
	out := append([]int(nil), idx...)
	sort.SliceStable(out, func(a, b int) bool {
		return posts[out[a]].Time.After(posts[out[b]].Time)
	})
	return out
}

func oldestFirst(posts []domain.Post, idx []int) []int {
	out := append([]int(nil), idx...)
	sort.SliceStable(out, func(a, b int) bool {
		return posts[out[a]].Time.Before(posts[out[b]].Time)
	})
	return out
}
