package domain

// TagType identifies a cache partition, one per server resource type.
type TagType string

const (
	TagAppointment TagType = "APPOINTMENT"
	TagService     TagType = "SERVICE"
	TagStaff       TagType = "STAFF"
	TagQueue       TagType = "QUEUE"
	TagDashboard   TagType = "DASHBOARD"
	TagUser        TagType = "USER"
)

// ListID is the reserved tag ID covering a whole collection.
const ListID = "LIST"

// Tag labels cached server data. Queries declare the tags they provide;
// mutations declare the tags they invalidate. An empty ID denotes the
// whole resource type and, on the invalidation side, matches every
// provided tag of that type.
type Tag struct {
	Type TagType
	ID   string
}

// TypeTag returns the type-wide tag, matching all tags of the type.
func TypeTag(t TagType) Tag {
	return Tag{Type: t}
}

// ListTag returns the collection tag for a resource type.
func ListTag(t TagType) Tag {
	return Tag{Type: t, ID: ListID}
}

// EntityTag returns the tag for a single entity.
func EntityTag(t TagType, id string) Tag {
	return Tag{Type: t, ID: id}
}

// Matches reports whether an invalidated tag staled the provided tag.
func (t Tag) Matches(provided Tag) bool {
	if t.Type != provided.Type {
		return false
	}
	return t.ID == "" || t.ID == provided.ID
}

// TagSet is an unordered set of tags.
type TagSet map[Tag]struct{}

// NewTagSet builds a set from the given tags.
func NewTagSet(tags ...Tag) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Add inserts tags into the set.
func (s TagSet) Add(tags ...Tag) {
	for _, t := range tags {
		s[t] = struct{}{}
	}
}

// Contains reports whether the set holds the exact tag.
func (s TagSet) Contains(t Tag) bool {
	_, ok := s[t]
	return ok
}

// Union returns a new set with the members of both sets.
func (s TagSet) Union(other TagSet) TagSet {
	out := make(TagSet, len(s)+len(other))
	for t := range s {
		out[t] = struct{}{}
	}
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

// Invalidates reports whether this set, treated as invalidated tags,
// stales a query that provided the given tags.
func (s TagSet) Invalidates(provided TagSet) bool {
	for inv := range s {
		for p := range provided {
			if inv.Matches(p) {
				return true
			}
		}
	}
	return false
}
