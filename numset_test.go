package imap

import "testing"

func TestMessageIdentifierSetString(t *testing.T) {
	tests := []struct {
		name string
		set  *UIDSet
		want string
	}{
		{"single", NewMessageIdentifierSet[UID](5), "5"},
		{"coalesced adjacent", NewMessageIdentifierSet[UID](1, 2, 3), "1:3"},
		{"disjoint", NewMessageIdentifierSet[UID](1, 3), "1,3"},
		{"star is implicit max", NewMessageIdentifierSet[UID](0), "*"},
		{"range to star", func() *UIDSet {
			s := &UIDSet{}
			s.AddRange(10, 0)
			return s
		}(), "10:*"},
		{"empty", &UIDSet{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageIdentifierSetCanonicalizeOverlapping(t *testing.T) {
	s := &UIDSet{}
	s.AddRange(5, 10)
	s.AddRange(8, 15)
	s.AddRange(20, 25)
	if got, want := s.String(), "5:15,20:25"; got != want {
		t.Errorf("canonicalized ranges = %q, want %q", got, want)
	}
}

func TestMessageIdentifierSetContains(t *testing.T) {
	s := NewMessageIdentifierSet[UID](1, 2, 3, 10)
	for _, n := range []UID{1, 2, 3, 10} {
		if !s.Contains(n) {
			t.Errorf("Contains(%d) = false, want true", n)
		}
	}
	if s.Contains(5) {
		t.Error("Contains(5) = true, want false")
	}
}

func TestMessageIdentifierSetIntersects(t *testing.T) {
	a := NewMessageIdentifierSet[UID](1, 2, 3, 4, 5)
	b := NewMessageIdentifierSet[UID](5, 6, 7)
	if !a.Intersects(b) {
		t.Error("ranges sharing UID 5 should intersect")
	}

	c := NewMessageIdentifierSet[UID](20, 21, 22)
	if a.Intersects(c) {
		t.Error("disjoint ranges must not intersect")
	}
}

func TestMessageIdentifierSetIntersectsEmpty(t *testing.T) {
	a := NewMessageIdentifierSet[UID](1, 2, 3)
	empty := &UIDSet{}
	if a.Intersects(empty) {
		t.Error("an empty set must never intersect anything")
	}
}

func TestMessageIdentifierSetDynamic(t *testing.T) {
	withStar := &UIDSet{}
	withStar.AddRange(1, 0)
	if !withStar.Dynamic() {
		t.Error("a set containing the implicit maximum should be Dynamic")
	}

	static := NewMessageIdentifierSet[UID](1, 2, 3)
	if static.Dynamic() {
		t.Error("a set of concrete identifiers should not be Dynamic")
	}
}
