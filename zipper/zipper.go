// Package zipper implements a Huet zipper over trees of persistent lists.
//
// A tree is a leaf value or a list whose items are trees. A location pairs
// the focused subtree with the path back to the root; every navigation or
// edit returns a new location and leaves its input untouched, so locations
// are snapshots that can be kept, compared and shared freely.
package zipper

import (
	"iter"

	"github.com/dball/huet/convert"
	"github.com/dball/huet/ex"
	"github.com/dball/huet/list"
	"github.com/dball/huet/types"
)

var (
	// ErrInvalidNavigation matches every failed move or edit
	ErrInvalidNavigation = ex.Ex{Code: "invalid navigation"}
	// ErrInsertOnLeaf is returned when inserting below a focus that is not a list
	ErrInsertOnLeaf = ex.Ex{Code: "insert on leaf", Err: ErrInvalidNavigation}
)

func invalid(base ex.Ex, op string, reason string) error {
	return base.With("op", op).With("reason", reason)
}

// Path leads from a focus back to the root. A nil path is the root itself.
type Path struct {
	// Left holds the left siblings, nearest first
	Left *list.List[any]
	// Up is the parent's path
	Up *Path
	// Right holds the right siblings, nearest first
	Right *list.List[any]
}

// Len counts the levels between the focus and the root
func (path *Path) Len() int {
	n := 0
	for p := path; p != nil; p = p.Up {
		n++
	}
	return n
}

// Equal compares paths structurally
func (path *Path) Equal(other *Path) bool {
	for this, that := path, other; ; this, that = this.Up, that.Up {
		if this == nil || that == nil {
			return this == nil && that == nil
		}
		if !types.Equals(this.Left, that.Left) || !types.Equals(this.Right, that.Right) {
			return false
		}
	}
}

// Loc is a location in a tree: the focused subtree and its path
type Loc struct {
	tree     any
	path     *Path
	finished bool
}

// New focuses the root of a tree built from value. Every sequence reachable
// through sequences is copied into a list, so later edits are never visible
// through value. Maps, sets and records are leaves and are kept as they are.
func New(value any) Loc {
	return Loc{tree: convert.SequencesToList(value)}
}

// Path returns the path from the focus to the root, nil at the root
func (loc Loc) Path() *Path {
	return loc.path
}

// AtTop is true at the root
func (loc Loc) AtTop() bool {
	return loc.path == nil
}

// Depth counts the levels between the focus and the root
func (loc Loc) Depth() int {
	return loc.path.Len()
}

// Equal compares the focus and path of two locations structurally
func (loc Loc) Equal(other Loc) bool {
	return types.Equals(loc.tree, other.tree) && loc.path.Equal(other.path)
}

func children(tree any) (*list.List[any], bool) {
	if !list.IsList(tree) {
		return nil, false
	}
	return convert.ToList(tree)
}

// CanMoveLeft is true if the focus has a left sibling
func (loc Loc) CanMoveLeft() bool {
	return loc.path != nil && !loc.path.Left.IsEmpty()
}

// CanMoveRight is true if the focus has a right sibling
func (loc Loc) CanMoveRight() bool {
	return loc.path != nil && !loc.path.Right.IsEmpty()
}

// CanMoveUp is true below the root
func (loc Loc) CanMoveUp() bool {
	return loc.path != nil
}

// CanMoveDown is true if the focus is a non-empty list
func (loc Loc) CanMoveDown() bool {
	l, valid := children(loc.tree)
	return valid && !l.IsEmpty()
}

// MoveLeft focuses the nearest left sibling
func (loc Loc) MoveLeft() (Loc, error) {
	if loc.path == nil {
		return loc, invalid(ErrInvalidNavigation, "moveLeft", "at top")
	}
	if loc.path.Left.IsEmpty() {
		return loc, invalid(ErrInvalidNavigation, "moveLeft", "no left sibling")
	}
	tree, _ := loc.path.Left.First()
	return Loc{
		tree: tree,
		path: &Path{
			Left:  loc.path.Left.Rest(),
			Up:    loc.path.Up,
			Right: loc.path.Right.Add(loc.tree),
		},
	}, nil
}

// MoveRight focuses the nearest right sibling
func (loc Loc) MoveRight() (Loc, error) {
	if loc.path == nil {
		return loc, invalid(ErrInvalidNavigation, "moveRight", "at top")
	}
	if loc.path.Right.IsEmpty() {
		return loc, invalid(ErrInvalidNavigation, "moveRight", "no right sibling")
	}
	tree, _ := loc.path.Right.First()
	return Loc{
		tree: tree,
		path: &Path{
			Left:  loc.path.Left.Add(loc.tree),
			Up:    loc.path.Up,
			Right: loc.path.Right.Rest(),
		},
	}, nil
}

// MoveUp focuses the parent, rebuilt from the siblings and the current focus
func (loc Loc) MoveUp() (Loc, error) {
	if loc.path == nil {
		return loc, invalid(ErrInvalidNavigation, "moveUp", "at top")
	}
	return Loc{
		tree: loc.path.Left.Reverse().Concat(loc.path.Right.Add(loc.tree)),
		path: loc.path.Up,
	}, nil
}

// MoveDown focuses the first child of a list
func (loc Loc) MoveDown() (Loc, error) {
	l, valid := children(loc.tree)
	if !valid {
		return loc, invalid(ErrInvalidNavigation, "moveDown", "focus is not a list")
	}
	tree, found := l.First()
	if !found {
		return loc, invalid(ErrInvalidNavigation, "moveDown", "focus is an empty list")
	}
	return Loc{
		tree: tree,
		path: &Path{
			Left:  list.Empty[any](),
			Up:    loc.path,
			Right: l.Rest(),
		},
	}, nil
}

// Leftmost focuses the first sibling
func (loc Loc) Leftmost() Loc {
	current := loc
	for current.CanMoveLeft() {
		current, _ = current.MoveLeft()
	}
	return current
}

// Rightmost focuses the last sibling
func (loc Loc) Rightmost() Loc {
	current := loc
	for current.CanMoveRight() {
		current, _ = current.MoveRight()
	}
	return current
}

// Root focuses the whole tree
func (loc Loc) Root() Loc {
	current := loc
	for current.CanMoveUp() {
		current, _ = current.MoveUp()
	}
	return current
}

// Change replaces the focus with value as given
func (loc Loc) Change(value any) Loc {
	return Loc{tree: value, path: loc.path}
}

// InsertRight adds value as the nearest right sibling. Sequences in value
// become lists.
func (loc Loc) InsertRight(value any) (Loc, error) {
	if loc.path == nil {
		return loc, invalid(ErrInvalidNavigation, "insertRight", "at top")
	}
	return Loc{
		tree: loc.tree,
		path: &Path{
			Left:  loc.path.Left,
			Up:    loc.path.Up,
			Right: loc.path.Right.Add(convert.SequencesToList(value)),
		},
	}, nil
}

// InsertLeft adds value as the nearest left sibling. Sequences in value
// become lists.
func (loc Loc) InsertLeft(value any) (Loc, error) {
	if loc.path == nil {
		return loc, invalid(ErrInvalidNavigation, "insertLeft", "at top")
	}
	return Loc{
		tree: loc.tree,
		path: &Path{
			Left:  loc.path.Left.Add(convert.SequencesToList(value)),
			Up:    loc.path.Up,
			Right: loc.path.Right,
		},
	}, nil
}

// InsertDown adds value as the first child of a list focus and focuses it;
// the existing children become its right siblings.
func (loc Loc) InsertDown(value any) (Loc, error) {
	l, valid := children(loc.tree)
	if !valid {
		return loc, invalid(ErrInsertOnLeaf, "insertDown", "focus is not a list")
	}
	return Loc{
		tree: convert.SequencesToList(value),
		path: &Path{
			Left:  list.Empty[any](),
			Up:    loc.path,
			Right: l,
		},
	}, nil
}

// Delete removes the focus. The nearest right sibling is focused if there is
// one, else the nearest left sibling. Deleting an only child focuses the
// parent, now an empty list.
func (loc Loc) Delete() (Loc, error) {
	path := loc.path
	if path == nil {
		return loc, invalid(ErrInvalidNavigation, "delete", "at top")
	}
	if tree, found := path.Right.First(); found {
		return Loc{
			tree: tree,
			path: &Path{Left: path.Left, Up: path.Up, Right: path.Right.Rest()},
		}, nil
	}
	if tree, found := path.Left.First(); found {
		return Loc{
			tree: tree,
			path: &Path{Left: path.Left.Rest(), Up: path.Up, Right: path.Right},
		}, nil
	}
	return Loc{tree: list.Empty[any](), path: path.Up}, nil
}

// Node returns the focus with every list in it turned back into a []any
func (loc Loc) Node() any {
	return convert.ToSliceNested(loc.tree)
}

// NodeRaw returns the focus as stored
func (loc Loc) NodeRaw() any {
	return loc.tree
}

// ToSlice returns the focus as a []any tree if it is a list, else as stored
func (loc Loc) ToSlice() any {
	if list.IsList(loc.tree) {
		return loc.Node()
	}
	return loc.tree
}

// Next steps a pre-order depth first walk: down if possible, else right,
// else up until a right step is possible. When the walk is exhausted it
// returns the root marked as finished; stepping a finished location returns
// it unchanged.
func (loc Loc) Next() Loc {
	if loc.finished {
		return loc
	}
	if down, err := loc.MoveDown(); err == nil {
		return down
	}
	if right, err := loc.MoveRight(); err == nil {
		return right
	}
	current := loc
	for current.CanMoveUp() {
		current, _ = current.MoveUp()
		if right, err := current.MoveRight(); err == nil {
			return right
		}
	}
	current.finished = true
	return current
}

// EndOfDFS is true for the location that finished a walk
func (loc Loc) EndOfDFS() bool {
	return loc.finished
}

// Walk iterates loc and every location after it in a depth first walk, up to
// but not including the finished location.
func Walk(loc Loc) iter.Seq[Loc] {
	return func(yield func(Loc) bool) {
		for current := loc; !current.EndOfDFS(); current = current.Next() {
			if !yield(current) {
				return
			}
		}
	}
}
