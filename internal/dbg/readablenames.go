package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// A Namer converts arbitrary pointers into random readable names. Scenes use
// one to name shapes the author didn't bother naming, so that queries and logs
// still have something to call them. Names are generated lazily and memoized
// for the life of the Namer, so it should live no longer than the things it
// names.
type Namer struct {
	mu     sync.Mutex
	memo   map[interface{}]string
	issued map[string]bool
}

func init() {
	// Since the names are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to the
	// same thing between runs.
	petname.NonDeterministicMode()
}

func NewNamer() *Namer {
	return &Namer{
		memo:   make(map[interface{}]string),
		issued: make(map[string]bool),
	}
}

// Reserve marks names that are already in use, so they are never generated.
func (n *Namer) Reserve(names ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, name := range names {
		n.issued[name] = true
	}
}

// Name returns the readable name for obj, which must be a pointer (or nil).
// Distinct objects never share a name.
func (n *Namer) Name(obj interface{}) string {
	if obj == nil || reflect.ValueOf(obj).IsNil() {
		return "Ø"
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if r, ok := n.memo[obj]; ok {
		return r
	}
	r := n.fresh()
	n.memo[obj] = r
	return r
}

func (n *Namer) fresh() string {
	for {
		r := fmt.Sprintf("%s%s", title(petname.Adjective()), title(petname.Name()))
		if !n.issued[r] {
			n.issued[r] = true
			return r
		}
	}
}

// Capitalize an ASCII word. The petname word lists are plain lowercase ASCII.
func title(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
