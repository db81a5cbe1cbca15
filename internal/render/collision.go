package render

import (
	"fmt"

	"github.com/mcncl/yamlify/internal/models"
)

// KeyCollision reports two keys of one mapping that rewrite to the same key.
type KeyCollision struct {
	// Path locates the mapping, e.g. "$.users[0]"
	Path    string
	First   string
	Second  string
	Rewrite string
}

func (c *KeyCollision) Error() string {
	return fmt.Sprintf("%s: keys %q and %q both become %q", c.Path, c.First, c.Second, c.Rewrite)
}

type located struct {
	value models.Value
	path  string
}

// Check walks v and returns a *KeyCollision if rewriting keys with k would
// give some mapping a duplicate key. KeyCaseNone never collides.
func (k KeyCase) Check(v models.Value) error {
	if k == KeyCaseNone || k == "" {
		return nil
	}

	stack := []located{{value: v, path: "$"}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch cur.value.Kind() {
		case models.KindSequence:
			for i, item := range cur.value.Items() {
				stack = append(stack, located{value: item, path: fmt.Sprintf("%s[%d]", cur.path, i)})
			}
		case models.KindMapping:
			seen := make(map[string]string, cur.value.Len())
			var collision *KeyCollision
			cur.value.Each(func(key string, value models.Value) bool {
				rewritten := k.Apply(key)
				if prev, ok := seen[rewritten]; ok {
					collision = &KeyCollision{Path: cur.path, First: prev, Second: key, Rewrite: rewritten}
					return false
				}
				seen[rewritten] = key
				stack = append(stack, located{value: value, path: cur.path + "." + key})
				return true
			})
			if collision != nil {
				return collision
			}
		}
	}
	return nil
}
