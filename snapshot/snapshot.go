// Package snapshot serializes a simulation's component state to JSON for
// `cachesim inspect`, the same way the monitor's dashboard inspects a live
// component by name.
package snapshot

import (
	"bytes"

	"github.com/syifan/goseth"
)

// Of serializes root (a *cachesim.Harness, cache, or CPU) to a JSON byte
// slice, descending at most maxDepth levels into its fields.
func Of(root interface{}, maxDepth int) ([]byte, error) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(root)
	serializer.SetMaxDepth(maxDepth)

	buf := bytes.NewBuffer(nil)
	if err := serializer.Serialize(buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
