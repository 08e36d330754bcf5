/*
Package xdata implements a self-describing, typed, compressed binary
container format for persisting hierarchical data built from Records,
lists, and primitives.

A writer takes a tree rooted at a Record and emits a gzip-wrapped byte
stream with an optional SHA-256 integrity digest; a reader reconstructs
the tree and re-hydrates domain types through converters registered for
the call. The format supports structural sharing: a *Record or a domain
value held by pointer that is stored under multiple keys (or inside
multiple lists) is serialized once and referenced by stream offset
everywhere else it appears. Non-pointer values such as time.Time are
written in full at each occurrence.

# Usage

	root := xdata.NewRecord()
	xdata.SetScalar(root, nameKey, "example")

	var buf bytes.Buffer
	if err := xdata.Store(root, &buf); err != nil {
		// handle error
	}

	got, err := xdata.Load(&buf)

# Concurrency

Store and Load are blocking, single-threaded operations over the stream
they're given; a Record is not safe for concurrent mutation. Converters
must be reentrant — the codec may invoke the same converter on multiple
values within one Store or Load call.

# Compatibility

There is no version byte in the wire format; forward-compatible parsing
relies on unknown tags failing cleanly rather than on negotiation.
*/
package xdata
