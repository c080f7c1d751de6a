package cache

import (
	"iter"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// single is the per-key half of the contract; the bulk operations of every
// store are built on it.
type single interface {
	Get(key string, def any) (any, error)
	Set(key string, value any, ttl any) (bool, error)
	Delete(key string) (bool, error)
}

// keySeq adapts the accepted key collections. Elements stay untyped so that
// a non-string element is reported as an invalid key rather than an
// invalid collection.
func keySeq(op string, keys any) (iter.Seq[any], error) {
	switch ks := keys.(type) {
	case []string:
		return func(yield func(any) bool) {
			for _, k := range ks {
				if !yield(k) {
					return
				}
			}
		}, nil
	case []any:
		return func(yield func(any) bool) {
			for _, k := range ks {
				if !yield(k) {
					return
				}
			}
		}, nil
	case iter.Seq[string], func(func(string) bool):
		seq := asSeq(ks)
		if seq == nil {
			break
		}
		return func(yield func(any) bool) {
			for k := range seq {
				if !yield(k) {
					return
				}
			}
		}, nil
	case *orderedmap.OrderedMap[string, any]:
		if ks == nil {
			break
		}
		return func(yield func(any) bool) {
			for pair := ks.Oldest(); pair != nil; pair = pair.Next() {
				if !yield(pair.Key) {
					return
				}
			}
		}, nil
	}
	return nil, invalid(op, "keys", "want an iterable of keys, got %T", keys)
}

// valueSeq adapts the accepted key/value collections. Plain maps are
// walked in sorted key order.
func valueSeq(op string, values any) (iter.Seq2[string, any], error) {
	switch vs := values.(type) {
	case map[string]any:
		if vs == nil {
			break
		}
		keys := make([]string, 0, len(vs))
		for k := range vs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return func(yield func(string, any) bool) {
			for _, k := range keys {
				if !yield(k, vs[k]) {
					return
				}
			}
		}, nil
	case *orderedmap.OrderedMap[string, any]:
		if vs == nil {
			break
		}
		return func(yield func(string, any) bool) {
			for pair := vs.Oldest(); pair != nil; pair = pair.Next() {
				if !yield(pair.Key, pair.Value) {
					return
				}
			}
		}, nil
	case iter.Seq2[string, any]:
		if vs == nil {
			break
		}
		return vs, nil
	case func(func(string, any) bool):
		if vs == nil {
			break
		}
		return vs, nil
	}
	return nil, invalid(op, "values", "want an iterable of key/value pairs, got %T", values)
}

// asSeq unifies named and unnamed string iterators.
func asSeq(v any) iter.Seq[string] {
	switch f := v.(type) {
	case iter.Seq[string]:
		return f
	case func(func(string) bool):
		return f
	}
	return nil
}

func getMultiple(s single, keys any, def any) (*orderedmap.OrderedMap[string, any], error) {
	seq, err := keySeq("getMultiple", keys)
	if err != nil {
		return nil, err
	}
	out := orderedmap.New[string, any]()
	for k := range seq {
		key, err := keyOf("getMultiple", k)
		if err != nil {
			return nil, err
		}
		v, err := s.Get(key, def)
		if err != nil {
			return nil, err
		}
		out.Set(key, v)
	}
	return out, nil
}

// setMultiple and deleteMultiple stop at the first false or error; writes
// already made stand.
func setMultiple(s single, values any, ttl any) (bool, error) {
	seq, err := valueSeq("setMultiple", values)
	if err != nil {
		return false, err
	}
	if _, _, err := resolveTTL("setMultiple", ttl); err != nil {
		return false, err
	}
	for k, v := range seq {
		ok, err := s.Set(k, v, ttl)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func deleteMultiple(s single, keys any) (bool, error) {
	seq, err := keySeq("deleteMultiple", keys)
	if err != nil {
		return false, err
	}
	for k := range seq {
		key, err := keyOf("deleteMultiple", k)
		if err != nil {
			return false, err
		}
		ok, err := s.Delete(key)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
