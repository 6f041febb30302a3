package store

// Kind tags the variant held by an Object.
type Kind uint8

const (
	KindNone Kind = iota
	KindString
	KindList
	KindHash
	KindSet
	KindZSet
	KindJSON
)

// String returns the TYPE command name for the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindHash:
		return "hash"
	case KindSet:
		return "set"
	case KindZSet:
		return "zset"
	case KindJSON:
		return "ReJSON-RL"
	default:
		return "none"
	}
}

// Object is one stored value: a tagged variant with exactly one populated
// payload. A key resolves to exactly one Object; SET replaces the variant
// wholesale.
type Object struct {
	kind Kind
	str  []byte
	list *Deque
	hash map[string][]byte
	set  map[string]struct{}
	zset map[string]float64
	json any
}

// NewString returns a string object owning b.
func NewString(b []byte) *Object {
	return &Object{kind: KindString, str: b}
}

// NewList returns an empty list object.
func NewList() *Object {
	return &Object{kind: KindList, list: NewDeque()}
}

// NewHash returns an empty hash object.
func NewHash() *Object {
	return &Object{kind: KindHash, hash: make(map[string][]byte)}
}

// NewSet returns an empty set object.
func NewSet() *Object {
	return &Object{kind: KindSet, set: make(map[string]struct{})}
}

// NewZSet returns an empty sorted-set object.
func NewZSet() *Object {
	return &Object{kind: KindZSet, zset: make(map[string]float64)}
}

// NewJSON returns a JSON object holding a parsed document tree.
func NewJSON(doc any) *Object {
	return &Object{kind: KindJSON, json: doc}
}

// Kind returns the variant tag. A nil Object is KindNone.
func (o *Object) Kind() Kind {
	if o == nil {
		return KindNone
	}
	return o.kind
}

// Str returns the string payload. Valid only for KindString.
func (o *Object) Str() []byte { return o.str }

// List returns the list payload. Valid only for KindList.
func (o *Object) List() *Deque { return o.list }

// Hash returns the hash payload. Valid only for KindHash.
func (o *Object) Hash() map[string][]byte { return o.hash }

// Set returns the set payload. Valid only for KindSet.
func (o *Object) Set() map[string]struct{} { return o.set }

// ZSet returns the sorted-set payload. Valid only for KindZSet.
func (o *Object) ZSet() map[string]float64 { return o.zset }

// JSON returns the document payload. Valid only for KindJSON.
func (o *Object) JSON() any { return o.json }

// SetJSON replaces the document payload in place.
func (o *Object) SetJSON(doc any) { o.json = doc }

// Empty reports whether a container object has no elements. String and
// JSON objects are never empty: an empty byte string is still a value.
func (o *Object) Empty() bool {
	switch o.kind {
	case KindList:
		return o.list.Len() == 0
	case KindHash:
		return len(o.hash) == 0
	case KindSet:
		return len(o.set) == 0
	case KindZSet:
		return len(o.zset) == 0
	default:
		return false
	}
}
