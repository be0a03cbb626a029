package store

import "fmt"

type DataType byte

const (
	TypeString DataType = iota + 1
	TypeHash
	TypeList
)

func (t DataType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeHash:
		return "hash"
	case TypeList:
		return "list"
	}
	return "unknown"
}

// value is the payload stored under a key. Exactly one variant is populated,
// selected by kind. A key's kind never changes after creation; cross-type
// operations are rejected rather than converting in place.
type value struct {
	kind DataType
	str  string
	hash map[string]string
	list []string
}

func newStringValue(s string) *value {
	return &value{kind: TypeString, str: s}
}

func newHashValue() *value {
	return &value{kind: TypeHash, hash: make(map[string]string)}
}

func newListValue() *value {
	return &value{kind: TypeList}
}

// describe renders the value for human-facing responses, e.g. the
// "was ..." part of a DELETE acknowledgement.
func (v *value) describe() string {
	switch v.kind {
	case TypeString:
		return v.str
	case TypeHash:
		return fmt.Sprintf("hash with %d fields", len(v.hash))
	case TypeList:
		return fmt.Sprintf("list with %d items", len(v.list))
	}
	return ""
}
