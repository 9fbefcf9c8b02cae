package domain

import (
	"fmt"
	"strings"
)

// Kind identifies one of the six reference entity categories held in the
// local cache. The set is closed: deserialization and lookup dispatch on
// this tag rather than on runtime type names.
type Kind int

const (
	KindUser Kind = iota
	KindClient
	KindTask
	KindCategory
	KindTagType
	KindEntryType
)

// String returns the singular display name of the kind
func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindClient:
		return "client"
	case KindTask:
		return "task"
	case KindCategory:
		return "category"
	case KindTagType:
		return "tag type"
	case KindEntryType:
		return "type"
	default:
		return "unknown"
	}
}

// Table returns the cache table name backing the kind
func (k Kind) Table() string {
	switch k {
	case KindUser:
		return "users"
	case KindClient:
		return "clients"
	case KindTask:
		return "tasks"
	case KindCategory:
		return "categories"
	case KindTagType:
		return "tag_types"
	case KindEntryType:
		return "types"
	default:
		return ""
	}
}

// Kinds returns all reference kinds in a stable order
func Kinds() []Kind {
	return []Kind{KindUser, KindClient, KindTask, KindCategory, KindTagType, KindEntryType}
}

// ParseKind parses a kind name as used on the command line. Both singular
// and plural spellings are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user", "users":
		return KindUser, nil
	case "client", "clients":
		return KindClient, nil
	case "task", "tasks":
		return KindTask, nil
	case "category", "categories":
		return KindCategory, nil
	case "tag_type", "tag_types", "tag-type", "tag-types":
		return KindTagType, nil
	case "type", "types":
		return KindEntryType, nil
	default:
		return 0, fmt.Errorf("unknown reference kind: %s", s)
	}
}
