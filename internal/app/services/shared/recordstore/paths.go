package recordstore

import (
	"bitecare-service/internal/pkg/constvars"
	"strings"
)

var routingKeyEscaper = strings.NewReplacer(".", "_", "*", "_", "#", "_")

// JoinPath builds a store path from its segments.
func JoinPath(segments ...string) string {
	return strings.Join(segments, constvars.StorePathSeparator)
}

// ParentPath returns the path one level up, or "" for a top-level path.
func ParentPath(path string) string {
	idx := strings.LastIndex(path, constvars.StorePathSeparator)
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// RoutingKey maps a store path onto a topic routing key, one word per
// segment.
func RoutingKey(path string) string {
	segments := strings.Split(strings.Trim(path, constvars.StorePathSeparator), constvars.StorePathSeparator)
	for i, segment := range segments {
		segments[i] = routingKeyEscaper.Replace(segment)
	}
	return strings.Join(segments, constvars.ChangeFeedRoutingSep)
}

// BindingKey matches the routing key of path and of every path beneath it.
func BindingKey(path string) string {
	return RoutingKey(path) + constvars.ChangeFeedRoutingSep + "#"
}
