package redis

import "strings"

// Namespace is the key prefix shared by everything finledger writes to Redis.
const Namespace = "finledger"

// keyspace builds namespaced keys such as "finledger:cache:fiscal_year:fy-2025".
type keyspace string

func newKeyspace(parts ...string) keyspace {
	return keyspace(strings.Join(append([]string{Namespace}, parts...), ":") + ":")
}

func (k keyspace) key(id string) string {
	return string(k) + id
}
