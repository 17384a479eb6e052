package repositories

import (
	"encoding/json"
	"fmt"
)

const (
	// Key prefixes for different entity types
	HootKeyPrefix    = "hoot:"
	CommentKeyPrefix = "comment:"
	UserKeyPrefix    = "user:"

	// Sequence key ordering comments inside a hoot
	CommentSeqKey = "seq:comment"
)

func hootKey(id string) []byte {
	return []byte(HootKeyPrefix + id)
}

// commentPrefix covers every comment of one hoot.
func commentPrefix(hootID string) []byte {
	return []byte(CommentKeyPrefix + hootID + ":")
}

// commentKey zero-pads seq so that key order is insertion order.
func commentKey(hootID string, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d", CommentKeyPrefix, hootID, seq))
}

func userKey(id string) []byte {
	return []byte(UserKeyPrefix + id)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
