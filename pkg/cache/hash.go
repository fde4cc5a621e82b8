package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data. Graph hashes and file cache
// names both use it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "namespace:digest", where digest covers the JSON encoding
// of opts. Struct fields encode in declaration order, so equal options give
// equal keys.
func hashKey(namespace string, opts any) string {
	data, err := json.Marshal(opts)
	if err != nil {
		// Key option structs hold only strings and numbers.
		panic("cache: unencodable key options: " + err.Error())
	}
	return namespace + ":" + Hash(data)
}
