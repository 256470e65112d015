package store

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// newID generates an id that is unused in both entity tables. Collisions are
// astronomically unlikely but cheap to rule out.
func (s *Store) newID(ctx context.Context, prefix string) (string, error) {
	for i := 0; i < 10; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			return "", err
		}
		var n int
		err = s.db.QueryRowContext(ctx,
			`SELECT (SELECT COUNT(1) FROM projects WHERE id = ?) + (SELECT COUNT(1) FROM prompts WHERE id = ?)`,
			id, id).Scan(&n)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return id, nil
		}
	}
	return "", errors.New("id space exhausted")
}
