package service

import (
	"hash/fnv"
	"sync"
)

const pairLockStripes = 64

// pairLock serializes follow/unfollow calls that target the same
// (follower, followed) pair. The stripe is chosen by hashing the ordered pair,
// so mutations on distinct pairs rarely contend. The store's unique index on
// the edge pair covers concurrent callers in other processes.
type pairLock struct {
	stripes [pairLockStripes]sync.Mutex
}

// lock acquires the stripe for the pair and returns the mutex to unlock.
func (l *pairLock) lock(followerID, followedID string) *sync.Mutex {
	m := &l.stripes[l.index(followerID, followedID)]
	m.Lock()
	return m
}

// index maps an ordered pair deterministically to a stripe. The separator byte
// keeps ("ab","c") and ("a","bc") from colliding on the same concatenation.
func (l *pairLock) index(followerID, followedID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(followerID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(followedID))
	return int(h.Sum32() % pairLockStripes)
}
