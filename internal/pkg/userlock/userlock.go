// Package userlock сериализует обработку событий одного пользователя.
//
// Вместо одного глобального мьютекса или акторов с выселением используется
// шардированный набор мьютексов: события одного пользователя всегда попадают
// на один шард и обрабатываются строго по порядку, несвязанные пользователи
// пересекаются только при коллизии шардов.
package userlock

import (
	"encoding/binary"
	"hash/fnv"
	"sync"
)

const shardCount = 64

// Keyed шардированный мьютекс по идентификатору пользователя
type Keyed struct {
	shards [shardCount]sync.Mutex
}

// New создаёт новый набор шардов
func New() *Keyed {
	return &Keyed{}
}

// Lock захватывает шард для данного пользователя
func (k *Keyed) Lock(userID int64) {
	k.shards[shardFor(userID)].Lock()
}

// Unlock освобождает шард для данного пользователя
func (k *Keyed) Unlock(userID int64) {
	k.shards[shardFor(userID)].Unlock()
}

func shardFor(userID int64) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(userID))
	h := fnv.New32a()
	h.Write(buf[:])
	return h.Sum32() % shardCount
}
