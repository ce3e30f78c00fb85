// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/novol/internal/platform/constants"
	"github.com/taibuivan/novol/pkg/uuidv7"
)

// ErrLockHeld is returned when another importer already owns the batch lock.
var ErrLockHeld = errors.New("redis: import lock is held by another process")

// releaseScript deletes the key only if it still holds our token, so an
// expired-then-reacquired lock is never released by its previous owner.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extendScript resets the TTL only while the key still holds our token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// BatchLock is a single-key mutual exclusion lock with a TTL. A held lock
// is extended every third of its TTL until released, so the TTL only bounds
// how long the lock outlives a crashed owner.
type BatchLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBatchLock builds a lock whose keys expire after ttl.
func NewBatchLock(client *redis.Client, ttl time.Duration) *BatchLock {
	return &BatchLock{client: client, ttl: ttl}
}

/*
Acquire takes the named lock and keeps it alive until release.

Parameters:
  - context: context.Context
  - name: string (scope of the lock, e.g. the target database)

Returns:
  - func(context.Context) error: releases the lock; safe to call once
  - error: ErrLockHeld if another owner holds it, or a Redis failure
*/
func (lock *BatchLock) Acquire(context stdctx.Context, name string) (func(stdctx.Context) error, error) {
	key := constants.RedisPrefixImportLock + name
	token := uuidv7.New()

	acquired, err := lock.client.SetNX(context, key, token, lock.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: failed to acquire lock %s: %w", key, err)
	}
	if !acquired {
		return nil, ErrLockHeld
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go lock.keepAlive(stdctx.WithoutCancel(context), key, token, stop, done)

	var once sync.Once
	release := func(context stdctx.Context) error {
		once.Do(func() {
			close(stop)
			<-done
		})
		if err := releaseScript.Run(context, lock.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("redis: failed to release lock %s: %w", key, err)
		}
		return nil
	}

	return release, nil
}

// keepAlive extends the key until stop is closed or the token is lost.
func (lock *BatchLock) keepAlive(context stdctx.Context, key, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(lock.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			extended, err := extendScript.Run(context, lock.client, []string{key}, token, lock.ttl.Milliseconds()).Int()
			if err == nil && extended == 0 {
				return
			}
		}
	}
}
