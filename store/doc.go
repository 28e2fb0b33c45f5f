// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store owns the authoritative poll record.

Exactly one poll exists at a time. All mutation goes through the Store
interface; nothing else touches the record, and callers always receive
copies.

# Implementations

MemoryStore holds state behind a mutex for single-instance deployments and
tests. RedisStore shares state across instances using two fixed keys:

	poll:state  JSON metadata record (question, options, active flag, timer)
	poll:votes  hash of voter id → chosen option

Votes live only in the hash. HSET per voter makes concurrent vote writes
independent field updates, so two voters racing on the record can't lose
each other's votes the way a read-modify-write of one JSON blob would. The
vote write runs as a Lua script that re-checks the active flag, keeping
"no votes after end" atomic on the Redis side too.

# Failure modes

Get returns the safe default state alongside any storage error; read-only
callers log and display the default during an outage. Start, End, and Reset
propagate storage errors so the control surface can retry.
*/
package store
