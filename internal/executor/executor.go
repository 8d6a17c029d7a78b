// Package executor evaluates a parsed command against the store and
// produces the RESP reply value, exactly per spec.md §4.4's reply-shape
// table. It is a pure function of (command, store): no I/O, no locking
// beyond what store.Store already does internally.
package executor

import (
	"time"

	"github.com/kvlabs/rudis/internal/command"
	"github.com/kvlabs/rudis/internal/resp"
	"github.com/kvlabs/rudis/internal/store"
)

// Execute runs cmd against st and returns the RESP reply to write back to
// the client. Every command name recognized by command.Parse is handled
// here; command.Parse guarantees it never hands Execute a Command with an
// unrecognized Name.
func Execute(cmd command.Command, st *store.Store) resp.Value {
	switch cmd.Name {
	case command.Ping:
		return execPing(cmd)
	case command.Echo:
		return resp.BulkValue(cmd.Message)
	case command.Get:
		return execGet(cmd, st)
	case command.Set:
		return execSet(cmd, st)
	case command.Del:
		return resp.IntegerValue(st.Del(keyStrings(cmd.Keys)...))
	case command.Exists:
		return resp.IntegerValue(st.Exists(keyStrings(cmd.Keys)...))
	case command.Expire:
		return execExpire(cmd, st)
	case command.Incr:
		return execIncrDecr(cmd, st, 1)
	case command.Decr:
		return execIncrDecr(cmd, st, -1)
	case command.Keys:
		return execKeys(cmd, st)
	case command.DBSize:
		return resp.IntegerValue(st.DBSize())
	case command.FlushDB:
		st.FlushDB()
		return resp.SimpleStringValue("OK")
	default:
		return resp.ErrorValue("ERR unknown command '" + string(cmd.Name) + "'")
	}
}

func execPing(cmd command.Command) resp.Value {
	if cmd.Message == nil {
		return resp.SimpleStringValue("PONG")
	}
	return resp.BulkValue(cmd.Message)
}

func execGet(cmd command.Command, st *store.Store) resp.Value {
	v, ok := st.Get(string(cmd.Key))
	if !ok {
		return resp.NullBulk()
	}
	return resp.BulkValue(v)
}

func execSet(cmd command.Command, st *store.Store) resp.Value {
	var ttl time.Duration
	if cmd.TTLSet {
		if cmd.TTLMS {
			ttl = time.Duration(cmd.TTL) * time.Millisecond
		} else {
			ttl = time.Duration(cmd.TTL) * time.Second
		}
	}
	st.Set(string(cmd.Key), cmd.Value, ttl)
	return resp.SimpleStringValue("OK")
}

func execExpire(cmd command.Command, st *store.Store) resp.Value {
	ok := st.Expire(string(cmd.Key), time.Duration(cmd.Seconds)*time.Second)
	if ok {
		return resp.IntegerValue(1)
	}
	return resp.IntegerValue(0)
}

func execIncrDecr(cmd command.Command, st *store.Store, delta int64) resp.Value {
	n, err := st.IncrBy(string(cmd.Key), delta)
	if err != nil {
		return resp.ErrorValue(err.Error())
	}
	return resp.IntegerValue(n)
}

func execKeys(cmd command.Command, st *store.Store) resp.Value {
	keys := st.Keys(string(cmd.Key))
	items := make([]resp.Value, len(keys))
	for i, k := range keys {
		items[i] = resp.BulkStringValue(k)
	}
	return resp.ArrayValue(items)
}

func keyStrings(keys [][]byte) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
