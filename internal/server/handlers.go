package server

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Handlers render store results as single-line text responses. The prefixes
// are part of the wire contract: OK for success, NULL for absence, TRUE and
// FALSE for predicates, ERROR for rejected commands. Absence is never an
// ERROR; only type conflicts and malformed requests are.

func set(ctx *context) string {
	if len(ctx.args) < 2 {
		return "ERROR: SET requires key and value (SET key value [ttl])"
	}
	key := ctx.args[0]

	// A third argument that parses as a non-negative integer is a TTL in
	// seconds. Values containing spaces are joined back together instead.
	if len(ctx.args) == 3 {
		if ttl, err := strconv.ParseInt(ctx.args[2], 10, 64); err == nil && ttl >= 0 {
			ctx.store.SetWithTTL(key, ctx.args[1], ttl)
			return fmt.Sprintf("OK: Set '%s' = '%s' (expires in %ds)", key, ctx.args[1], ttl)
		}
	}

	val := strings.Join(ctx.args[1:], " ")
	ctx.store.Set(key, val)
	return fmt.Sprintf("OK: Set '%s' = '%s'", key, val)
}

func get(ctx *context) string {
	if len(ctx.args) < 1 {
		return "ERROR: GET requires a key (GET key)"
	}
	key := ctx.args[0]

	val, ok, err := ctx.store.Get(key)
	if err != nil {
		return "ERROR: " + err.Error()
	}
	if !ok {
		return fmt.Sprintf("NULL: Key '%s' not found", key)
	}
	return fmt.Sprintf("OK: '%s' = %s", key, val)
}

func del(ctx *context) string {
	if len(ctx.args) < 1 {
		return "ERROR: DELETE requires a key (DELETE key)"
	}
	key := ctx.args[0]

	prev, ok := ctx.store.Delete(key)
	if !ok {
		return fmt.Sprintf("NULL: Key '%s' not found", key)
	}
	return fmt.Sprintf("OK: Deleted '%s' (was '%s')", key, prev)
}

func exists(ctx *context) string {
	if len(ctx.args) < 1 {
		return "ERROR: EXISTS requires a key (EXISTS key)"
	}
	key := ctx.args[0]

	if ctx.store.Exists(key) {
		return fmt.Sprintf("TRUE: Key '%s' exists", key)
	}
	return fmt.Sprintf("FALSE: Key '%s' does not exist", key)
}

func expire(ctx *context) string {
	if len(ctx.args) < 2 {
		return "ERROR: EXPIRE requires key and ttl (EXPIRE key seconds)"
	}
	key := ctx.args[0]

	ttl, err := strconv.ParseInt(ctx.args[1], 10, 64)
	if err != nil || ttl < 0 {
		return "ERROR: EXPIRE ttl must be a non-negative integer"
	}

	if !ctx.store.Expire(key, ttl) {
		return fmt.Sprintf("NULL: Key '%s' not found", key)
	}
	return fmt.Sprintf("OK: Key '%s' expires in %ds", key, ttl)
}

func ttl(ctx *context) string {
	if len(ctx.args) < 1 {
		return "ERROR: TTL requires a key (TTL key)"
	}
	key := ctx.args[0]

	secs, ok := ctx.store.TTL(key)
	if !ok {
		return fmt.Sprintf("NULL: Key '%s' not found or has no expiration", key)
	}
	if secs == -1 {
		return fmt.Sprintf("NULL: Key '%s' has expired", key)
	}
	return fmt.Sprintf("OK: Key '%s' expires in %ds", key, secs)
}

func listKeys(ctx *context) string {
	return renderKeys(ctx.store.ListKeys())
}

func keys(ctx *context) string {
	if len(ctx.args) < 1 {
		return "ERROR: KEYS requires a pattern (KEYS pattern)"
	}
	return renderKeys(ctx.store.Keys(ctx.args[0]))
}

func renderKeys(ks []string) string {
	if len(ks) == 0 {
		return "OK: No keys found"
	}
	sort.Strings(ks)
	return "OK: Keys: " + strings.Join(ks, ", ")
}

func count(ctx *context) string {
	return fmt.Sprintf("OK: %d entries", ctx.store.Count())
}

func clear(ctx *context) string {
	ctx.store.Clear()
	return "OK: All entries cleared"
}

func info(ctx *context) string {
	return strings.TrimRight(ctx.store.Info(), "\n")
}

func ping(ctx *context) string {
	return "PONG"
}

func hset(ctx *context) string {
	if len(ctx.args) < 3 {
		return "ERROR: HSET requires key, field and value (HSET key field value)"
	}
	key, field := ctx.args[0], ctx.args[1]
	val := strings.Join(ctx.args[2:], " ")

	created, err := ctx.store.HSet(key, field, val)
	if err != nil {
		return "ERROR: " + err.Error()
	}
	if created {
		return fmt.Sprintf("TRUE: Created field '%s' in '%s'", field, key)
	}
	return fmt.Sprintf("FALSE: Updated field '%s' in '%s'", field, key)
}

func hget(ctx *context) string {
	if len(ctx.args) < 2 {
		return "ERROR: HGET requires key and field (HGET key field)"
	}
	key, field := ctx.args[0], ctx.args[1]

	val, ok, err := ctx.store.HGet(key, field)
	if err != nil {
		return "ERROR: " + err.Error()
	}
	if !ok {
		return fmt.Sprintf("NULL: Field '%s' not found in '%s'", field, key)
	}
	return fmt.Sprintf("OK: '%s' = %s", field, val)
}

func hgetall(ctx *context) string {
	if len(ctx.args) < 1 {
		return "ERROR: HGETALL requires a key (HGETALL key)"
	}

	fields, err := ctx.store.HGetAll(ctx.args[0])
	if err != nil {
		return "ERROR: " + err.Error()
	}
	if len(fields) == 0 {
		return "OK: No fields found"
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = name + "=" + fields[name]
	}
	return "OK: " + strings.Join(pairs, ", ")
}

func hdel(ctx *context) string {
	if len(ctx.args) < 2 {
		return "ERROR: HDEL requires key and field (HDEL key field)"
	}
	key, field := ctx.args[0], ctx.args[1]

	removed, err := ctx.store.HDel(key, field)
	if err != nil {
		return "ERROR: " + err.Error()
	}
	if !removed {
		return fmt.Sprintf("FALSE: Field '%s' not found in '%s'", field, key)
	}
	return fmt.Sprintf("TRUE: Deleted field '%s' from '%s'", field, key)
}

func hexists(ctx *context) string {
	if len(ctx.args) < 2 {
		return "ERROR: HEXISTS requires key and field (HEXISTS key field)"
	}
	key, field := ctx.args[0], ctx.args[1]

	ok, err := ctx.store.HExists(key, field)
	if err != nil {
		return "ERROR: " + err.Error()
	}
	if ok {
		return fmt.Sprintf("TRUE: Field '%s' exists in '%s'", field, key)
	}
	return fmt.Sprintf("FALSE: Field '%s' does not exist in '%s'", field, key)
}

func hlen(ctx *context) string {
	if len(ctx.args) < 1 {
		return "ERROR: HLEN requires a key (HLEN key)"
	}

	n, err := ctx.store.HLen(ctx.args[0])
	if err != nil {
		return "ERROR: " + err.Error()
	}
	return fmt.Sprintf("OK: %d fields", n)
}

func lpush(ctx *context) string {
	return push(ctx, "LPUSH", ctx.store.LPush)
}

func rpush(ctx *context) string {
	return push(ctx, "RPUSH", ctx.store.RPush)
}

func push(ctx *context, verb string, op func(key, val string) (int, error)) string {
	if len(ctx.args) < 2 {
		return fmt.Sprintf("ERROR: %s requires key and value (%s key value)", verb, verb)
	}
	key := ctx.args[0]
	val := strings.Join(ctx.args[1:], " ")

	n, err := op(key, val)
	if err != nil {
		return "ERROR: " + err.Error()
	}
	return fmt.Sprintf("OK: %d items", n)
}

func lpop(ctx *context) string {
	return pop(ctx, "LPOP", ctx.store.LPop)
}

func rpop(ctx *context) string {
	return pop(ctx, "RPOP", ctx.store.RPop)
}

func pop(ctx *context, verb string, op func(key string) (string, bool, error)) string {
	if len(ctx.args) < 1 {
		return fmt.Sprintf("ERROR: %s requires a key (%s key)", verb, verb)
	}
	key := ctx.args[0]

	val, ok, err := op(key)
	if err != nil {
		return "ERROR: " + err.Error()
	}
	if !ok {
		return fmt.Sprintf("NULL: List '%s' is empty", key)
	}
	return "OK: " + val
}

func llen(ctx *context) string {
	if len(ctx.args) < 1 {
		return "ERROR: LLEN requires a key (LLEN key)"
	}

	n, err := ctx.store.LLen(ctx.args[0])
	if err != nil {
		return "ERROR: " + err.Error()
	}
	return fmt.Sprintf("OK: %d items", n)
}

func lrange(ctx *context) string {
	if len(ctx.args) < 3 {
		return "ERROR: LRANGE requires key, start and stop (LRANGE key start stop)"
	}
	key := ctx.args[0]

	start, err := strconv.Atoi(ctx.args[1])
	if err != nil {
		return "ERROR: LRANGE start must be an integer"
	}
	stop, err := strconv.Atoi(ctx.args[2])
	if err != nil {
		return "ERROR: LRANGE stop must be an integer"
	}

	items, err := ctx.store.LRange(key, start, stop)
	if err != nil {
		return "ERROR: " + err.Error()
	}
	if len(items) == 0 {
		return "OK: Empty range"
	}
	return "OK: " + strings.Join(items, ", ")
}
