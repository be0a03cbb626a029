package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/Legacy-Engineers/medusa/internal/store"
	"github.com/Legacy-Engineers/medusa/internal/telemetry"
	"go.uber.org/zap"
)

// Engine maps command verbs onto store operations. The verb set is closed:
// dispatch is a registry lookup, never reflection.
type Engine struct {
	commands map[string]command
	store    *store.Store
	logger   *zap.Logger
}

// NewEngine initializes the engine and registers the command set.
func NewEngine(s *store.Store, logger *zap.Logger) *Engine {
	engine := &Engine{
		commands: make(map[string]command),
		store:    s,
		logger:   logger,
	}
	engine.registerBasicCommands()
	return engine
}

// register adds a new command to the engine. The command name is uppercase.
func (e *Engine) register(name string, cmd command) {
	e.commands[strings.ToUpper(name)] = cmd
}

func (e *Engine) registerBasicCommands() {
	e.register("SET", commandFunc(set))
	e.register("GET", commandFunc(get))
	e.register("DELETE", commandFunc(del))
	e.register("DEL", commandFunc(del))
	e.register("EXISTS", commandFunc(exists))
	e.register("EXPIRE", commandFunc(expire))
	e.register("TTL", commandFunc(ttl))
	e.register("LIST", commandFunc(listKeys))
	e.register("KEYS", commandFunc(keys))
	e.register("COUNT", commandFunc(count))
	e.register("CLEAR", commandFunc(clear))
	e.register("INFO", commandFunc(info))
	e.register("PING", commandFunc(ping))

	e.register("HSET", commandFunc(hset))
	e.register("HGET", commandFunc(hget))
	e.register("HGETALL", commandFunc(hgetall))
	e.register("HDEL", commandFunc(hdel))
	e.register("HEXISTS", commandFunc(hexists))
	e.register("HLEN", commandFunc(hlen))

	e.register("LPUSH", commandFunc(lpush))
	e.register("RPUSH", commandFunc(rpush))
	e.register("LPOP", commandFunc(lpop))
	e.register("RPOP", commandFunc(rpop))
	e.register("LLEN", commandFunc(llen))
	e.register("LRANGE", commandFunc(lrange))
}

// Execute finds the command by name and executes it with the passed
// arguments, returning the response line. Unknown verbs yield an ERROR
// response rather than failing the connection.
func (e *Engine) Execute(name string, args []string) string {
	verb := strings.ToUpper(name)

	if e.logger.Core().Enabled(zap.DebugLevel) {
		e.logger.Debug("executing command",
			zap.String("cmd", verb),
			zap.Int("args_count", len(args)),
		)
	}

	cmd, ok := e.commands[verb]
	if !ok {
		telemetry.CommandsTotal.WithLabelValues("UNKNOWN", "error").Inc()
		return fmt.Sprintf("ERROR: Unknown command '%s'", name)
	}

	start := time.Now()
	res := cmd.execute(&context{args: args, store: e.store})
	telemetry.CommandDuration.WithLabelValues(verb).Observe(time.Since(start).Seconds())

	status := "ok"
	if strings.HasPrefix(res, "ERROR") {
		status = "error"
	}
	telemetry.CommandsTotal.WithLabelValues(verb, status).Inc()

	return res
}
