package server

// welcomeMessage is sent to every client on connect, mirroring the command
// set the dispatcher accepts.
const welcomeMessage = `Welcome to Medusa server!
Commands:
  SET key value [ttl]    - Store a key-value pair, optionally expiring in ttl seconds
  GET key                - Retrieve value by key
  DELETE key             - Remove key-value pair
  EXISTS key             - Check if key exists
  EXPIRE key seconds     - Set expiration on an existing key
  TTL key                - Remaining lifetime of a key
  LIST                   - List all keys
  KEYS pattern           - List keys matching a pattern (one * wildcard)
  COUNT                  - Get number of entries
  CLEAR                  - Remove all entries
  INFO                   - Server diagnostics
  HSET key field value   - Set a hash field
  HGET key field         - Get a hash field
  HGETALL key            - Get all hash fields
  HDEL key field         - Delete a hash field
  HEXISTS key field      - Check if a hash field exists
  HLEN key               - Number of hash fields
  LPUSH/RPUSH key value  - Push to head/tail of a list
  LPOP/RPOP key          - Pop from head/tail of a list
  LLEN key               - List length
  LRANGE key start stop  - Inclusive list slice, negative indices from end
  PING                   - Server health check
  QUIT/EXIT              - Disconnect
`
