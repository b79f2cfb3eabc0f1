package golembase

// Config holds connection settings for the Golem Base endpoint.
type Config struct {
	// RPCURL is the HTTP JSON-RPC endpoint.
	RPCURL string `mapstructure:"rpc_url" default:"https://reality-games.holesky.golem-base.io/rpc"`
	// WSURL is the websocket endpoint used for log watching.
	WSURL string `mapstructure:"ws_url" default:"wss://reality-games.holesky.golem-base.io/rpc/ws"`
	// PrivateKey authenticates writes. Required for create/update operations.
	PrivateKey string `mapstructure:"private_key" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
