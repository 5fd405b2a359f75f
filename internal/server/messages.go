package server

// Command types accepted from a browser client.
const (
	CmdMove     = "move"
	CmdScramble = "scramble"
	CmdSolve    = "solve"
	CmdReset    = "reset"
)

// Command is a message sent by a client over the websocket.
type Command struct {
	Type     string `json:"type"`
	Notation string `json:"notation,omitempty"`
	N        int    `json:"n,omitempty"`
}

// Frame is pushed to clients after the cube changes. Buffers holds only the
// cubies whose geometry changed since the client's previous frame; the first
// frame after connecting holds all 26.
type Frame struct {
	Type     string               `json:"type"`
	Buffers  map[string][]float32 `json:"buffers,omitempty"`
	Phase    string               `json:"phase"`
	Pending  int                  `json:"pending"`
	Solved   bool                 `json:"solved"`
	Scramble []string             `json:"scramble,omitempty"`
	Solution []string             `json:"solution,omitempty"`
	Error    string               `json:"error,omitempty"`
}

const (
	frameType = "frame"
	errorType = "error"
)
