// Package comm provides the communication fabric between a client and
// its transport: three paired string channels carrying serialized
// JSON-RPC frames (client-to-server, server-to-client, and an
// auxiliary server-to-client side channel for transport diagnostics
// such as a child's stderr).
//
// Channels are buffered with BufferSize slots; a full buffer blocks
// the sender, which is the back-pressure policy. The transport closes
// S2C and Aux when its read side ends; the C2S channel is never
// closed, the transport's writer stops via context cancellation.
package comm

import "context"

// BufferSize is the capacity of each fabric channel.
const BufferSize = 128

// ClientEnd is the client-facing half of the fabric.
type ClientEnd struct {
	// C2S carries outbound frames to the transport.
	C2S chan<- string
	// S2C carries inbound frames from the server.
	S2C <-chan string
	// Aux carries transport diagnostics (e.g. child stderr lines).
	Aux <-chan string
}

// TransportEnd is the transport-facing half of the fabric, the dual of
// ClientEnd.
type TransportEnd struct {
	C2S <-chan string
	S2C chan<- string
	Aux chan<- string
}

// New produces a connected (ClientEnd, TransportEnd) pair.
func New() (ClientEnd, TransportEnd) {
	c2s := make(chan string, BufferSize)
	s2c := make(chan string, BufferSize)
	aux := make(chan string, BufferSize)

	clientEnd := ClientEnd{C2S: c2s, S2C: s2c, Aux: aux}
	transportEnd := TransportEnd{C2S: c2s, S2C: s2c, Aux: aux}
	return clientEnd, transportEnd
}

// Send delivers one frame to the server, honoring ctx cancellation
// while the buffer is full.
func (e ClientEnd) Send(ctx context.Context, frame string) error {
	select {
	case e.C2S <- frame:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
