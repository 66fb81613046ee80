package websocket

import (
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/zishang520/engine.io/v2/types"
	socketio "github.com/zishang520/socket.io/v2/socket"

	"noteroom-server/core"
	"noteroom-server/rooms"
)

var localhostOrigin = regexp.MustCompile(`^https?://(localhost|127\.0\.0\.1|\[::1\])(:\d+)?$`)

// SetupSocketIO wires the relay events onto a Socket.IO server backed by
// reg. clientOrigin is the allowed browser origin; localhost is always
// accepted.
func SetupSocketIO(reg *rooms.Registry, clientOrigin string) *socketio.Server {
	opts := socketio.DefaultServerOptions()
	opts.SetMaxHttpBufferSize(5000000)
	opts.SetPath("/socket.io")
	opts.SetAllowEIO3(true)
	opts.SetCors(&types.Cors{
		Origin: []any{
			clientOrigin,
			localhostOrigin,
		},
		Credentials: true,
	})
	srv := socketio.NewServer(nil, opts)

	srv.On("connection", func(clients ...any) {
		socket, ok := clients[0].(*socketio.Socket)
		if !ok {
			return
		}
		newRelay(srv, socket, reg).register()
	})

	return srv
}

// relay dispatches one connection's inbound events against the shared
// registry. The transport-assigned socket id is the only member identity
// ever stored or broadcast; identifier payloads supplied by clients carry no
// authority.
type relay struct {
	srv    *socketio.Server
	socket *socketio.Socket
	reg    *rooms.Registry
	me     core.MemberID
}

func newRelay(srv *socketio.Server, socket *socketio.Socket, reg *rooms.Registry) *relay {
	return &relay{
		srv:    srv,
		socket: socket,
		reg:    reg,
		me:     core.MemberID(socket.Id()),
	}
}

func (rl *relay) register() {
	logrus.WithField("connection_id", rl.me).Debug("client connected")

	//nolint:errcheck // Socket.IO event handlers do not return useful errors
	rl.socket.On("joinRoom", func(datas ...any) {
		roomID, ok := stringArg(datas, 0)
		if !ok {
			return
		}
		rl.joinRoom(roomID)
	})

	//nolint:errcheck // Socket.IO event handlers do not return useful errors
	rl.socket.On("updateNote", func(datas ...any) {
		roomID, ok := stringArg(datas, 0)
		if !ok {
			return
		}
		// A missing or non-string payload is relayed as the empty
		// document; there is no rejection path for content.
		content, _ := stringArg(datas, 1)
		rl.updateNote(roomID, content)
	})

	//nolint:errcheck // Socket.IO event handlers do not return useful errors
	rl.socket.On("userTyping", func(datas ...any) {
		roomID, ok := stringArg(datas, 0)
		if !ok {
			return
		}
		rl.userTyping(roomID)
	})

	//nolint:errcheck // Socket.IO event handlers do not return useful errors
	rl.socket.On("userJoined", func(datas ...any) {
		roomID, ok := stringArg(datas, 0)
		if !ok {
			return
		}
		rl.userJoined(roomID)
	})

	//nolint:errcheck // Socket.IO event handlers do not return useful errors
	rl.socket.On("userLeft", func(datas ...any) {
		roomID, ok := stringArg(datas, 0)
		if !ok {
			return
		}
		rl.userLeft(roomID)
	})

	rl.socket.On("disconnecting", func(datas ...any) {
		rl.disconnecting()
	})

	rl.socket.On("disconnect", func(datas ...any) {
		rl.socket.RemoveAllListeners("")
		rl.socket.Disconnect(true)
	})
}

// joinRoom is the single authoritative join transition: it inserts the
// sender into the member set, seeds the joiner with the current document and
// member list, and announces the join to the entire room (joiner included).
func (rl *relay) joinRoom(roomID string) {
	room := socketio.Room(roomID)
	rl.socket.Join(room)

	members := rl.reg.Join(roomID, rl.me)
	logrus.WithFields(logrus.Fields{
		"connection_id": rl.me,
		"room_id":       roomID,
	}).Info("socket joined room")

	// Document first so the client renders content before the user list;
	// a room with no update yet sends no payload at all.
	if content, ok := rl.reg.Document(roomID); ok {
		rl.socket.Emit("noteUpdate", content)
	}
	rl.socket.Emit("roomUsers", members)

	rl.srv.In(room).Emit("userJoined", rl.me)
}

// updateNote applies a last-write-wins overwrite and fans the new content
// out to everyone in the room except the sender. No acknowledgment is sent.
func (rl *relay) updateNote(roomID, content string) {
	rl.reg.UpdateDocument(roomID, content, func(content string) {
		rl.socket.Broadcast().To(socketio.Room(roomID)).Emit("noteUpdate", content)
	})

	logrus.WithFields(logrus.Fields{
		"connection_id":  rl.me,
		"room_id":        roomID,
		"content_length": len(content),
	}).Debug("note update relayed")
}

// userTyping is a stateless relay: every invocation reaches all other room
// members, with no de-duplication and no stopped-typing counterpart. Expiry
// of the indicator is the display client's job.
func (rl *relay) userTyping(roomID string) {
	rl.socket.Broadcast().To(socketio.Room(roomID)).Emit("userTyping", rl.me)
}

// userJoined handles the explicit client-side presence announcement. The
// set insert is idempotent, so after a joinRoom this only re-broadcasts the
// join to the entire room.
func (rl *relay) userJoined(roomID string) {
	rl.reg.Join(roomID, rl.me)
	rl.srv.In(socketio.Room(roomID)).Emit("userJoined", rl.me)
}

// userLeft removes the sender from the member set and announces the
// departure to the entire room, the leaver included. The socket stays
// subscribed to the transport room, matching the reference relay.
func (rl *relay) userLeft(roomID string) {
	if !rl.reg.Leave(roomID, rl.me) {
		return
	}
	rl.srv.In(socketio.Room(roomID)).Emit("userLeft", rl.me)
}

// disconnecting treats stream closure as an implicit departure from every
// joined room, so abrupt disconnects cannot leak member ids. The reference
// relay skipped this cleanup; see DESIGN.md.
func (rl *relay) disconnecting() {
	for _, room := range rl.socket.Rooms().Keys() {
		roomID := string(room)
		if rl.reg.Leave(roomID, rl.me) {
			logrus.WithFields(logrus.Fields{
				"connection_id": rl.me,
				"room_id":       roomID,
			}).Info("disconnect treated as departure")
			rl.socket.Broadcast().To(room).Emit("userLeft", rl.me)
		}
	}
}

// stringArg extracts the i-th event argument as a string. Socket.IO hands
// handlers untyped payloads; anything else is treated as absent.
func stringArg(datas []any, i int) (string, bool) {
	if i < 0 || i >= len(datas) {
		return "", false
	}
	s, ok := datas[i].(string)
	return s, ok
}
