package handlers

import (
	socketio_types "MenuGacha/services/socket_io/types"

	log "github.com/sirupsen/logrus"
)

// Function to handle socket.io client disconnections.
func HandleDisconnecting(id string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		sio.RemoveConnection(id)
		log.WithFields(log.Fields{"socket": id, "connections": sio.Count()}).Info("[DISCONNECT] client left")
	}
}
