package socket_io

import (
	"MenuGacha/services/gacha"
	"MenuGacha/services/socket_io/handlers"
	socketio_types "MenuGacha/services/socket_io/types"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// Start mounts the socket.io endpoint on the router. Clients send "draw"
// events and receive "draw_result" back on the same socket.
func (sio *MySocketServer) Start(router *gin.Engine, catalogs handlers.CatalogSource, service *gacha.Service, origins []string) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      strings.Join(origins, ","),
		Credentials: true,
	})

	// KEY: the map must exist before the first connection
	sio.Connections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		id := string(client.Id())

		(*socketio_types.SocketServer)(sio).AddConnection(client)
		log.WithFields(log.Fields{"socket": id, "connections": (*socketio_types.SocketServer)(sio).Count()}).
			Info("[CONNECT] client joined")

		client.On("draw", handlers.HandleDraw(client, catalogs, service))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(id, (*socketio_types.SocketServer)(sio)))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	log.Info("Socket server started")
}

// Close shuts the socket.io server down
func (sio *MySocketServer) Close() {
	if sio.Sio_server != nil {
		sio.Sio_server.Close(nil)
	}
}
