package config

import (
	"time"

	"github.com/pion/webrtc/v4"
)

// Config is the root configuration for the relay server.
type Config struct {
	Server     ServerConfig      `yaml:"server"`
	WebSocket  WebSocketConfig   `yaml:"websocket"`
	ICEServers []ICEServerConfig `yaml:"ice_servers"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	StaticDir       string        `yaml:"static_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type WebSocketConfig struct {
	ReadBufferSize  int `yaml:"read_buffer_size"`
	WriteBufferSize int `yaml:"write_buffer_size"`
}

// ICEServerConfig is one STUN/TURN entry handed to browsers so they can
// build their RTCPeerConnection config. The relay never contacts these
// servers itself.
type ICEServerConfig struct {
	URLs       []string `yaml:"urls"`
	Username   string   `yaml:"username"`
	Credential string   `yaml:"credential"`
}

// PeerICEServers converts the configured entries into the shape the
// /ice-servers endpoint serves.
func (c *Config) PeerICEServers() []webrtc.ICEServer {
	out := make([]webrtc.ICEServer, 0, len(c.ICEServers))
	for _, s := range c.ICEServers {
		server := webrtc.ICEServer{
			URLs:     s.URLs,
			Username: s.Username,
		}
		if s.Credential != "" {
			server.Credential = s.Credential
		}
		out = append(out, server)
	}
	return out
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "./static"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.WebSocket.ReadBufferSize == 0 {
		c.WebSocket.ReadBufferSize = 1024
	}
	if c.WebSocket.WriteBufferSize == 0 {
		c.WebSocket.WriteBufferSize = 1024
	}
	if len(c.ICEServers) == 0 {
		c.ICEServers = []ICEServerConfig{
			{URLs: []string{"stun:stun.l.google.com:19302"}},
		}
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
