package sensor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// BridgeConfig holds configuration for the websocket tilt bridge.
type BridgeConfig struct {
	// Address is the host:port to listen on (e.g., ":8090").
	Address string

	// StaleAfter is how old the latest reading may be before Sample
	// stops reporting it.
	StaleAfter time.Duration
}

// DefaultBridgeConfig returns a config with sensible defaults.
func DefaultBridgeConfig() BridgeConfig {
	return BridgeConfig{
		Address:    ":8090",
		StaleAfter: time.Second,
	}
}

const maxFrameSize = 1024

// Bridge accepts orientation readings from phones over a websocket and
// exposes the most recent one as a Source.
type Bridge struct {
	config   BridgeConfig
	logger   *log.Logger
	upgrader websocket.Upgrader
	server   *http.Server
	listener net.Listener
	now      func() time.Time

	mu      sync.Mutex
	latest  Reading
	at      time.Time
	has     bool
	clients int
}

// NewBridge creates a bridge. Call Start to begin listening.
func NewBridge(cfg BridgeConfig, logger *log.Logger) *Bridge {
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultBridgeConfig().StaleAfter
	}
	b := &Bridge{
		config: cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  maxFrameSize,
			WriteBufferSize: maxFrameSize,
			// Controller pages may be hosted elsewhere.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		now: time.Now,
	}
	b.server = &http.Server{
		Handler:           b.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return b
}

// Handler returns the HTTP handler serving the controller page at "/"
// and the websocket endpoint at "/tilt".
func (b *Bridge) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", b.handleIndex)
	mux.HandleFunc("/tilt", b.handleTilt)
	return mux
}

// Start listens on the configured address and serves in the background.
func (b *Bridge) Start() error {
	ln, err := net.Listen("tcp", b.config.Address)
	if err != nil {
		return fmt.Errorf("sensor: cannot listen on %s: %w", b.config.Address, err)
	}
	b.listener = ln
	b.logger.Info("tilt bridge listening", "address", ln.Addr().String())

	go func() {
		if err := b.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.logger.Error("tilt bridge stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the actual listen address once started.
func (b *Bridge) Addr() string {
	if b.listener == nil {
		return b.config.Address
	}
	return b.listener.Addr().String()
}

// Shutdown stops accepting connections and waits for handlers to return.
func (b *Bridge) Shutdown(ctx context.Context) error {
	return b.server.Shutdown(ctx)
}

// Sample returns the latest reading if it is still fresh.
func (b *Bridge) Sample() (Reading, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.has || b.now().Sub(b.at) > b.config.StaleAfter {
		return Reading{}, false
	}
	return b.latest, true
}

// Connected returns the number of open controller connections.
func (b *Bridge) Connected() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clients
}

func (b *Bridge) store(r Reading) {
	b.mu.Lock()
	b.latest = r
	b.at = b.now()
	b.has = true
	b.mu.Unlock()
}

func (b *Bridge) addClient(delta int) {
	b.mu.Lock()
	b.clients += delta
	b.mu.Unlock()
}

// handleTilt reads JSON readings until the controller disconnects.
func (b *Bridge) handleTilt(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxFrameSize)
	b.addClient(1)
	defer b.addClient(-1)
	b.logger.Info("controller connected", "remote", r.RemoteAddr)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				b.logger.Warn("controller read failed", "remote", r.RemoteAddr, "error", err)
			}
			break
		}

		var reading Reading
		if err := json.Unmarshal(message, &reading); err != nil {
			b.logger.Debug("dropping malformed reading", "remote", r.RemoteAddr, "error", err)
			continue
		}
		b.store(reading)
	}

	b.logger.Info("controller disconnected", "remote", r.RemoteAddr)
}

func (b *Bridge) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	//nolint:errcheck // Client went away, nothing to do
	w.Write([]byte(controllerPage))
}

// controllerPage streams devicemotion readings in g units, about every
// 100ms, to /tilt on the same host.
const controllerPage = `<!doctype html>
<html>
<head><meta name="viewport" content="width=device-width, initial-scale=1"><title>Tilt Dodge</title></head>
<body style="background:#111;color:#fff;font-family:sans-serif;text-align:center">
<h1>Tilt to Dodge!</h1>
<button id="go" style="font-size:24px;padding:12px 30px">Connect</button>
<p id="status"></p>
<script>
document.getElementById("go").onclick = async function () {
  if (typeof DeviceMotionEvent !== "undefined" && DeviceMotionEvent.requestPermission) {
    await DeviceMotionEvent.requestPermission();
  }
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/tilt");
  var status = document.getElementById("status");
  var last = 0;
  ws.onopen = function () { status.textContent = "connected"; };
  ws.onclose = function () { status.textContent = "disconnected"; };
  window.addEventListener("devicemotion", function (e) {
    var a = e.accelerationIncludingGravity;
    var now = Date.now();
    if (!a || ws.readyState !== 1 || now - last < 100) return;
    last = now;
    ws.send(JSON.stringify({x: a.x / 9.81, y: a.y / 9.81, z: a.z / 9.81}));
  });
};
</script>
</body>
</html>
`
