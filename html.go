/*
Copyright © 2026 Nils Kluewer
*/

package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
)

// Observer client: connects to the transcript websocket and renders
// events as [Player N] / [GAME MASTER] lines, private ones dimmed.
const observerHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Stille Post</title>
<style>
  body { font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace; margin: 2rem; background: #111; color: #ddd; }
  h1 { margin-bottom: 0.25rem; font-size: 1.3rem; }
  #status { margin-bottom: 1rem; font-size: 0.85rem; color: #888; }
  #events { padding: 0; margin: 0; list-style: none; }
  #events li { padding: 0.2rem 0; border-bottom: 1px solid #222; white-space: pre-wrap; }
  #events li.gm { color: #e0b050; }
  #events li.private { color: #777; font-style: italic; }
  #events li.hint { color: #6fa8dc; font-style: italic; }
  a { color: #6fa8dc; }
</style>
</head>
<body>
<h1>Stille Post</h1>
<div id="status">Connecting&hellip; <a href="qr">[qr]</a></div>
<ul id="events"></ul>

<script>
(function() {
  const statusEl = document.getElementById('status');
  const eventsEl = document.getElementById('events');

  const proto = (location.protocol === 'https:') ? 'wss://' : 'ws://';
  const wsPath = location.pathname.replace(/\/$/, '') + '/ws';
  const ws = new WebSocket(proto + location.host + wsPath);

  ws.onopen = function() {
    statusEl.textContent = 'Watching live.';
  };

  ws.onmessage = function(event) {
    try {
      const msg = JSON.parse(event.data);

      const li = document.createElement('li');
      let prefix = (msg.author === 0) ? '[GAME MASTER]: ' : '[Player ' + msg.author + ']: ';
      if (msg.author === 0) { li.classList.add('gm'); }
      if (msg.audience !== 0) {
        li.classList.add('private');
        prefix = '(privately to Player ' + msg.audience + ') ' + prefix;
      }
      if (msg.kind === 'hint') { li.classList.add('hint'); }
      li.textContent = prefix + msg.payload;
      eventsEl.appendChild(li);
      li.scrollIntoView(false);
    } catch (e) {
      console.error('bad message', e);
    }
  };

  ws.onclose = function() {
    statusEl.textContent = 'Disconnected.';
  };

  ws.onerror = function() {
    statusEl.textContent = 'Error with WebSocket.';
  };
})();
</script>
</body>
</html>
`

func serveObserverPage(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(observerHTML))
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveRobots(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data := `User-agent: *
Disallow: /`

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(data))
		if err != nil {
			errs <- err

			return
		}
	}
}
