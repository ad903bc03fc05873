package preview

import (
	"html/template"
	"net/http"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="{{.RootID}}"></div>
<script>
(function() {
    'use strict';

    var root = document.getElementById({{.RootID}});
    var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(protocol + '//' + location.host + '/ws?hash=' + encodeURIComponent(location.hash));

    function pathOf(el) {
        var path = [];
        while (el && el !== root) {
            var i = 0;
            for (var s = el.previousElementSibling; s; s = s.previousElementSibling) {
                i++;
            }
            path.unshift(i);
            el = el.parentElement;
        }
        return el === root ? path : null;
    }

    function forward(type, e) {
        var path = pathOf(e.target);
        if (!path || ws.readyState !== WebSocket.OPEN) {
            return;
        }
        var msg = {type: 'event', path: path, event: type};
        if (e.key) {
            msg.key = e.key;
        }
        if (e.target.tagName === 'INPUT' || e.target.tagName === 'TEXTAREA') {
            msg.value = e.target.value;
        }
        ws.send(JSON.stringify(msg));
    }

    ['click', 'keypress', 'input'].forEach(function(type) {
        root.addEventListener(type, function(e) { forward(type, e); });
    });
    root.addEventListener('focusout', function(e) { forward('blur', e); });

    window.addEventListener('hashchange', function() {
        if (ws.readyState === WebSocket.OPEN) {
            ws.send(JSON.stringify({type: 'hash', hash: location.hash}));
        }
    });

    ws.onmessage = function(event) {
        var msg = JSON.parse(event.data);
        if (msg.type === 'html') {
            root.innerHTML = msg.html;
            var focus = root.querySelector('[autofocus]');
            if (focus) {
                focus.focus();
            }
        } else if (msg.type === 'error') {
            console.error('[miniframe]', msg.code, msg.error);
        }
        if (msg.hash !== location.hash) {
            history.replaceState(null, '', msg.hash || location.pathname + location.search);
        }
    };

    ws.onclose = function() {
        console.log('[miniframe] session closed');
    };
})();
</script>
</body>
</html>
`))

type pageData struct {
	Title  string
	RootID string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{Title: s.cfg.Mount.Title, RootID: s.rootID}
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}
