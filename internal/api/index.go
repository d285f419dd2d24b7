package api

// indexHTML is a minimal browser client for manual testing.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>wsrelay test client</title>
    <meta charset="utf-8">
    <style>
        body { font-family: sans-serif; max-width: 700px; margin: 40px auto; }
        #messages { border: 1px solid #ccc; height: 300px; overflow-y: auto; padding: 8px; margin: 12px 0; }
        #messages div { padding: 2px 0; border-bottom: 1px solid #eee; }
        .system { color: #888; }
        input { width: 70%; padding: 6px; }
        button { padding: 6px 14px; }
    </style>
</head>
<body>
    <h1>wsrelay</h1>
    <div>
        <button id="connect">Connect</button>
        <button id="disconnect" disabled>Disconnect</button>
        <span id="status">disconnected</span>
    </div>
    <div id="messages"></div>
    <div>
        <input id="input" placeholder="message" disabled>
        <button id="send" disabled>Send</button>
    </div>
    <script>
        let ws = null;
        const el = id => document.getElementById(id);
        const log = (text, cls) => {
            const d = document.createElement('div');
            if (cls) d.className = cls;
            d.textContent = new Date().toLocaleTimeString() + '  ' + text;
            el('messages').appendChild(d);
            el('messages').scrollTop = el('messages').scrollHeight;
        };
        const setConnected = on => {
            el('status').textContent = on ? 'connected' : 'disconnected';
            el('connect').disabled = on;
            for (const id of ['disconnect', 'input', 'send']) el(id).disabled = !on;
        };
        el('connect').onclick = () => {
            const id = 'client_' + Math.random().toString(36).slice(2, 10);
            ws = new WebSocket('ws://' + location.host + '/ws/' + id);
            ws.onopen = () => { log('connected as ' + id, 'system'); setConnected(true); };
            ws.onmessage = e => log(e.data);
            ws.onclose = e => { log('closed (' + e.code + ') ' + e.reason, 'system'); setConnected(false); ws = null; };
        };
        el('disconnect').onclick = () => ws && ws.close();
        el('send').onclick = () => {
            if (ws && el('input').value) { ws.send(el('input').value); el('input').value = ''; }
        };
        el('input').addEventListener('keypress', e => { if (e.key === 'Enter') el('send').onclick(); });
    </script>
</body>
</html>
`
