package main

import (
	"context"
	"log"
	"net/http"
	"time"
)

// StaticServer serves the client application on its own port. It shares no
// state with the chat server; with no asset directory configured it falls
// back to the embedded single-page client.
type StaticServer struct {
	cfg *Config
	srv *http.Server
}

func NewStaticServer(cfg *Config) *StaticServer {
	var handler http.Handler
	if cfg.StaticDir != "" {
		handler = http.FileServer(http.Dir(cfg.StaticDir))
	} else {
		handler = http.HandlerFunc(handleEmbeddedClient)
	}

	return &StaticServer{
		cfg: cfg,
		srv: &http.Server{
			Addr:         cfg.StaticAddr,
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}
}

func (s *StaticServer) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

func (s *StaticServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Printf("static server shutdown error: %v", err)
	}
}

func handleEmbeddedClient(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(clientHTML))
}

const clientHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>pinchat</title>
<style>
*{margin:0;padding:0;box-sizing:border-box}
:root{
--bg:#191919;
--card:#242424;
--border:#333;
--fg:#e5e5e5;
--muted:#737373;
--accent:#DEDACF;
--radius:6px;
}
body{
font-family:system-ui,-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;
background:var(--bg);
color:var(--fg);
min-height:100vh;
display:flex;
align-items:center;
justify-content:center;
padding:24px;
}
.card{
width:100%;
max-width:480px;
background:var(--card);
border:1px solid var(--border);
border-radius:var(--radius);
padding:20px;
display:flex;
flex-direction:column;
gap:12px;
}
h1{font-size:16px;font-weight:600;color:var(--accent)}
input,button{
font:inherit;
background:var(--bg);
color:var(--fg);
border:1px solid var(--border);
border-radius:var(--radius);
padding:8px 10px;
}
button{cursor:pointer}
button:hover{border-color:var(--accent)}
.row{display:flex;gap:8px}
.row input{flex:1}
#log{
height:280px;
overflow-y:auto;
border:1px solid var(--border);
border-radius:var(--radius);
padding:10px;
font-size:13px;
display:flex;
flex-direction:column;
gap:4px;
}
.muted{color:var(--muted)}
.user{color:var(--accent)}
#typing{font-size:11px;color:var(--muted);min-height:14px}
</style>
</head>
<body>
<div class="card">
<h1>pinchat</h1>
<div class="row">
<input id="name" placeholder="Name">
<input id="pin" placeholder="PIN" maxlength="4">
<button onclick="joinRoom()">Join</button>
<button onclick="createRoom()">Create</button>
</div>
<div id="log"></div>
<div id="typing"></div>
<div class="row">
<input id="msg" placeholder="Message" onkeydown="if(event.key==='Enter')sendChat();else notifyTyping()">
<button onclick="sendChat()">Send</button>
<button onclick="leaveRoom()">Leave</button>
</div>
</div>
<script>
const ws=new WebSocket('ws://'+location.hostname+':6789/ws');
const log=document.getElementById('log');
const typing=document.getElementById('typing');
let typingTimer=null;
function line(html){const d=document.createElement('div');d.innerHTML=html;log.appendChild(d);log.scrollTop=log.scrollHeight;}
function esc(s){const d=document.createElement('div');d.textContent=s||'';return d.innerHTML;}
ws.onmessage=e=>{
const m=JSON.parse(e.data);
switch(m.type){
case 'room_created':line('<span class="muted">room '+esc(m.room_id)+' created, PIN '+esc(m.pin)+'</span>');document.getElementById('pin').value=m.pin;break;
case 'joined_room':case 'left_room':case 'status':case 'error':line('<span class="muted">'+esc(m.message)+'</span>');break;
case 'chat':line('<span class="user">'+esc(m.user)+'</span> '+esc(m.message));break;
case 'typing':typing.textContent=(m.user||'someone')+' is typing…';break;
case 'stop_typing':typing.textContent='';break;
}
};
function send(o){ws.send(JSON.stringify(o));}
function createRoom(){send({action:'create_room'});}
function joinRoom(){send({action:'join_room',pin:document.getElementById('pin').value,username:document.getElementById('name').value});}
function leaveRoom(){send({action:'leave_room'});}
function sendChat(){const i=document.getElementById('msg');if(!i.value)return;send({action:'chat',message:i.value});line('<span class="user">you</span> '+esc(i.value));i.value='';send({action:'stop_typing'});}
function notifyTyping(){send({action:'typing'});clearTimeout(typingTimer);typingTimer=setTimeout(()=>send({action:'stop_typing'}),1500);}
</script>
</body>
</html>
`
