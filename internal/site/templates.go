package site

// pageTemplate is the html/template for the documentation shell.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" class="{{.View.RootClass}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.View.Page.Title}} | {{.View.SiteName}}</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body class="{{if .View.ScrollLocked}}scroll-locked{{end}}" data-shortcut="{{.View.Shortcut}}" data-assistant="{{.View.AssistantEnabled}}">
  <header class="top-bar">
    <button class="menu-toggle" id="menu-toggle" aria-label="Open navigation">
      <svg width="22" height="22" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
        <line x1="3" y1="6" x2="21" y2="6"/><line x1="3" y1="12" x2="21" y2="12"/><line x1="3" y1="18" x2="21" y2="18"/>
      </svg>
    </button>
    <a class="brand" href="/">{{.View.SiteName}}</a>
    {{if .View.AssistantEnabled}}
    <button class="ask-button" id="ask-button" type="button">
      <span>Ask AI</span><kbd>{{.ShortcutLabel}}</kbd>
    </button>
    {{end}}
    <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
      <svg class="sun-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
        <circle cx="12" cy="12" r="5"/><line x1="12" y1="1" x2="12" y2="3"/><line x1="12" y1="21" x2="12" y2="23"/><line x1="1" y1="12" x2="3" y2="12"/><line x1="21" y1="12" x2="23" y2="12"/>
      </svg>
      <svg class="moon-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
        <path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/>
      </svg>
    </button>
  </header>

  <div class="layout">
    <nav class="sidebar{{if .View.MobileMenuOpen}} open{{end}}" id="sidebar">
      <div class="sidebar-tree" id="sidebar-tree">
        {{.Sidebar}}
      </div>
    </nav>
    <div class="scrim{{if .View.Scrim}} visible{{end}}" id="scrim"></div>

    <main class="content">
      <article class="page-content" data-slug="{{.View.Page.Slug}}">
        {{.View.Page.HTML}}
      </article>
    </main>

    <aside class="toc">
      {{if .View.Page.TOC}}
      <h4>On this page</h4>
      <ul>
        {{range .View.Page.TOC}}
        <li>{{if .Anchor}}<a href="#{{.Anchor}}">{{.Text}}</a>{{else}}<span>{{.Text}}</span>{{end}}</li>
        {{end}}
      </ul>
      {{end}}
    </aside>
  </div>

  {{if .View.AssistantEnabled}}
  <div class="assistant-backdrop{{if .View.Assistant.Open}} visible{{end}}" id="assistant-backdrop">
    <section class="assistant" role="dialog" aria-label="Assistant">
      <div class="assistant-header">
        <span class="assistant-title">Ask AI</span>
        <span class="assistant-context" id="assistant-context">{{.View.Assistant.PageTitle}}</span>
        <button class="assistant-close" id="assistant-close" aria-label="Close">&times;</button>
      </div>
      <div class="assistant-messages" id="assistant-messages">
        {{range .View.Assistant.Messages}}
        <div class="message {{.Role}}{{if .Streaming}} streaming{{end}}">{{.Text}}</div>
        {{end}}
      </div>
      <form class="assistant-form" id="assistant-form">
        <input type="text" id="assistant-input" placeholder="Ask a question about this page..." autocomplete="off" value="{{.View.Assistant.Input}}">
        <button type="submit" id="assistant-send"{{if .View.Assistant.Pending}} disabled{{end}}>Send</button>
      </form>
    </section>
  </div>
  {{end}}

  <script src="/static/script.js"></script>
</body>
</html>`

// cssContent is the stylesheet for the documentation shell. Dark mode is
// driven by the "dark" class on the root element.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-secondary: #f8fafc;
  --bg-sidebar: #f1f5f9;
  --text: #0f172a;
  --text-secondary: #475569;
  --text-muted: #94a3b8;
  --border: #e2e8f0;
  --accent: #6366f1;
  --accent-light: #eef2ff;
  --code-bg: #f1f5f9;
  --sidebar-width: 264px;
  --toc-width: 240px;
  --content-max-width: 860px;
  --shadow-lg: 0 20px 40px rgba(15,23,42,0.18);
}

html.dark {
  --bg: #0b1120;
  --bg-secondary: #0f172a;
  --bg-sidebar: #0f172a;
  --text: #e2e8f0;
  --text-secondary: #cbd5e1;
  --text-muted: #64748b;
  --border: #1e293b;
  --accent: #818cf8;
  --accent-light: #1e1b4b;
  --code-bg: #111827;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  background: var(--bg);
  color: var(--text);
  line-height: 1.6;
  transition: background-color 0.2s, color 0.2s;
}

body.scroll-locked { overflow: hidden; }

.top-bar {
  position: sticky;
  top: 0;
  z-index: 30;
  display: flex;
  align-items: center;
  gap: 12px;
  height: 56px;
  padding: 0 20px;
  border-bottom: 1px solid var(--border);
  background: var(--bg);
}

.brand { font-weight: 700; color: var(--text); text-decoration: none; margin-right: auto; }

.menu-toggle, .theme-toggle, .assistant-close {
  background: none;
  border: none;
  color: var(--text-secondary);
  cursor: pointer;
  padding: 6px;
}

.menu-toggle { display: none; }

.theme-toggle .moon-icon { display: none; }
html.dark .theme-toggle .sun-icon { display: none; }
html.dark .theme-toggle .moon-icon { display: inline; }

.ask-button {
  display: flex;
  align-items: center;
  gap: 8px;
  border: 1px solid var(--border);
  border-radius: 8px;
  padding: 6px 10px;
  background: var(--bg-secondary);
  color: var(--text-secondary);
  cursor: pointer;
}

kbd {
  font-size: 11px;
  border: 1px solid var(--border);
  border-radius: 4px;
  padding: 0 4px;
  color: var(--text-muted);
}

.layout { display: flex; }

.sidebar {
  position: sticky;
  top: 56px;
  width: var(--sidebar-width);
  height: calc(100vh - 56px);
  overflow-y: auto;
  padding: 16px;
  border-right: 1px solid var(--border);
  background: var(--bg-sidebar);
  flex-shrink: 0;
}

.sidebar ul { list-style: none; margin: 0; padding-left: 12px; }
.sidebar-tree > ul { padding-left: 0; }
.sidebar li { margin: 2px 0; }
.sidebar a {
  display: block;
  padding: 4px 8px;
  border-radius: 6px;
  color: var(--text-secondary);
  text-decoration: none;
  font-size: 14px;
}
.sidebar a:hover { color: var(--text); }
.sidebar a.active { background: var(--accent-light); color: var(--accent); font-weight: 600; }

.dir-toggle {
  display: block;
  padding: 4px 8px;
  font-size: 12px;
  font-weight: 700;
  text-transform: uppercase;
  letter-spacing: 0.04em;
  color: var(--text-muted);
  cursor: pointer;
  user-select: none;
}
.dir-toggle::before { content: "\25B8"; display: inline-block; margin-right: 6px; transition: transform 0.15s; }
.dir.expanded > .dir-toggle::before { transform: rotate(90deg); }
.dir > ul { display: none; }
.dir.expanded > ul { display: block; }

.scrim { display: none; }

.content { flex: 1; min-width: 0; padding: 32px 48px; }
.page-content { max-width: var(--content-max-width); }
.page-content h1 { font-size: 2.2em; margin-top: 0; }
.page-content h2 { margin-top: 2em; padding-bottom: 4px; border-bottom: 1px solid var(--border); }
.page-content a { color: var(--accent); }
.page-content :not(pre) > code {
  background: var(--code-bg);
  border-radius: 4px;
  padding: 1px 5px;
  font-size: 0.9em;
}
.page-content pre {
  background: var(--code-bg);
  border-radius: 8px;
  padding: 14px 16px;
  overflow-x: auto;
  font-size: 13px;
}
.page-content blockquote {
  margin: 1em 0;
  padding: 4px 16px;
  border-left: 4px solid var(--accent);
  color: var(--text-secondary);
}
.page-content table { border-collapse: collapse; width: 100%; }
.page-content th, .page-content td { border: 1px solid var(--border); padding: 6px 10px; text-align: left; }

.code-block { position: relative; margin: 1em 0; border: 1px solid var(--border); border-radius: 8px; overflow: hidden; }
.code-block pre { margin: 0; border-radius: 0; }
.code-block-header {
  display: flex;
  justify-content: space-between;
  align-items: center;
  padding: 4px 12px;
  font-size: 12px;
  color: var(--text-muted);
  background: var(--bg-secondary);
  border-bottom: 1px solid var(--border);
}
.copy-btn { border: none; background: none; color: var(--text-muted); cursor: pointer; font-size: 12px; }
.copy-btn.copied { color: var(--accent); }

.toc {
  position: sticky;
  top: 56px;
  width: var(--toc-width);
  height: calc(100vh - 56px);
  padding: 32px 16px;
  flex-shrink: 0;
  font-size: 13px;
}
.toc h4 { margin: 0 0 8px; text-transform: uppercase; font-size: 11px; color: var(--text-muted); }
.toc ul { list-style: none; padding: 0; margin: 0; }
.toc li { margin: 6px 0; }
.toc a { color: var(--text-secondary); text-decoration: none; }
.toc a:hover { color: var(--accent); }

.assistant-backdrop {
  display: none;
  position: fixed;
  inset: 0;
  z-index: 50;
  background: rgba(15,23,42,0.45);
  align-items: flex-start;
  justify-content: center;
  padding-top: 10vh;
}
.assistant-backdrop.visible { display: flex; }

.assistant {
  width: min(672px, 92vw);
  max-height: 80vh;
  display: flex;
  flex-direction: column;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 12px;
  box-shadow: var(--shadow-lg);
  overflow: hidden;
}

.assistant-header { display: flex; align-items: center; gap: 8px; padding: 12px 16px; border-bottom: 1px solid var(--border); }
.assistant-title { font-weight: 700; }
.assistant-context { color: var(--text-muted); font-size: 13px; margin-right: auto; }

.assistant-messages { flex: 1; overflow-y: auto; padding: 20px; background: var(--bg-secondary); }
.message {
  max-width: 85%;
  margin: 0 0 14px;
  padding: 10px 14px;
  border-radius: 12px;
  white-space: pre-wrap;
  font-size: 14px;
}
.message.user { margin-left: auto; background: var(--accent); color: #fff; }
.message.assistant { background: var(--bg); border: 1px solid var(--border); }
.message.streaming::after { content: "\258D"; animation: blink 1s steps(2) infinite; }
@keyframes blink { 50% { opacity: 0; } }

.assistant-form { display: flex; gap: 8px; padding: 12px; border-top: 1px solid var(--border); }
.assistant-form input {
  flex: 1;
  padding: 8px 12px;
  border: 1px solid var(--border);
  border-radius: 8px;
  background: var(--bg);
  color: var(--text);
}
.assistant-form button {
  padding: 8px 14px;
  border: none;
  border-radius: 8px;
  background: var(--accent);
  color: #fff;
  cursor: pointer;
}
.assistant-form button:disabled { opacity: 0.5; cursor: default; }

@media (max-width: 1200px) { .toc { display: none; } }

@media (max-width: 768px) {
  .menu-toggle { display: inline-flex; }
  .sidebar {
    position: fixed;
    top: 0;
    left: 0;
    z-index: 40;
    height: 100vh;
    transform: translateX(-100%);
    transition: transform 0.2s;
  }
  .sidebar.open { transform: translateX(0); }
  .scrim.visible { display: block; position: fixed; inset: 0; z-index: 35; background: rgba(0,0,0,0.4); }
  .content { padding: 24px 16px; }
}
`

// jsContent wires the page to the session API. All state lives on the
// server; the script forwards input and redraws from snapshots.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;
  var body = document.body;

  function post(path, payload) {
    return fetch(path, {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      credentials: "same-origin",
      body: payload === undefined ? "{}" : JSON.stringify(payload)
    }).then(function(r) { return r.json(); });
  }

  // ===== Theme =====
  var themeToggle = document.getElementById("theme-toggle");
  if (themeToggle) {
    themeToggle.addEventListener("click", function() {
      post("/api/theme/toggle").then(function(res) {
        html.className = res.root_class || "";
      });
    });
  }

  // ===== Mobile menu =====
  var sidebar = document.getElementById("sidebar");
  var scrim = document.getElementById("scrim");
  var menuToggle = document.getElementById("menu-toggle");

  function applyMenu(open) {
    sidebar.classList.toggle("open", open);
    scrim.classList.toggle("visible", open);
  }

  if (menuToggle) {
    menuToggle.addEventListener("click", function() {
      post("/api/menu/open").then(function(res) { applyMenu(res.mobile_menu_open); });
    });
  }
  if (scrim) {
    scrim.addEventListener("click", function() {
      post("/api/menu/close").then(function(res) { applyMenu(res.mobile_menu_open); });
    });
  }

  sidebar.querySelectorAll("a[href^='/docs/']").forEach(function(a) {
    a.addEventListener("click", function(e) {
      if (sidebar.classList.contains("open")) {
        e.preventDefault();
        window.location.href = a.getAttribute("href") + "?from=mobile";
      }
    });
  });

  // ===== Navigation groups =====
  document.querySelectorAll(".dir-toggle").forEach(function(toggle) {
    toggle.addEventListener("click", function() {
      var li = this.parentElement;
      post("/api/nav/toggle/" + encodeURIComponent(li.getAttribute("data-id"))).then(function(res) {
        li.classList.toggle("expanded", res.open);
      });
    });
  });

  // ===== Copy buttons =====
  document.querySelectorAll(".copy-btn").forEach(function(btn) {
    btn.addEventListener("click", function() {
      var pre = btn.closest(".code-block").querySelector("pre");
      if (!pre || !navigator.clipboard) return;
      navigator.clipboard.writeText(pre.innerText).then(function() {
        btn.textContent = "Copied";
        btn.classList.add("copied");
        setTimeout(function() { btn.textContent = "Copy"; btn.classList.remove("copied"); }, 2000);
      });
    });
  });

  // ===== Assistant =====
  if (body.getAttribute("data-assistant") !== "true") return;

  var backdrop = document.getElementById("assistant-backdrop");
  var messages = document.getElementById("assistant-messages");
  var context = document.getElementById("assistant-context");
  var form = document.getElementById("assistant-form");
  var input = document.getElementById("assistant-input");
  var sendBtn = document.getElementById("assistant-send");

  function keyPayload(e, target) {
    return { key: e.key, shift: e.shiftKey, ctrl: e.ctrlKey, meta: e.metaKey, alt: e.altKey, target: target, input: input.value };
  }

  function isShortcut(e) {
    var parts = (body.getAttribute("data-shortcut") || "").split("+");
    var key = parts.pop().toLowerCase();
    var mod = parts.indexOf("Mod") !== -1;
    return e.key.toLowerCase() === key && mod === (e.metaKey || e.ctrlKey) && !e.shiftKey && !e.altKey;
  }

  function draw(snap) {
    backdrop.classList.toggle("visible", snap.open);
    body.classList.toggle("scroll-locked", snap.open);
    context.textContent = snap.page_title || "";
    messages.innerHTML = "";
    (snap.messages || []).forEach(function(m) {
      var div = document.createElement("div");
      div.className = "message " + m.role + (m.streaming ? " streaming" : "");
      div.textContent = m.text;
      messages.appendChild(div);
    });
    messages.scrollTop = messages.scrollHeight;
    sendBtn.disabled = snap.pending;
    if (!snap.open) input.value = "";
  }

  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/ws/assistant");
    ws.onmessage = function(msg) {
      var ev = JSON.parse(msg.data);
      draw(ev.snapshot);
      if (ev.type === "focus") input.focus();
    };
    ws.onclose = function() { setTimeout(connect, 2000); };
  }
  connect();

  document.addEventListener("keydown", function(e) {
    if (e.target === input || !isShortcut(e)) return;
    e.preventDefault();
    post("/api/keys", keyPayload(e, "page"));
  });

  input.addEventListener("keydown", function(e) {
    if (isShortcut(e) || (e.key === "Enter" && !e.shiftKey)) {
      e.preventDefault();
      var payload = keyPayload(e, "assistant-input");
      if (e.key === "Enter" && input.value.trim() !== "") input.value = "";
      post("/api/keys", payload);
    }
  });

  form.addEventListener("submit", function(e) {
    e.preventDefault();
    var text = input.value;
    post("/api/assistant/send", { text: text }).then(function(res) {
      if (res.accepted) input.value = "";
    });
  });

  document.getElementById("ask-button").addEventListener("click", function() { post("/api/assistant/open"); });
  document.getElementById("assistant-close").addEventListener("click", function() { post("/api/assistant/close"); });
  backdrop.addEventListener("click", function(e) {
    if (e.target === backdrop) post("/api/assistant/close");
  });
})();
`
