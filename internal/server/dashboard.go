package server

// dashboardHTML is the single-page live dashboard. It prefers the websocket
// feed and falls back to polling /api/metrics when the socket drops.
const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>EnergyHUD</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #10141a; color: #e8eaed; margin: 0; padding: 20px; }
  h1 { font-size: 20px; font-weight: 600; margin: 0 0 4px 0; }
  .sub { color: #9aa0a6; font-size: 13px; margin-bottom: 20px; }
  .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(170px, 1fr)); gap: 12px; max-width: 980px; }
  .card { background: #1b2129; border-radius: 10px; padding: 14px 16px; }
  .card .label { color: #9aa0a6; font-size: 12px; text-transform: uppercase; letter-spacing: 0.06em; }
  .card .value { font-size: 26px; font-weight: 600; margin-top: 6px; }
  .card .unit { font-size: 14px; color: #9aa0a6; margin-left: 3px; }
  .ok { color: #7fd488; }
  .warn { color: #f28b82; }
  .chart { background: #1b2129; border-radius: 10px; padding: 14px 16px; margin-top: 12px; max-width: 980px; }
  .chart canvas { width: 100%; height: 140px; }
  .card canvas { display: block; margin-top: 6px; }
  .tariff { margin-top: 12px; max-width: 980px; background: #1b2129; border-radius: 10px; padding: 14px 16px; }
  .tariff input { width: 90px; background: #10141a; color: #e8eaed; border: 1px solid #3c4043; border-radius: 6px; padding: 6px; }
  .tariff button { background: #8ab4f8; color: #10141a; border: none; border-radius: 6px; padding: 6px 14px; cursor: pointer; }
  #conn { font-size: 12px; }
</style>
</head>
<body>
<h1>EnergyHUD</h1>
<div class="sub">live energy monitor &middot; <span id="conn">connecting&hellip;</span></div>
<div class="grid">
  <div class="card"><div class="label">Voltage</div><div class="value"><span id="voltage">&ndash;</span><span class="unit">V</span></div><canvas id="voltage_gauge" width="130" height="70"></canvas><div id="voltage_status" class="label"></div></div>
  <div class="card"><div class="label">Current</div><div class="value"><span id="current">&ndash;</span><span class="unit">A</span></div><canvas id="current_gauge" width="130" height="70"></canvas><div id="load_status" class="label"></div></div>
  <div class="card"><div class="label">Power</div><div class="value"><span id="power">&ndash;</span><span class="unit">W</span></div></div>
  <div class="card"><div class="label">Energy</div><div class="value"><span id="energy">&ndash;</span><span class="unit">kWh</span></div></div>
  <div class="card"><div class="label">Cost</div><div class="value"><span id="cost">&ndash;</span></div></div>
  <div class="card"><div class="label">Frequency</div><div class="value"><span id="frequency">&ndash;</span><span class="unit">Hz</span></div></div>
  <div class="card"><div class="label">Power factor</div><div class="value"><span id="pf">&ndash;</span></div></div>
</div>
<div class="chart">
  <div class="label" style="color:#9aa0a6;font-size:12px;text-transform:uppercase;letter-spacing:0.06em;">Power history</div>
  <canvas id="history" width="940" height="140"></canvas>
</div>
<div class="tariff">
  <span class="label" style="margin-right:8px;">Tariff rate</span>
  <input id="tariff" type="number" step="0.25" min="0.01">
  <button onclick="setTariff()">Apply</button>
</div>
<script>
function fmt(v, d) { return v == null ? "–" : v.toFixed(d); }

function drawGauge(id, value, min, max, ok) {
  var canvas = document.getElementById(id);
  var ctx = canvas.getContext("2d");
  var cx = canvas.width / 2, cy = canvas.height - 6, r = 52;
  ctx.clearRect(0, 0, canvas.width, canvas.height);
  ctx.lineWidth = 8;
  ctx.lineCap = "round";
  ctx.strokeStyle = "#2a313b";
  ctx.beginPath();
  ctx.arc(cx, cy, r, Math.PI, 2 * Math.PI);
  ctx.stroke();
  var frac = Math.min(1, Math.max(0, (value - min) / (max - min)));
  ctx.strokeStyle = ok ? "#7fd488" : "#f28b82";
  ctx.beginPath();
  ctx.arc(cx, cy, r, Math.PI, Math.PI * (1 + frac));
  ctx.stroke();
}

function render(data) {
  var m = data.metrics;
  document.getElementById("conn").textContent = data.connected ? "source online" : "source unreachable";
  document.getElementById("conn").className = data.connected ? "ok" : "warn";
  if (!m) return;
  document.getElementById("voltage").textContent = fmt(m.voltage, 1);
  document.getElementById("current").textContent = fmt(m.current, 2);
  document.getElementById("power").textContent = fmt(m.power, 0);
  document.getElementById("energy").textContent = fmt(m.energy, 6);
  document.getElementById("cost").textContent = fmt(m.cost, 2);
  document.getElementById("frequency").textContent = fmt(m.frequency, 2);
  document.getElementById("pf").textContent = fmt(m.power_factor, 2);
  var vs = document.getElementById("voltage_status");
  vs.textContent = m.voltage_status;
  vs.className = m.voltage_status === "STABLE" ? "label ok" : "label warn";
  var ls = document.getElementById("load_status");
  ls.textContent = m.load_status;
  ls.className = m.load_status === "NOMINAL" ? "label ok" : "label warn";
  drawGauge("voltage_gauge", m.voltage, 180, 260, m.voltage_status === "STABLE");
  drawGauge("current_gauge", m.current, 0, 20, m.load_status === "NOMINAL");
  var t = document.getElementById("tariff");
  if (document.activeElement !== t) t.value = m.tariff_rate;
}

function drawHistory(samples) {
  var canvas = document.getElementById("history");
  var ctx = canvas.getContext("2d");
  ctx.clearRect(0, 0, canvas.width, canvas.height);
  if (!samples || samples.length < 2) return;
  var max = Math.max.apply(null, samples.map(function (s) { return s.power; })) * 1.1 || 1;
  ctx.strokeStyle = "#8ab4f8";
  ctx.lineWidth = 2;
  ctx.beginPath();
  samples.forEach(function (s, i) {
    var x = i / (samples.length - 1) * canvas.width;
    var y = canvas.height - (s.power / max) * (canvas.height - 10);
    if (i === 0) ctx.moveTo(x, y); else ctx.lineTo(x, y);
  });
  ctx.stroke();
}

function pollHistory() {
  fetch("/api/history").then(function (r) { return r.json(); }).then(drawHistory).catch(function () {});
}

function setTariff() {
  var rate = parseFloat(document.getElementById("tariff").value);
  if (!(rate > 0)) return;
  fetch("/api/tariff", {
    method: "PUT",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({ rate: rate })
  }).catch(function () {});
}

var polling = null;
function startPolling() {
  if (polling) return;
  polling = setInterval(function () {
    fetch("/api/metrics").then(function (r) { return r.json(); }).then(render).catch(function () {});
  }, 1000);
}

function connectWS() {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (ev) {
    if (polling) { clearInterval(polling); polling = null; }
    render(JSON.parse(ev.data));
  };
  ws.onclose = function () {
    startPolling();
    setTimeout(connectWS, 3000);
  };
  ws.onerror = function () { ws.close(); };
}

startPolling();
connectWS();
pollHistory();
setInterval(pollHistory, 2000);
</script>
</body>
</html>
`
