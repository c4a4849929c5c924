// Copyright 2026 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import "net/http"

// clientJS is the page's client. It draws what the server sends over the
// websocket with Google Charts and reports user selections back.
const clientJS = `"use strict";
(function() {
  var list = document.getElementById("datasets-list");
  var results = document.getElementById("results");
  var email = document.getElementById("email");

  var socket = null;
  var pending = [];
  var generation = 0;
  var charts = {};
  var quiet = false;

  function showError(msg) {
    var p = document.createElement("p");
    p.className = "error";
    p.textContent = msg;
    results.appendChild(p);
  }

  function send(m) {
    var data = JSON.stringify(m);
    if (socket && socket.readyState === WebSocket.OPEN) {
      socket.send(data);
    } else {
      pending.push(data);
    }
  }

  function connect() {
    var proto = location.protocol === "https:" ? "wss:" : "ws:";
    socket = new WebSocket(proto + "//" + location.host + "/ws");
    socket.onopen = function() {
      pending.forEach(function(d) { socket.send(d); });
      pending = [];
    };
    socket.onmessage = function(ev) { receive(JSON.parse(ev.data)); };
    socket.onerror = function() { showError("Lost connection to the server."); };
  }

  function reset(gen) {
    generation = gen;
    charts = {};
    results.textContent = "";
  }

  function heading(name) {
    var h = document.createElement("h2");
    h.textContent = name + " Results";
    results.appendChild(h);
  }

  function draw(m) {
    var div = document.createElement("div");
    div.id = "view-" + m.view;
    results.appendChild(div);
    var data = new google.visualization.DataTable(m.dataTable);
    var chart;
    switch (m.kind) {
    case "table": chart = new google.visualization.Table(div); break;
    case "bar": chart = new google.visualization.BarChart(div); break;
    case "scatter": chart = new google.visualization.ScatterChart(div); break;
    default: return;
    }
    var opts = m.options || {};
    delete opts.height;
    if (m.options && m.options.height) {
      div.style.height = m.options.height + "px";
    }
    chart.draw(data, opts);
    charts[m.index] = chart;
    var gen = m.generation, index = m.index;
    google.visualization.events.addListener(chart, "select", function() {
      if (quiet) {
        return;
      }
      send({type: "select", generation: gen, index: index, selection: chart.getSelection()});
    });
  }

  function setSelection(m) {
    var chart = charts[m.index];
    if (!chart) {
      return;
    }
    quiet = true;
    try {
      chart.setSelection(m.selection || []);
    } finally {
      quiet = false;
    }
  }

  var current = "";

  function receive(m) {
    if (m.generation && m.generation < generation) {
      return;
    }
    if (m.generation && m.generation > generation) {
      reset(m.generation);
      heading(current);
    }
    switch (m.type) {
    case "draw": draw(m); break;
    case "setSelection": setSelection(m); break;
    case "rendered":
      (m.errors || []).forEach(function(e) { showError("View " + e.index + ": " + e.error); });
      break;
    case "error":
      if (m.request === "render") {
        results.textContent = "";
      }
      showError(m.error);
      break;
    }
  }

  function choose(name, li) {
    current = name;
    Array.prototype.forEach.call(list.children, function(c) { c.classList.remove("current"); });
    if (li) {
      li.classList.add("current");
    }
    send({type: "render", dataset: name, width: results.clientWidth});
  }

  function start(boot) {
    if (boot.prefill && boot.prefill.email && email) {
      email.value = boot.prefill.email;
    }
    if (boot.error) {
      return;
    }
    list.textContent = "";
    var items = {};
    // A single dataset is rendered without a navigation list.
    var listed = boot.datasets.length > 1 ? boot.datasets : [];
    listed.forEach(function(name) {
      var li = document.createElement("li");
      li.textContent = name;
      li.addEventListener("click", function() { choose(name, li); });
      list.appendChild(li);
      items[name] = li;
    });
    connect();
    if (boot.autoselect) {
      choose(boot.autoselect, items[boot.autoselect]);
    }
  }

  google.charts.load("current", {packages: ["table", "corechart"]});
  google.charts.setOnLoadCallback(function() {
    fetch("/api/bootstrap" + location.search)
      .then(function(r) { return r.json(); })
      .then(start)
      .catch(function(err) { showError(String(err)); });
  });
})();
`

func (a *App) script(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Write([]byte(clientJS))
}
