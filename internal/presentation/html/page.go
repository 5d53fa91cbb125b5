package html

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.View.Idea.Title}} // Blueprint</title>
<style>
body { background: #020617; color: #cbd5e1; font-family: system-ui, sans-serif; margin: 0; padding: 2rem; }
.idea { display: flex; gap: 1rem; align-items: center; }
.idea .icon { font-size: 2.5rem; }
.status { font-family: monospace; font-size: .75rem; padding: .1rem .5rem; border: 1px solid; border-radius: 4px; }
.status.loading { color: #06b6d4; }
.status.ready { color: #10b981; }
.status.failed { color: #f97316; }
.dashboard { display: grid; grid-template-columns: 2fr 1fr; gap: 1rem; margin: 2rem 0; }
.panel { border: 1px solid #1e293b; border-radius: 12px; padding: 1.25rem; }
.chart svg { width: 100%; height: 12rem; overflow: visible; }
.axis { display: flex; justify-content: space-between; font-family: monospace; font-size: 10px; color: #64748b; }
.bar { height: 6px; background: #1e293b; border-radius: 3px; overflow: hidden; }
.bar span { display: block; height: 100%; background: #06b6d4; }
.bar.elevated span { background: #f97316; }
.bp-header { color: #22d3ee; border-bottom: 1px solid #1e293b; }
.bp-bullet, .bp-numbered { display: flex; gap: .75rem; margin-left: .5rem; }
.bp-index { color: #06b6d4; font-family: monospace; font-weight: bold; }
strong { color: #fff; }
footer { font-family: monospace; font-size: .75rem; color: #475569; text-align: right; margin-top: 2rem; }
</style>
</head>
<body>
<header class="idea">
  <span class="icon">{{.View.Idea.Icon}}</span>
  <div>
    <h1>{{.View.Idea.Title}}</h1>
    <span class="category">{{.View.Idea.Category}}</span>
    <span class="status {{.StatusClass}}">STATUS: {{.View.State.Label}}</span>
  </div>
</header>

<section class="dashboard">
  <div class="panel chart">
    <h3>{{.ChartTitle}}</h3>
    <div class="cagr"><strong>{{cagr .Dashboard.Metrics.CAGRPercent}}</strong> CAGR (Estimated)</div>
    <svg viewBox="0 0 100 100" preserveAspectRatio="none">
      <defs>
        <linearGradient id="trendGradient" x1="0%" y1="0%" x2="0%" y2="100%">
          <stop offset="0%" stop-color="#06b6d4" stop-opacity="0.4"/>
          <stop offset="100%" stop-color="#06b6d4" stop-opacity="0"/>
        </linearGradient>
      </defs>
      <line x1="0" y1="0" x2="100" y2="0" stroke="#334155" stroke-width="0.5" stroke-dasharray="2"/>
      <line x1="0" y1="25" x2="100" y2="25" stroke="#334155" stroke-width="0.5" stroke-dasharray="2"/>
      <line x1="0" y1="50" x2="100" y2="50" stroke="#334155" stroke-width="0.5" stroke-dasharray="2"/>
      <line x1="0" y1="75" x2="100" y2="75" stroke="#334155" stroke-width="0.5" stroke-dasharray="2"/>
      <line x1="0" y1="100" x2="100" y2="100" stroke="#334155" stroke-width="0.5" stroke-dasharray="2"/>
      <path class="area" d="{{.Dashboard.AreaPath}}" fill="url(#trendGradient)"/>
      <path class="line" d="{{.Dashboard.LinePath}}" fill="none" stroke="#22d3ee" stroke-width="2" vector-effect="non-scaling-stroke"/>
      {{- range .Points}}
      <circle cx="{{.X}}" cy="{{.Y}}" r="1.5" fill="#0f172a" stroke="#22d3ee" stroke-width="1" vector-effect="non-scaling-stroke"/>
      {{- end}}
    </svg>
    <div class="axis">{{range .Dashboard.Years}}<span>{{.}}</span>{{end}}</div>
  </div>

  <div>
    <div class="panel metric market">
      <div>Market Cap</div>
      <strong>{{market .Dashboard.Metrics.MarketSizeBillion}}</strong>
      <div>Total Addressable Market</div>
    </div>
    <div class="panel metric profit">
      <div>Time-to-Market</div>
      <strong>{{months .Dashboard.Metrics.TimeToProfitMonths}}</strong>
      <div>MVP Deployment</div>
    </div>
    <div class="panel feasibility">
      <h4>Feasibility Analysis</h4>
      {{- range .Dashboard.Feasibility}}
      <div class="feasibility-row {{.Level}}">
        <span class="label">{{.Label}}</span> <span class="value">{{percent .Percent}}</span>
        <div class="bar {{.Level}}"><span style="width: {{.Percent}}%"></span></div>
      </div>
      {{- end}}
    </div>
  </div>
</section>

<main class="content">
{{- if eq .StatusClass "loading"}}
  <div class="loader">Synthesizing market data, competitors and roadmap...</div>
{{- else if eq .StatusClass "failed"}}
  <div class="failure">
    <h3>SYSTEM FAILURE</h3>
    <p class="error">{{.View.Error}}</p>
    <form method="post" action="/views/{{.View.ID}}/retry"><button type="submit">RETRY CONNECTION</button></form>
  </div>
{{- else}}
{{.Content}}
  <footer>{{.Footer}}</footer>
{{- end}}
</main>
</body>
</html>
`
