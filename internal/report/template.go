package report

// pageTemplate is the report document. It is hermetic: styles and the
// navigation script are inlined, charts arrive as data URIs, and nothing
// references the network. Column names only ever appear as escaped text or
// data attributes; section toggling is keyed on generated ids.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root {
  --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6;
  --muted: #6c757d; --accent: #0d6efd; --table-alt: #f1f3f5;
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1200px; margin: 0 auto; }
header { margin-bottom: 1.5rem; border-bottom: 2px solid var(--fg); padding-bottom: .5rem; }
header h1 { font-size: 1.5rem; }
header p { color: var(--muted); font-size: .8125rem; }
section.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; margin-bottom: 1rem; }
section.card h2 { font-size: 1.125rem; margin-bottom: .5rem; }
.layout { display: flex; gap: 1rem; align-items: flex-start; }
nav.col-nav { flex: 0 0 220px; background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; overflow: hidden; }
nav.col-nav a { display: block; padding: .5rem .75rem; text-decoration: none; color: var(--fg); border-bottom: 1px solid var(--border); font-size: .875rem; }
nav.col-nav a:last-child { border-bottom: none; }
nav.col-nav a:hover { background: var(--table-alt); }
nav.col-nav a.active { background: var(--accent); color: #fff; }
.col-panels { flex: 1; min-width: 0; }
.col-section { display: none; }
.col-section.active { display: block; }
table.stats { border-collapse: collapse; font-size: .875rem; margin: .5rem 0 1rem; }
table.stats td { padding: .25rem .75rem; border-bottom: 1px solid var(--border); }
table.stats td:first-child { color: var(--muted); }
table.stats tr:nth-child(even) { background: var(--table-alt); }
img.chart { max-width: 100%; border: 1px solid var(--border); border-radius: 4px; }
p.note { color: var(--muted); font-style: italic; font-size: .8125rem; }
footer { margin-top: 2rem; border-top: 1px solid var(--border); padding-top: .5rem; color: var(--muted); font-size: .75rem; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p>{{.Source}}</p>
</header>

<section class="card" id="summary">
  <h2>Dataset overview</h2>
  <table class="stats">
    <tr><td>Shape</td><td>{{.Summary.Rows}} rows × {{.Summary.Cols}} columns</td></tr>
    <tr><td>Duplicate rows</td><td>{{.Summary.DuplicateRows}}</td></tr>
    <tr><td>Missing values</td><td>{{.Summary.MissingTotal}}</td></tr>
  </table>
  {{- if .Summary.MissingByCol}}
  <table class="stats">
    {{- range .Summary.MissingByCol}}
    <tr><td>{{.Name}}</td><td>{{.Missing}} missing</td></tr>
    {{- end}}
  </table>
  {{- end}}
</section>

<div class="layout">
  <nav class="col-nav">
    {{- range .Sections}}
    <a href="#" data-target="{{.ID}}"{{if .Active}} class="active"{{end}}>{{.Name}}</a>
    {{- end}}
  </nav>
  <div class="col-panels">
    {{- range .Sections}}
    <section class="card col-section{{if .Active}} active{{end}}" id="{{.ID}}">
      <h2>{{.Name}} <small>({{.Class}})</small></h2>
      <table class="stats">
        {{- range .Stats}}
        <tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
        {{- end}}
      </table>
      {{- if .ChartURI}}
      <img class="chart" src="{{.ChartURI}}" alt="{{.ChartCaption}}">
      {{- end}}
      {{- if .ChartNote}}
      <p class="note">{{.ChartNote}}</p>
      {{- end}}
    </section>
    {{- end}}
  </div>
</div>

<section class="card" id="correlation">
  <h2>Correlation analysis</h2>
  {{- if .CorrURI}}
  <img class="chart" src="{{.CorrURI}}" alt="Correlation heatmap">
  {{- else}}
  <p class="note">{{.CorrNote}}</p>
  {{- end}}
</section>

<footer>Report {{.RunID}} · generated by datasight</footer>

<script>
document.querySelectorAll('.col-nav a').forEach(function (link) {
  link.addEventListener('click', function (ev) {
    ev.preventDefault();
    document.querySelectorAll('.col-section').forEach(function (sec) {
      sec.classList.toggle('active', sec.id === link.dataset.target);
    });
    document.querySelectorAll('.col-nav a').forEach(function (other) {
      other.classList.toggle('active', other === link);
    });
  });
});
</script>
</body>
</html>
`
