package httpserver

import (
	"html/template"
	"net/http"

	"github.com/ihcantabria/api-template/internal/version"
)

var landingTmpl = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Name}} - v{{.Version}}</title>
<link rel="icon" type="image/svg+xml" href="{{.RootPath}}/static/favicon.svg">
<style>
  body {
    font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
    margin: 0; padding: 0;
    background: linear-gradient(135deg, #1a1a2e 0%, #16213e 25%, #2c3e50 50%, #34495e 75%, #4a5568 100%);
    color: white; min-height: 100vh;
    display: flex; flex-direction: column; align-items: center; justify-content: center;
    text-align: center;
  }
  .container {
    background: rgba(255, 255, 255, 0.1);
    border-radius: 20px; padding: 2rem; max-width: 800px; margin: 1rem;
    border: 1px solid rgba(255, 255, 255, 0.18);
  }
  h1 { font-size: 2.2rem; margin-bottom: 0.5rem; }
  .version {
    background: rgba(255, 255, 255, 0.2); padding: 0.4rem 0.8rem;
    border-radius: 25px; display: inline-block; margin-bottom: 1rem; font-weight: bold;
  }
  .nav a {
    background: rgba(74, 144, 226, 0.3); color: white; text-decoration: none;
    padding: 0.7rem 1.5rem; border-radius: 25px; display: inline-block; font-weight: bold;
  }
  .description { font-size: 1rem; line-height: 1.4; margin: 1rem 0; opacity: 0.9; }
  .footer { margin-top: 1rem; font-size: 0.85rem; opacity: 0.7; }
</style>
</head>
<body>
<div class="container">
  <h1>{{.Name}}</h1>
  <div class="version">Version {{.Version}}</div>
  <div class="nav"><a href="{{.DocsPath}}">API Documentation</a></div>
  <div class="description"><p>{{.Description}}</p></div>
  <div class="footer"><p>OpenTelemetry enabled</p></div>
</div>
</body>
</html>
`))

var docsTmpl = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Name}} - API Documentation</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    SwaggerUIBundle({
      url: {{.SpecURL}},
      dom_id: '#swagger-ui',
    });
  };
</script>
</body>
</html>
`))

type landingData struct {
	Name        string
	Version     string
	Description string
	RootPath    string
	DocsPath    string
}

// RootHandler renders the HTML landing page describing the service.
func (s *Server) RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = landingTmpl.Execute(w, landingData{
			Name:        version.ServiceName,
			Version:     version.Version,
			Description: version.Description,
			RootPath:    s.Cfg.APIRootPath,
			DocsPath:    s.Cfg.APIRootPath + "/docs",
		})
	}
}

// DocsHandler renders an interactive documentation page over the served
// OpenAPI document.
func (s *Server) DocsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = docsTmpl.Execute(w, struct {
			Name    string
			SpecURL string
		}{
			Name:    version.ServiceName,
			SpecURL: s.Cfg.APIRootPath + "/openapi.yaml",
		})
	}
}
