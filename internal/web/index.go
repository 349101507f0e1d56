package web

import "net/http"

// indexHTML is the minimal upload page. Everything interesting happens in
// the API; this exists so a browser pointed at the server can use it.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>tackify</title>
</head>
<body>
<h1>tackify</h1>
<p>Upload a .pptx file and get back a deliberately worse one.</p>
<form action="/api/process" method="post" enctype="multipart/form-data">
<p><input type="file" name="file" accept=".pptx" required></p>
<p><label>Design level (1-10): <input type="number" name="design_level" min="1" max="10" value="7"></label></p>
<p><label>Content level (1-10): <input type="number" name="content_level" min="1" max="10" value="7"></label></p>
<p><button type="submit">Tackify</button></p>
</form>
</body>
</html>
`

// handleIndex serves the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}
