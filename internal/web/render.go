package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates parses the embedded page templates
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"alertClass": alertClass,
	}).ParseFS(templateFS, "templates/*.html")
}

func alertClass(category string) string {
	switch category {
	case FlashError:
		return "danger"
	case FlashWarning:
		return "warning"
	default:
		return "info"
	}
}

// Render executes the named page with the request's user and pending flashes
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	rc := Current(c)
	data["User"] = rc.User
	data["Authenticated"] = rc.Authenticated()
	data["Flashes"] = PopFlashes(c)

	c.HTML(status, name, data)
}

// errorPages maps statuses to their dedicated templates
var errorPages = map[int]string{
	http.StatusUnauthorized:        "401.html",
	http.StatusForbidden:           "403.html",
	http.StatusNotFound:            "404.html",
	http.StatusInternalServerError: "500.html",
}

// RenderError renders the dedicated error page for status and aborts the chain
func RenderError(c *gin.Context, status int) {
	name, ok := errorPages[status]
	if !ok {
		name = errorPages[http.StatusInternalServerError]
	}

	Render(c, status, name, gin.H{"Status": status, "Error": http.StatusText(status)})
	c.Abort()
}
