package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexTemplate is the name of the form page template.
const IndexTemplate = "index.html"

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// Index renders the diagnosis form. apiURL is where the form posts.
func Index(apiURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, IndexTemplate, gin.H{
			"Title":  "Diagnóstico de fallas mecánicas",
			"APIURL": apiURL,
		})
	}
}
